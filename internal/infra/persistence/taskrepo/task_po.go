package taskrepo

import (
	domain "github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

type TaskPo struct {
	commonrepo.Mode
	Name       string                      `gorm:"column:name;size:255;not null;index"`
	Status     domain.Status               `gorm:"column:status;not null;index"`            // 1运行 2停止 3完成
	Node       datatypes.JSONSlice[string] `gorm:"column:node;type:json"`                   // 指定节点
	AllNode    bool                        `gorm:"column:all_node;default:false"`           // 下发到全部在线节点
	Target     string                      `gorm:"column:target;type:longtext"`             // 展开后的目标，换行分隔
	Ignore     string                      `gorm:"column:ignore;type:text"`                 // 忽略目标
	Duplicates string                      `gorm:"column:duplicates;size:50"`               // 去重策略
	Template   string                      `gorm:"column:template;size:64;not null"`        // 模板ID
	Type       domain.Type                 `gorm:"column:type;size:50;not null;default:'scan'"`
	TaskNum    int                         `gorm:"column:task_num;not null"`                // 创建时的目标数量，不再变化
	Progress   float64                     `gorm:"column:progress;default:0"`
	CreatTime  string                      `gorm:"column:creat_time;size:32"`
	EndTime    string                      `gorm:"column:end_time;size:32"`
}

func (t *TaskPo) TableName() string {
	return "task"
}
