package schedulerepo

import (
	domain "github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

type ScheduledTaskPo struct {
	commonrepo.Mode
	Name      string           `gorm:"column:name;size:255;not null"`
	CycleType domain.CycleType `gorm:"column:cycle_type;size:20;not null"` // daily/ndays/nhours/weekly/monthly
	Day       int              `gorm:"column:day;default:1"`
	Hour      int              `gorm:"column:hour;default:0"`
	Minute    int              `gorm:"column:minute;default:0"`
	Week      int              `gorm:"column:week;default:1"`

	Target     string                      `gorm:"column:target;type:longtext"`
	Ignore     string                      `gorm:"column:ignore;type:text"`
	Node       datatypes.JSONSlice[string] `gorm:"column:node;type:json"`
	AllNode    bool                        `gorm:"column:all_node;default:false"`
	Template   string                      `gorm:"column:template;size:64"`
	Duplicates string                      `gorm:"column:duplicates;size:50"`
	Type       string                      `gorm:"column:type;size:50;default:'scan'"`

	State    bool   `gorm:"column:state;default:true;index"`
	LastTime string `gorm:"column:last_time;size:32"`
	NextTime string `gorm:"column:next_time;size:32"`
}

func (s *ScheduledTaskPo) TableName() string {
	return "scheduled_task"
}
