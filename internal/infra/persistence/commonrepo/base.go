package commonrepo

import "time"

// Mode 通用模型字段。主键为字符串ID：任务ID同时是Redis
// 临时键的命名空间，项目周期任务的调度ID等于项目ID。
type Mode struct {
	ID        string    `gorm:"primarykey;size:64"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
	UpdatedAt time.Time `gorm:"index;autoUpdateTime"`
}
