package template

import (
	"context"
	"time"
)

// Template 扫描参数模板。Parameters 结构为 模块 -> 插件 -> 参数串，
// 参数串内可以包含 {dict.xxx} / {port.xxx} 占位符。
type Template struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Name       string
	Parameters map[string]map[string]string

	// VulList 漏洞插件选择列表，"All Poc" 表示全部
	VulList []string
}

type Repo interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	Delete(ctx context.Context, id string) error
}
