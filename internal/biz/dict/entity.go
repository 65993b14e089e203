package dict

import (
	"context"
	"time"
)

// Dictionary 通用字典项，按 category.name 查找
type Dictionary struct {
	ID        string
	CreatedAt time.Time

	Category string
	Name     string
}

// PortDict 端口字典项，按 name 查找
type PortDict struct {
	ID        string
	CreatedAt time.Time

	Name  string
	Value string
}

type Repo interface {
	ListDictionary(ctx context.Context) ([]*Dictionary, error)
	ListPorts(ctx context.Context) ([]*PortDict, error)
}
