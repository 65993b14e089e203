package task

import (
	"context"

	"github.com/samber/mo"
)

type Repo interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, id string, patch *Patch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *Filter) ([]*Task, error)
}

type Filter struct {
	Status mo.Option[Status]
	Type   mo.Option[Type]
}
