package schedule

import (
	"context"

	"github.com/samber/mo"
)

type Repo interface {
	Create(ctx context.Context, st *ScheduledTask) error
	GetByID(ctx context.Context, id string) (*ScheduledTask, error)
	Update(ctx context.Context, id string, patch *Patch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *Filter) ([]*ScheduledTask, error)
}

type Filter struct {
	State mo.Option[bool]
}
