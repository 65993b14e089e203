package taskrepo

import (
	"context"
	"errors"

	"github.com/google/wire"
	domain "github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var Provider = wire.NewSet(NewMysqlRepositoryImpl)

type MysqlRepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewMysqlRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &MysqlRepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *MysqlRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	po := new(TaskPo).FromDomain(task)
	err := r.Db(ctx).Create(po).Error
	if err != nil {
		return err
	}
	task.CreatedAt = po.CreatedAt
	task.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *MysqlRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var po TaskPo
	if err := r.Db(ctx).Where("id = ?", id).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *MysqlRepositoryImpl) Update(ctx context.Context, id string, patch *domain.Patch) error {
	values := patchToMap(patch)
	if len(values) == 0 {
		return nil
	}
	return r.Db(ctx).Model(&TaskPo{}).Where("id = ?", id).Updates(values).Error
}

func (r *MysqlRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.Db(ctx).Where("id = ?", id).Delete(&TaskPo{}).Error
}

func (r *MysqlRepositoryImpl) List(ctx context.Context, filter *domain.Filter) ([]*domain.Task, error) {
	var pos []TaskPo
	query := r.Db(ctx).Model(&TaskPo{})
	if filter.Status.IsPresent() {
		query = query.Where("status = ?", filter.Status.MustGet())
	}
	if filter.Type.IsPresent() {
		query = query.Where("type = ?", filter.Type.MustGet())
	}
	if err := query.Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po TaskPo, _ int) *domain.Task {
		return po.ToDomain()
	}), nil
}
