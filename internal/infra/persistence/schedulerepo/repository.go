package schedulerepo

import (
	"context"
	"errors"

	"github.com/google/wire"
	domain "github.com/heiseqiubite/Mapping/internal/biz/schedule"
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

func (r *MysqlRepositoryImpl) Create(ctx context.Context, st *domain.ScheduledTask) error {
	po := new(ScheduledTaskPo).FromDomain(st)
	err := r.Db(ctx).Create(po).Error
	if err != nil {
		return err
	}
	st.CreatedAt = po.CreatedAt
	st.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *MysqlRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.ScheduledTask, error) {
	var po ScheduledTaskPo
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
	return r.Db(ctx).Model(&ScheduledTaskPo{}).Where("id = ?", id).Updates(values).Error
}

func (r *MysqlRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.Db(ctx).Where("id = ?", id).Delete(&ScheduledTaskPo{}).Error
}

func (r *MysqlRepositoryImpl) List(ctx context.Context, filter *domain.Filter) ([]*domain.ScheduledTask, error) {
	var pos []ScheduledTaskPo
	query := r.Db(ctx).Model(&ScheduledTaskPo{})
	if filter.State.IsPresent() {
		query = query.Where("state = ?", filter.State.MustGet())
	}
	if err := query.Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po ScheduledTaskPo, _ int) *domain.ScheduledTask {
		return po.ToDomain()
	}), nil
}
