package templaterepo

import (
	"context"
	"errors"

	"github.com/google/wire"
	domain "github.com/heiseqiubite/Mapping/internal/biz/template"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"gorm.io/gorm"
)

var Provider = wire.NewSet(NewMysqlRepositoryImpl)

type MysqlRepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewMysqlRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &MysqlRepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *MysqlRepositoryImpl) Create(ctx context.Context, t *domain.Template) error {
	po := new(TemplatePo).FromDomain(t)
	err := r.Db(ctx).Create(po).Error
	if err != nil {
		return err
	}
	t.CreatedAt = po.CreatedAt
	t.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *MysqlRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	var po TemplatePo
	if err := r.Db(ctx).Where("id = ?", id).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return po.ToDomain(), nil
}

func (r *MysqlRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.Db(ctx).Where("id = ?", id).Delete(&TemplatePo{}).Error
}
