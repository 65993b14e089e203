package dictrepo

import (
	"context"

	"github.com/google/wire"
	domain "github.com/heiseqiubite/Mapping/internal/biz/dict"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"github.com/samber/lo"
)

var Provider = wire.NewSet(NewMysqlRepositoryImpl)

type MysqlRepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewMysqlRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &MysqlRepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *MysqlRepositoryImpl) ListDictionary(ctx context.Context) ([]*domain.Dictionary, error) {
	var pos []DictionaryPo
	if err := r.Db(ctx).Find(&pos).Error; err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po DictionaryPo, _ int) *domain.Dictionary {
		return po.ToDomain()
	}), nil
}

func (r *MysqlRepositoryImpl) ListPorts(ctx context.Context) ([]*domain.PortDict, error) {
	var pos []PortDictPo
	if err := r.Db(ctx).Find(&pos).Error; err != nil {
		return nil, err
	}
	return lo.Map(pos, func(po PortDictPo, _ int) *domain.PortDict {
		return po.ToDomain()
	}), nil
}
