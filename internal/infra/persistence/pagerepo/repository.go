package pagerepo

import (
	"context"

	"github.com/google/wire"
	domain "github.com/heiseqiubite/Mapping/internal/biz/page"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
)

var Provider = wire.NewSet(NewMysqlRepositoryImpl)

type MonitoringPo struct {
	commonrepo.Mode
	URL string `gorm:"column:url;size:2048;not null"`
}

func (m *MonitoringPo) TableName() string {
	return "page_monitoring"
}

type MysqlRepositoryImpl struct {
	commonrepo.DefaultRepo
}

func NewMysqlRepositoryImpl(db commonrepo.DB) domain.Repo {
	return &MysqlRepositoryImpl{DefaultRepo: commonrepo.NewDefaultRepo(db)}
}

func (r *MysqlRepositoryImpl) ListURLs(ctx context.Context) ([]string, error) {
	var urls []string
	if err := r.Db(ctx).Model(&MonitoringPo{}).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	return urls, nil
}
