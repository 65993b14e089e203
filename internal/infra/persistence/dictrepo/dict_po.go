package dictrepo

import (
	domain "github.com/heiseqiubite/Mapping/internal/biz/dict"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
)

type DictionaryPo struct {
	commonrepo.Mode
	Category string `gorm:"column:category;size:100;not null;index:idx_category_name"`
	Name     string `gorm:"column:name;size:100;not null;index:idx_category_name"`
}

func (d *DictionaryPo) TableName() string {
	return "dictionary"
}

func (d *DictionaryPo) ToDomain() *domain.Dictionary {
	return &domain.Dictionary{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		Category:  d.Category,
		Name:      d.Name,
	}
}

type PortDictPo struct {
	commonrepo.Mode
	Name  string `gorm:"column:name;size:100;not null;uniqueIndex"`
	Value string `gorm:"column:value;type:text;not null"`
}

func (p *PortDictPo) TableName() string {
	return "port_dict"
}

func (p *PortDictPo) ToDomain() *domain.PortDict {
	return &domain.PortDict{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Name:      p.Name,
		Value:     p.Value,
	}
}
