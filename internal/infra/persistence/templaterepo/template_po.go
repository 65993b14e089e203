package templaterepo

import (
	domain "github.com/heiseqiubite/Mapping/internal/biz/template"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

type TemplatePo struct {
	commonrepo.Mode
	Name       string                                           `gorm:"column:name;uniqueIndex;size:255;not null"`
	Parameters datatypes.JSONType[map[string]map[string]string] `gorm:"column:parameters;type:json"` // 模块->插件->参数串
	VulList    datatypes.JSONSlice[string]                      `gorm:"column:vullist;type:json"`    // 漏洞插件选择
}

func (t *TemplatePo) TableName() string {
	return "scan_template"
}

func (t *TemplatePo) FromDomain(in *domain.Template) *TemplatePo {
	return &TemplatePo{
		Mode: commonrepo.Mode{
			ID:        in.ID,
			CreatedAt: in.CreatedAt,
			UpdatedAt: in.UpdatedAt,
		},
		Name:       in.Name,
		Parameters: datatypes.NewJSONType(in.Parameters),
		VulList:    datatypes.NewJSONSlice(in.VulList),
	}
}

func (t *TemplatePo) ToDomain() *domain.Template {
	return &domain.Template{
		ID:         t.ID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		Name:       t.Name,
		Parameters: t.Parameters.Data(),
		VulList:    t.VulList,
	}
}
