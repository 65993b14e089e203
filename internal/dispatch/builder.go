package dispatch

import (
	"context"
	"strings"

	"github.com/heiseqiubite/Mapping/internal/biz/template"
	"github.com/samber/lo"
)

const (
	vulnModule = "VulnerabilityScan"
	// nuclei插件在模板参数表中的固定键
	vulnPlugin = "ed93b8af6b72fe54a60efdb932cf6fbc"
	allPoc     = "All Poc"
)

// ParamResolver 模板参数占位符解析
type ParamResolver interface {
	Resolve(ctx context.Context, parameters map[string]map[string]string) (map[string]map[string]string, error)
}

// Builder 把任务请求和模板组装成可下发的载荷
type Builder struct {
	templates template.Repo
	resolver  ParamResolver
}

func NewBuilder(templates template.Repo, resolver ParamResolver) *Builder {
	return &Builder{templates: templates, resolver: resolver}
}

// Build 获取模板、合并漏洞插件选择、解析参数占位符并盖上任务
// 元信息。模板不存在返回 ErrTemplateNotFound，调用方不得创建
// 任务记录。
func (b *Builder) Build(ctx context.Context, req SubmitRequest, id string, resume bool) (*Payload, error) {
	tpl, err := b.templates.GetByID(ctx, req.Template)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}

	parameters := copyParameters(tpl.Parameters)
	if len(tpl.VulList) != 0 {
		mergeVulList(parameters, tpl.VulList)
	}

	resolved, err := b.resolver.Resolve(ctx, parameters)
	if err != nil {
		return nil, err
	}

	taskType := req.Type
	if taskType == "" {
		taskType = "scan"
	}
	return &Payload{
		ID:         id,
		TaskName:   req.Name,
		Type:       taskType,
		Ignore:     req.Ignore,
		Duplicates: req.Duplicates,
		IsStart:    resume,
		Parameters: resolved,
	}, nil
}

// copyParameters 深拷贝两级参数表，合并和解析都不回写模板自身
func copyParameters(in map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(in))
	for moduleName, plugins := range in {
		cp := make(map[string]string, len(plugins))
		for plugin, parameter := range plugins {
			cp[plugin] = parameter
		}
		out[moduleName] = cp
	}
	return out
}

// mergeVulList 把选中的漏洞插件拼接到nuclei参数上，
// "All Poc" 选择全部检查项
func mergeVulList(parameters map[string]map[string]string, vulList []string) {
	var selected string
	if lo.Contains(vulList, allPoc) {
		selected = "*"
	} else {
		names := make([]string, 0, len(vulList))
		for _, vul := range vulList {
			names = append(names, vul+".yaml")
		}
		selected = strings.Join(names, ",")
	}

	if _, ok := parameters[vulnModule]; !ok {
		parameters[vulnModule] = map[string]string{vulnPlugin: ""}
	}
	parameters[vulnModule][vulnPlugin] = parameters[vulnModule][vulnPlugin] + " -t " + selected
}
