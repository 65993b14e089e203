// Package params 把参数模板中的 {dict.xxx} / {port.xxx} 占位符
// 解析为字典引用ID或端口值。
package params

import (
	"context"
	"fmt"
	"strings"

	"github.com/heiseqiubite/Mapping/internal/biz/dict"
	"go.uber.org/zap"
)

type Resolver struct {
	dicts  dict.Repo
	logger *zap.Logger
}

func NewResolver(dicts dict.Repo, logger *zap.Logger) *Resolver {
	return &Resolver{dicts: dicts, logger: logger}
}

// Resolve 解析 模块->插件->参数串 中的全部占位符。
// 未命中的占位符原样保留并记录警告，单个占位符失败不影响整体。
// 查表构建失败向上传播。
func (r *Resolver) Resolve(ctx context.Context, parameters map[string]map[string]string) (map[string]map[string]string, error) {
	dictTable, portTable, err := r.buildTables(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]map[string]string, len(parameters))
	for moduleName, plugins := range parameters {
		resolved[moduleName] = make(map[string]string, len(plugins))
		for plugin, parameter := range plugins {
			for _, ph := range parsePlaceholders(parameter) {
				var real string
				var ok bool
				switch ph.Kind {
				case KindDict:
					real, ok = dictTable[strings.ToLower(ph.Value)]
				case KindPort:
					real, ok = portTable[strings.ToLower(ph.Value)]
				default:
					continue
				}
				if !ok {
					// 未命中时保留原文，整体解析降级而不失败
					real = ph.Raw
					r.logger.Warn("parameter placeholder not resolved",
						zap.String("module", moduleName),
						zap.String("plugin", plugin),
						zap.String("parameter", parameter))
				}
				parameter = strings.Replace(parameter, "{"+ph.Raw+"}", real, 1)
			}
			resolved[moduleName][plugin] = parameter
		}
	}
	return resolved, nil
}

// buildTables 构建小写化的查找表：字典键为 category.name，端口键为 name
func (r *Resolver) buildTables(ctx context.Context) (map[string]string, map[string]string, error) {
	dicts, err := r.dicts.ListDictionary(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list dictionary: %w", err)
	}
	dictTable := make(map[string]string, len(dicts))
	for _, d := range dicts {
		key := strings.ToLower(d.Category) + "." + strings.ToLower(d.Name)
		dictTable[key] = d.ID
	}

	ports, err := r.dicts.ListPorts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list port dict: %w", err)
	}
	portTable := make(map[string]string, len(ports))
	for _, p := range ports {
		portTable[strings.ToLower(p.Name)] = p.Value
	}

	return dictTable, portTable, nil
}
