package dispatch

import "context"

// NodeSource 在线节点来源
type NodeSource interface {
	OnlineNodes(ctx context.Context) ([]string, error)
}

// ResolveNodes 计算本次下发的节点集合：显式指定的节点在前，
// allNode 时并入当前在线节点，去重。纯函数，节点在线状态
// 每次下发时重新读取，不缓存。
func ResolveNodes(explicit []string, allNode bool, online []string) []string {
	seen := make(map[string]struct{}, len(explicit))
	nodes := make([]string, 0, len(explicit))
	for _, name := range explicit {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		nodes = append(nodes, name)
	}
	if allNode {
		for _, name := range online {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			nodes = append(nodes, name)
		}
	}
	return nodes
}
