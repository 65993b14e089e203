// Package expand 负责把原始目标文本展开为去重后的根标识列表。
package expand

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// 带类型前缀的目标：公司名、ICP备案号、APP名、应用市场ID
var typedPrefixes = []string{"CMP:", "ICP:", "APP-ID:", "APP:"}

// Expand 展开目标文本。每个非空行是一个目标，忽略列表按整行精确
// 匹配在计算根标识之前剔除。结果按首次出现顺序去重。
// 空目标文本返回空列表，调用方应视为"无事可做"而不是错误。
func Expand(target, ignore string) []string {
	ignored := make(map[string]struct{})
	for _, line := range splitLines(ignore) {
		ignored[line] = struct{}{}
	}

	var roots []string
	seen := make(map[string]struct{})
	for _, line := range splitLines(target) {
		if _, ok := ignored[line]; ok {
			continue
		}
		root := RootIdentifier(line)
		if root == "" {
			continue
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	return roots
}

// RootIdentifier 计算一行目标的根标识。带类型前缀的行剥掉前缀取原值，
// ICP 额外去掉最后一个 "-" 及其后的序号后缀；其余按公共后缀取根域名。
func RootIdentifier(line string) string {
	for _, prefix := range typedPrefixes {
		if strings.HasPrefix(line, prefix) {
			value := strings.TrimPrefix(line, prefix)
			if prefix == "ICP:" {
				value = beforeLastDash(value)
			}
			return value
		}
	}
	return rootDomain(line)
}

// rootDomain 公共后缀感知的根域名提取；IP/CIDR或无法解析的值原样返回。
func rootDomain(host string) string {
	if ip := net.ParseIP(host); ip != nil {
		return host
	}
	if _, _, err := net.ParseCIDR(host); err == nil {
		return host
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return host
	}
	return root
}

// beforeLastDash ICP备案号末尾常带 "-1" 这类序号，不属于标识本身
func beforeLastDash(s string) string {
	if idx := strings.LastIndex(s, "-"); idx != -1 {
		return s[:idx]
	}
	return s
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
