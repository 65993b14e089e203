package params

import (
	"regexp"
	"strings"
)

// Kind 占位符类别
type Kind int

const (
	KindUnknown Kind = iota
	KindDict
	KindPort
)

// Placeholder 参数串中的一个 {type.value} 占位符
type Placeholder struct {
	Kind  Kind
	Value string
	Raw   string // 不含花括号的原文，未命中时原样保留
}

var placeholderRe = regexp.MustCompile(`\{(.*?)\}`)

// parsePlaceholders 扫描参数串中的全部占位符。没有 "." 分隔或
// 类别未知的占位符标记为 KindUnknown，由调用方跳过。
func parsePlaceholders(s string) []Placeholder {
	matches := placeholderRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		raw := m[1]
		p := Placeholder{Kind: KindUnknown, Raw: raw}
		if tp, value, ok := strings.Cut(raw, "."); ok {
			switch tp {
			case "dict":
				p.Kind = KindDict
				p.Value = value
			case "port":
				p.Kind = KindPort
				p.Value = value
			}
		}
		out = append(out, p)
	}
	return out
}
