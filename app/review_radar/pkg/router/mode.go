package router

import (
	"strings"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// separators 对比语法，按顺序尝试，不区分大小写
var separators = []string{" vs. ", " vs ", " versus ", " compared to ", " or "}

// DetectMode 根据查询字符串判断搜索模式，纯函数。
// 对比模式要求切分后两侧都非空且不是同一个对象，否则按单对象处理。
func DetectMode(query string) (model.Mode, []string) {
	q := strings.TrimSpace(query)
	lower := asciiLower(q)

	for _, sep := range separators {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}
		a := strings.TrimSpace(q[:idx])
		b := strings.TrimSpace(q[idx+len(sep):])
		if a == "" || b == "" || strings.EqualFold(a, b) {
			continue
		}
		return model.ModeComparative, []string{a, b}
	}
	return model.ModeSingle, []string{q}
}

// asciiLower 只转换 ASCII 字母，保证字节偏移与原串一致
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
