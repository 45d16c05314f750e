package referer

import (
	_ "embed"
	"sync"
)

// ===========================================
// 内置规则库
// ===========================================

//go:embed rules/referers.yaml
var embeddedRules []byte

var (
	embeddedDB     *RuleDatabase
	embeddedDBOnce sync.Once
	embeddedDBErr  error
)

// DefaultDatabase 返回内置规则库
// 内置规则随二进制一起发布，首次调用时构建一次，之后复用同一只读实例
func DefaultDatabase() (*RuleDatabase, error) {
	embeddedDBOnce.Do(func() {
		embeddedDB, embeddedDBErr = LoadDatabase(embeddedRules)
	})
	return embeddedDB, embeddedDBErr
}
