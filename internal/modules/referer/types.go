package referer

import (
	"fmt"
	"time"

	"go.uber.org/atomic"
)

// ===========================================
// 核心类型定义
// ===========================================

// Medium 流量媒介类型（封闭枚举）
type Medium string

const (
	MediumUnknown  Medium = "unknown"  // 未知来源
	MediumSearch   Medium = "search"   // 搜索引擎
	MediumInternal Medium = "internal" // 站内流量
	MediumSocial   Medium = "social"   // 社交网络
	MediumEmail    Medium = "email"    // 邮件服务
	MediumPaid     Medium = "paid"     // 付费广告
)

// ParseMedium 解析媒介字符串，未识别的取值返回错误
func ParseMedium(s string) (Medium, error) {
	switch Medium(s) {
	case MediumUnknown, MediumSearch, MediumInternal, MediumSocial, MediumEmail, MediumPaid:
		return Medium(s), nil
	default:
		return "", fmt.Errorf("无法识别的媒介类型: %q", s)
	}
}

// RefererRule 来源站点规则
// 描述一个已知来源站点：规范名称、媒介类型、匹配域名列表和可选的搜索词参数名列表
type RefererRule struct {
	Source     string   `yaml:"source"`               // 来源站点规范名称
	Medium     Medium   `yaml:"medium"`               // 媒介类型
	Domains    []string `yaml:"domains"`              // 匹配域名列表（非空，可带路径前缀）
	Parameters []string `yaml:"parameters,omitempty"` // 搜索词参数名列表（按声明顺序探测）
}

// ruleEntry 规则库中单个主机名下的候选条目
// pathPrefix非空时要求referer路径以该前缀开头（用于共享主机名的多服务站点）
type ruleEntry struct {
	rule       *RefererRule
	pathPrefix string
}

// RuleDatabase 规则库
// 主机名到候选规则的只读映射，构建完成后不再修改，可被任意数量的并发解析调用共享
type RuleDatabase struct {
	entries   map[string][]*ruleEntry
	ruleCount int
}

// RuleCount 返回加载的规则数量
func (db *RuleDatabase) RuleCount() int {
	return db.ruleCount
}

// HostCount 返回规则库登记的主机名数量
func (db *RuleDatabase) HostCount() int {
	return len(db.entries)
}

// ParsedReferer 规范化后的referer视图（每次解析调用独享）
type ParsedReferer struct {
	Scheme string              // 协议
	Host   string              // 主机名（已转小写，不含端口）
	Path   string              // 路径
	Query  map[string][]string // 查询参数（保留同名参数的顺序与重数）
}

// Referer 分类结果
// Source和Term为空字符串时表示缺失
type Referer struct {
	Medium Medium `json:"medium"`           // 媒介类型
	Source string `json:"source,omitempty"` // 来源站点规范名称
	Term   string `json:"term,omitempty"`   // 搜索/推广关键词
}

// Known 是否命中了已知来源（内部流量不计入）
func (r *Referer) Known() bool {
	return r.Medium != MediumUnknown && r.Medium != MediumInternal
}

// ===========================================
// 统计信息
// ===========================================

// Statistics 解析统计信息
type Statistics struct {
	TotalParsed atomic.Int64 // 总解析次数
	InvalidURIs atomic.Int64 // 无效referer数（空值或URI语法错误）
	Internal    atomic.Int64 // 内部流量数
	Matched     atomic.Int64 // 命中规则数
	Unknown     atomic.Int64 // 未知来源数
	startTime   time.Time
}

// StatisticsSnapshot 统计信息快照（用于CLI展示和SDK输出）
type StatisticsSnapshot struct {
	TotalParsed int64     `json:"total_parsed"`
	InvalidURIs int64     `json:"invalid_uris"`
	Internal    int64     `json:"internal"`
	Matched     int64     `json:"matched"`
	Unknown     int64     `json:"unknown"`
	StartTime   time.Time `json:"start_time"`
}

// newStatistics 创建统计信息
func newStatistics() *Statistics {
	return &Statistics{startTime: time.Now()}
}

// Snapshot 生成当前统计快照
func (s *Statistics) Snapshot() StatisticsSnapshot {
	return StatisticsSnapshot{
		TotalParsed: s.TotalParsed.Load(),
		InvalidURIs: s.InvalidURIs.Load(),
		Internal:    s.Internal.Load(),
		Matched:     s.Matched.Load(),
		Unknown:     s.Unknown.Load(),
		StartTime:   s.startTime,
	}
}
