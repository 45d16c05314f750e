package referer

import (
	"net/url"
	"strings"
	"sync"

	"refo/internal/core/logger"
)

// ===========================================
// 解析门面
// ===========================================

// Parser referer分类器
// 持有只读规则库，单次Parse调用是一趟线性的纯计算，可被任意并发调用
type Parser struct {
	db    *RuleDatabase
	stats *Statistics
}

// NewParser 基于给定规则库创建分类器
func NewParser(db *RuleDatabase) *Parser {
	return &Parser{db: db, stats: newStatistics()}
}

// Database 返回分类器使用的规则库
func (p *Parser) Database() *RuleDatabase {
	return p.db
}

// Stats 返回解析统计信息
func (p *Parser) Stats() *Statistics {
	return p.stats
}

// Parse 对referer URI进行分类
// 返回nil表示无结果（referer缺失、URI语法非法或无主机名）。
// 规则库加载成功后本方法对任何输入都不会失败。
func (p *Parser) Parse(refererURI, pageHost string, internalDomains []string) *Referer {
	p.stats.TotalParsed.Inc()

	if strings.TrimSpace(refererURI) == "" {
		p.stats.InvalidURIs.Inc()
		return nil
	}

	parsed, err := normalizeReferer(refererURI)
	if err != nil {
		// URI语法错误对下游与referer缺失等价，在此吸收
		logger.Debugf("referer规范化失败: %v", err)
		p.stats.InvalidURIs.Inc()
		return nil
	}

	return p.classify(parsed, pageHost, internalDomains)
}

// ParseURL 对已解析的referer URL进行分类，语义与Parse一致
func (p *Parser) ParseURL(u *url.URL, pageHost string, internalDomains []string) *Referer {
	p.stats.TotalParsed.Inc()

	if u == nil {
		p.stats.InvalidURIs.Inc()
		return nil
	}

	return p.classify(normalizeURL(u), pageHost, internalDomains)
}

// classify 规范化之后的分类主流程：内部流量短路 → 规则匹配 → 搜索词提取
func (p *Parser) classify(parsed *ParsedReferer, pageHost string, internalDomains []string) *Referer {
	if parsed.Host == "" {
		p.stats.InvalidURIs.Inc()
		return nil
	}

	if isInternal(parsed.Host, pageHost, internalDomains) {
		p.stats.Internal.Inc()
		return &Referer{Medium: MediumInternal}
	}

	rule := p.db.Match(parsed.Host, parsed.Path)
	if rule == nil {
		p.stats.Unknown.Inc()
		return &Referer{Medium: MediumUnknown}
	}

	p.stats.Matched.Inc()
	return &Referer{
		Medium: rule.Medium,
		Source: rule.Source,
		Term:   extractTerm(rule, parsed.Query),
	}
}

// isInternal 判断referer主机是否属于内部流量
// 与页面主机大小写不敏感相等，或等于/以标签边界后缀命中任一内部域名条目
func isInternal(host, pageHost string, internalDomains []string) bool {
	if pageHost != "" && host == extractHost(pageHost) {
		return true
	}

	for _, domain := range internalDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ===========================================
// 默认分类器（进程级只读状态）
// ===========================================

var (
	defaultParser *Parser
	defaultOnce   sync.Once
	defaultErr    error
)

// Default 返回基于内置规则库的默认分类器
// 首次调用完成一次性构建并发布，此后并发读取无需任何同步
func Default() (*Parser, error) {
	defaultOnce.Do(func() {
		db, err := DefaultDatabase()
		if err != nil {
			defaultErr = err
			return
		}
		defaultParser = NewParser(db)
		logger.Debugf("默认分类器初始化完成: %d 条规则", db.RuleCount())
	})
	return defaultParser, defaultErr
}
