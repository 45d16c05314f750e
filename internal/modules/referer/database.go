package referer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"refo/internal/core/logger"
)

// ===========================================
// 规则库加载器
// ===========================================

// MalformedRuleError 规则定义格式错误
// 仅在规则库加载阶段产生，加载成功后的解析调用不会再出现该错误
type MalformedRuleError struct {
	Source string // 出错规则的来源名称（可能为空）
	Index  int    // 出错规则在定义文件中的序号
	Reason string // 错误原因
}

func (e *MalformedRuleError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("规则格式错误 [#%d %s]: %s", e.Index, e.Source, e.Reason)
	}
	return fmt.Sprintf("规则格式错误 [#%d]: %s", e.Index, e.Reason)
}

// ruleRecord 规则定义文件中的单条记录
type ruleRecord struct {
	Source     string   `yaml:"source"`
	Medium     string   `yaml:"medium"`
	Domains    []string `yaml:"domains"`
	Parameters []string `yaml:"parameters"`
}

// hostPattern 合法主机名字符集（加载时域名已转小写）
var hostPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

// pathPattern 域名条目中可选路径前缀的合法字符集
var pathPattern = regexp.MustCompile(`^/[^\s]*$`)

// LoadDatabase 从YAML规则定义构建规则库
// 定义内容为记录序列，每条记录包含source、medium、domains和可选的parameters
func LoadDatabase(data []byte) (*RuleDatabase, error) {
	var records []ruleRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("规则定义解析失败: %v", err)
	}

	db := &RuleDatabase{entries: make(map[string][]*ruleEntry)}
	for i, rec := range records {
		rule, err := buildRule(i, &rec)
		if err != nil {
			return nil, err
		}
		if err := db.addRule(i, rule); err != nil {
			return nil, err
		}
		db.ruleCount++
	}

	// 同一主机名下，带路径前缀的条目优先于裸主机条目参与匹配；
	// 稳定排序保证同类条目之间先加载者优先
	for _, entries := range db.entries {
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].pathPrefix != "" && entries[b].pathPrefix == ""
		})
	}

	logger.Debugf("规则库构建完成: %d 条规则, %d 个主机名", db.ruleCount, len(db.entries))
	return db, nil
}

// LoadDatabaseFile 从规则定义文件构建规则库
// 支持gzip(.gz)与brotli(.br)压缩文件，并自动将非UTF-8编码的内容转换后再解析
func LoadDatabaseFile(path string) (*RuleDatabase, error) {
	data, err := readRuleFile(path)
	if err != nil {
		return nil, err
	}
	return LoadDatabase(data)
}

// buildRule 校验并构建单条规则
func buildRule(index int, rec *ruleRecord) (*RefererRule, error) {
	if len(rec.Domains) == 0 {
		return nil, &MalformedRuleError{Source: rec.Source, Index: index, Reason: "域名列表为空"}
	}

	medium, err := ParseMedium(rec.Medium)
	if err != nil {
		return nil, &MalformedRuleError{Source: rec.Source, Index: index, Reason: err.Error()}
	}

	return &RefererRule{
		Source:     rec.Source,
		Medium:     medium,
		Domains:    rec.Domains,
		Parameters: rec.Parameters,
	}, nil
}

// addRule 将规则的各域名条目登记到规则库
// 域名条目可携带路径前缀（如 google.com/products），主机部分统一转小写
func (db *RuleDatabase) addRule(index int, rule *RefererRule) error {
	for _, domain := range rule.Domains {
		host, pathPrefix := splitDomainEntry(domain)
		if !hostPattern.MatchString(host) {
			return &MalformedRuleError{
				Source: rule.Source,
				Index:  index,
				Reason: fmt.Sprintf("域名包含非法字符: %q", domain),
			}
		}
		if pathPrefix != "" && !pathPattern.MatchString(pathPrefix) {
			return &MalformedRuleError{
				Source: rule.Source,
				Index:  index,
				Reason: fmt.Sprintf("路径前缀包含非法字符: %q", domain),
			}
		}
		db.entries[host] = append(db.entries[host], &ruleEntry{rule: rule, pathPrefix: pathPrefix})
	}
	return nil
}

// splitDomainEntry 拆分域名条目为主机名与可选路径前缀
func splitDomainEntry(entry string) (host, pathPrefix string) {
	entry = strings.TrimSpace(entry)
	if i := strings.Index(entry, "/"); i >= 0 {
		return strings.ToLower(entry[:i]), entry[i:]
	}
	return strings.ToLower(entry), ""
}
