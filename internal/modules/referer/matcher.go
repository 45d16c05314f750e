package referer

import "strings"

// ===========================================
// 规则匹配
// ===========================================

// Match 在规则库中查找主机名对应的最佳规则
// 仅做精确主机名查找，不做后缀或模糊匹配：子域名只有被规则显式列出才会命中。
// 同一主机名存在多个候选时，优先选择路径前缀匹配的条目，否则回退到裸主机条目。
func (db *RuleDatabase) Match(host, path string) *RefererRule {
	if host == "" {
		return nil
	}

	var bare *RefererRule
	for _, entry := range db.entries[host] {
		if entry.pathPrefix == "" {
			if bare == nil {
				bare = entry.rule
			}
			continue
		}
		if strings.HasPrefix(path, entry.pathPrefix) {
			return entry.rule
		}
	}
	return bare
}
