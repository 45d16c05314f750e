package referer

import "testing"

const matcherRules = `
- source: Example Search
  medium: search
  domains: [search.example.com]
  parameters: [q]

- source: Example Shopping
  medium: search
  domains: [portal.example.com/shopping]
  parameters: [q]

- source: Example Mail
  medium: email
  domains: [portal.example.com/mail]

- source: Example Portal
  medium: social
  domains: [portal.example.com]
`

func newMatcherDB(t *testing.T) *RuleDatabase {
	t.Helper()
	db, err := LoadDatabase([]byte(matcherRules))
	if err != nil {
		t.Fatalf("加载规则失败: %v", err)
	}
	return db
}

func TestRuleDatabase_Match(t *testing.T) {
	db := newMatcherDB(t)

	testCases := []struct {
		name       string
		host       string
		path       string
		wantSource string // 空字符串表示期望无命中
	}{
		{name: "精确主机命中", host: "search.example.com", path: "/", wantSource: "Example Search"},
		{name: "子域名不做后缀匹配", host: "deep.search.example.com", path: "/", wantSource: ""},
		{name: "上级域名不做模糊匹配", host: "example.com", path: "/", wantSource: ""},
		{name: "路径前缀命中第一个限定条目", host: "portal.example.com", path: "/shopping/item/42", wantSource: "Example Shopping"},
		{name: "路径前缀命中第二个限定条目", host: "portal.example.com", path: "/mail/inbox", wantSource: "Example Mail"},
		{name: "路径均不匹配时回退裸主机条目", host: "portal.example.com", path: "/news", wantSource: "Example Portal"},
		{name: "空路径回退裸主机条目", host: "portal.example.com", path: "", wantSource: "Example Portal"},
		{name: "空主机无命中", host: "", path: "/", wantSource: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rule := db.Match(tc.host, tc.path)
			if tc.wantSource == "" {
				if rule != nil {
					t.Errorf("期望无命中，实际: %+v", rule)
				}
				return
			}
			if rule == nil {
				t.Fatalf("期望命中 %s, 实际无命中", tc.wantSource)
			}
			if rule.Source != tc.wantSource {
				t.Errorf("命中规则错误: 期望 %s, 实际 %s", tc.wantSource, rule.Source)
			}
		})
	}
}

// TestRuleDatabase_MatchNoBareFallback 仅有路径限定条目且路径不匹配时无命中
func TestRuleDatabase_MatchNoBareFallback(t *testing.T) {
	rules := `
- source: Only Path
  medium: search
  domains: [only.example.com/search]
  parameters: [q]
`
	db, err := LoadDatabase([]byte(rules))
	if err != nil {
		t.Fatalf("加载规则失败: %v", err)
	}

	if rule := db.Match("only.example.com", "/other"); rule != nil {
		t.Errorf("期望无命中，实际: %+v", rule)
	}
	if rule := db.Match("only.example.com", "/search/x"); rule == nil {
		t.Error("路径匹配时应命中")
	}
}
