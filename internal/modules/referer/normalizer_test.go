package referer

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeReferer(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		wantErr   bool
		wantHost  string
		wantPath  string
		wantQuery map[string][]string
	}{
		{
			name:      "常规URL",
			raw:       "https://www.Google.com/search?q=shoes",
			wantHost:  "www.google.com",
			wantPath:  "/search",
			wantQuery: map[string][]string{"q": {"shoes"}},
		},
		{
			name:     "主机带端口时剥离端口",
			raw:      "http://example.com:8080/page",
			wantHost: "example.com",
			wantPath: "/page",
		},
		{
			name:     "无主机名的相对URL",
			raw:      "/only/a/path",
			wantHost: "",
			wantPath: "/only/a/path",
		},
		{
			name:    "包含空格",
			raw:     "https://exa mple.com/",
			wantErr: true,
		},
		{
			name:    "包含制表符",
			raw:     "https://example.com/\tpath",
			wantErr: true,
		},
		{
			name:      "同名参数保留顺序与重数",
			raw:       "https://example.com/?q=first&q=second&q=third",
			wantHost:  "example.com",
			wantPath:  "/",
			wantQuery: map[string][]string{"q": {"first", "second", "third"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := normalizeReferer(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("期望InvalidURIError，实际无错误")
				}
				var uerr *InvalidURIError
				if !errors.As(err, &uerr) {
					t.Errorf("期望InvalidURIError，实际: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("规范化失败: %v", err)
			}
			if parsed.Host != tc.wantHost {
				t.Errorf("主机名错误: 期望 %q, 实际 %q", tc.wantHost, parsed.Host)
			}
			if parsed.Path != tc.wantPath {
				t.Errorf("路径错误: 期望 %q, 实际 %q", tc.wantPath, parsed.Path)
			}
			if tc.wantQuery != nil && !reflect.DeepEqual(parsed.Query, tc.wantQuery) {
				t.Errorf("查询参数错误: 期望 %v, 实际 %v", tc.wantQuery, parsed.Query)
			}
		})
	}
}

// TestParseQuery_Permissive 单个参数编码损坏不影响其余参数解析
func TestParseQuery_Permissive(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want map[string][]string
	}{
		{
			name: "正常解码",
			raw:  "q=caf%C3%A9&lang=fr",
			want: map[string][]string{"q": {"café"}, "lang": {"fr"}},
		},
		{
			name: "加号还原为空格",
			raw:  "q=red+shoes",
			want: map[string][]string{"q": {"red shoes"}},
		},
		{
			name: "损坏的百分号编码保留原文",
			raw:  "q=%zz&ok=1",
			want: map[string][]string{"q": {"%zz"}, "ok": {"1"}},
		},
		{
			name: "无值参数",
			raw:  "flag&q=x",
			want: map[string][]string{"flag": {""}, "q": {"x"}},
		},
		{
			name: "空片段被跳过",
			raw:  "&&q=x&",
			want: map[string][]string{"q": {"x"}},
		},
		{
			name: "空查询串",
			raw:  "",
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseQuery(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("解析结果错误: 期望 %v, 实际 %v", tc.want, got)
			}
		})
	}
}

func TestExtractHost(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "裸主机名", in: "example.com", want: "example.com"},
		{name: "大写转小写", in: "Example.COM", want: "example.com"},
		{name: "带端口", in: "example.com:8080", want: "example.com"},
		{name: "完整URL", in: "https://example.com/page?x=1", want: "example.com"},
		{name: "完整URL带端口", in: "https://example.com:8443/page", want: "example.com"},
		{name: "带路径的裸主机", in: "example.com/page", want: "example.com"},
		{name: "空输入", in: "", want: ""},
		{name: "前后空白", in: "  example.com  ", want: "example.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractHost(tc.in); got != tc.want {
				t.Errorf("期望 %q, 实际 %q", tc.want, got)
			}
		})
	}
}
