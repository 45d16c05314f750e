package referer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestLoadDatabase_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		rules string
	}{
		{
			name: "域名列表为空",
			rules: `
- source: Empty
  medium: search
  domains: []
`,
		},
		{
			name: "域名字段缺失",
			rules: `
- source: Missing
  medium: search
`,
		},
		{
			name: "无法识别的媒介类型",
			rules: `
- source: Odd
  medium: carrier-pigeon
  domains: [odd.example.com]
`,
		},
		{
			name: "域名包含非法字符",
			rules: `
- source: Bad
  medium: search
  domains: ["bad domain.com"]
`,
		},
		{
			name: "域名包含协议前缀",
			rules: `
- source: Bad
  medium: search
  domains: ["https://bad.example.com"]
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadDatabase([]byte(tc.rules))
			if err == nil {
				t.Fatal("期望MalformedRuleError，实际无错误")
			}
			var merr *MalformedRuleError
			if !errors.As(err, &merr) {
				t.Errorf("期望MalformedRuleError，实际: %v", err)
			}
		})
	}
}

func TestLoadDatabase_InvalidYAML(t *testing.T) {
	if _, err := LoadDatabase([]byte("{{not yaml")); err == nil {
		t.Fatal("期望YAML解析错误，实际无错误")
	}
}

// TestLoadDatabase_DuplicateHostFirstWins 同一主机被多条规则登记时，先加载者优先
func TestLoadDatabase_DuplicateHostFirstWins(t *testing.T) {
	rules := `
- source: First
  medium: search
  domains: [shared.example.com]
  parameters: [q]

- source: Second
  medium: social
  domains: [shared.example.com]
`
	db, err := LoadDatabase([]byte(rules))
	if err != nil {
		t.Fatalf("加载规则失败: %v", err)
	}

	rule := db.Match("shared.example.com", "/")
	if rule == nil || rule.Source != "First" {
		t.Errorf("期望先加载的规则优先，实际: %+v", rule)
	}
}

// TestLoadDatabase_HostNormalization 域名在加载时统一转小写
func TestLoadDatabase_HostNormalization(t *testing.T) {
	rules := `
- source: Mixed
  medium: search
  domains: [WWW.Example.COM]
  parameters: [q]
`
	db, err := LoadDatabase([]byte(rules))
	if err != nil {
		t.Fatalf("加载规则失败: %v", err)
	}

	if rule := db.Match("www.example.com", "/"); rule == nil {
		t.Error("大写域名条目应在加载时转小写后登记")
	}
}

func TestLoadDatabase_Counts(t *testing.T) {
	db, err := LoadDatabase([]byte(testRules))
	if err != nil {
		t.Fatalf("加载规则失败: %v", err)
	}
	if db.RuleCount() != 5 {
		t.Errorf("规则数错误: 期望 5, 实际 %d", db.RuleCount())
	}
	// www.google.com 同时承载裸主机条目和路径限定条目，主机名只计一次
	if db.HostCount() != 6 {
		t.Errorf("主机名数错误: 期望 6, 实际 %d", db.HostCount())
	}
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	return path
}

func TestLoadDatabaseFile_Plain(t *testing.T) {
	path := writeTempFile(t, "rules.yaml", []byte(testRules))

	db, err := LoadDatabaseFile(path)
	if err != nil {
		t.Fatalf("加载规则文件失败: %v", err)
	}
	if db.RuleCount() != 5 {
		t.Errorf("规则数错误: 期望 5, 实际 %d", db.RuleCount())
	}
}

func TestLoadDatabaseFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(testRules)); err != nil {
		t.Fatalf("gzip压缩失败: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip关闭失败: %v", err)
	}
	path := writeTempFile(t, "rules.yaml.gz", buf.Bytes())

	db, err := LoadDatabaseFile(path)
	if err != nil {
		t.Fatalf("加载gzip规则文件失败: %v", err)
	}
	assertSameClassification(t, db)
}

func TestLoadDatabaseFile_Brotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write([]byte(testRules)); err != nil {
		t.Fatalf("brotli压缩失败: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("brotli关闭失败: %v", err)
	}
	path := writeTempFile(t, "rules.yaml.br", buf.Bytes())

	db, err := LoadDatabaseFile(path)
	if err != nil {
		t.Fatalf("加载brotli规则文件失败: %v", err)
	}
	assertSameClassification(t, db)
}

// TestLoadDatabaseFile_GBK 非UTF-8编码的规则文件在加载时被转换
func TestLoadDatabaseFile_GBK(t *testing.T) {
	rules := `
- source: 百度
  medium: search
  domains: [www.baidu.com]
  parameters: [wd]
`
	encoded, err := io.ReadAll(transform.NewReader(
		strings.NewReader(rules), simplifiedchinese.GBK.NewEncoder()))
	if err != nil {
		t.Fatalf("GBK编码失败: %v", err)
	}
	path := writeTempFile(t, "rules-gbk.yaml", encoded)

	db, err := LoadDatabaseFile(path)
	if err != nil {
		t.Fatalf("加载GBK规则文件失败: %v", err)
	}

	rule := db.Match("www.baidu.com", "/s")
	if rule == nil || rule.Source != "百度" {
		t.Errorf("GBK规则内容转换错误: %+v", rule)
	}
}

func TestLoadDatabaseFile_NotExist(t *testing.T) {
	if _, err := LoadDatabaseFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("期望文件不存在错误，实际无错误")
	}
}

// assertSameClassification 验证数据库对标准样例的分类与明文加载一致
func assertSameClassification(t *testing.T, db *RuleDatabase) {
	t.Helper()
	parser := NewParser(db)
	got := parser.Parse("https://www.google.com/search?q=snowplow", "example.com", nil)
	assertReferer(t, got, &Referer{Medium: MediumSearch, Source: "Google", Term: "snowplow"})
}
