package referer

import (
	"fmt"
	"net/url"
	"strings"
)

// ===========================================
// URL规范化
// ===========================================

// InvalidURIError referer URI语法错误
// 仅在规范化阶段内部产生，解析门面会将其转换为"无结果"，不会传递给调用方
type InvalidURIError struct {
	URI string
	Err error
}

func (e *InvalidURIError) Error() string {
	return fmt.Sprintf("无效的referer URI %q: %v", e.URI, e.Err)
}

func (e *InvalidURIError) Unwrap() error {
	return e.Err
}

// normalizeReferer 将referer字符串规范化为ParsedReferer
// 语法非法的输入返回InvalidURIError；合法但无主机名的输入返回Host为空的结果
func normalizeReferer(rawURL string) (*ParsedReferer, error) {
	// 基本字符检查（对齐RFC 3986：空白字符不允许出现在URI中）
	if strings.ContainsAny(rawURL, " \t\n\r") {
		return nil, &InvalidURIError{URI: rawURL, Err: fmt.Errorf("URI包含空白字符")}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &InvalidURIError{URI: rawURL, Err: err}
	}

	return normalizeURL(u), nil
}

// normalizeURL 将已解析的URL规范化为ParsedReferer
func normalizeURL(u *url.URL) *ParsedReferer {
	return &ParsedReferer{
		Scheme: strings.ToLower(u.Scheme),
		Host:   strings.ToLower(u.Hostname()),
		Path:   u.Path,
		Query:  parseQuery(u.RawQuery),
	}
}

// parseQuery 宽容地解析查询串
// 单个参数的百分号编码损坏时保留其原始文本，不影响其余参数；
// 同名参数的取值顺序与重数均被保留
func parseQuery(rawQuery string) map[string][]string {
	if rawQuery == "" {
		return nil
	}

	query := make(map[string][]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		query[key] = append(query[key], value)
	}
	return query
}

// extractHost 从主机名或完整URL中提取小写主机名
// 页面地址既可能以裸主机名给出，也可能以完整URL给出
func extractHost(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil && u.Hostname() != "" {
			return strings.ToLower(u.Hostname())
		}
	}
	// 裸主机名可能带端口
	host := s
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 && isDigits(host[i+1:]) {
		host = host[:i]
	}
	return strings.ToLower(host)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
