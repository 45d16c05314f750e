package referer

// ===========================================
// 搜索词提取
// ===========================================

// extractTerm 从查询参数中提取搜索/推广关键词
// 按规则声明顺序探测参数名，返回第一个存在且非空的取值；
// 取值已完成百分号解码，此外不做任何加工
func extractTerm(rule *RefererRule, query map[string][]string) string {
	if len(rule.Parameters) == 0 {
		return ""
	}

	for _, name := range rule.Parameters {
		for _, value := range query[name] {
			if value != "" {
				return value
			}
		}
	}
	return ""
}
