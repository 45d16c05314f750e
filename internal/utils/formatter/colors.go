package formatter

import (
	"fmt"
	"sync/atomic"

	"refo/internal/modules/referer"
)

// ANSI颜色代码常量
const (
	ColorReset   = "\033[0m"  // 重置
	ColorGreen   = "\033[32m" // 绿色
	ColorRed     = "\033[31m" // 红色
	ColorYellow  = "\033[33m" // 黄色
	ColorBlue    = "\033[34m" // 蓝色
	ColorCyan    = "\033[36m" // 青色
	ColorMagenta = "\033[35m" // 紫色
	ColorGray    = "\033[90m" // 灰色
	ColorBold    = "\033[1m"  // 加粗
)

// 全局颜色开关（1启用，0禁用）
var globalColorEnabled int32 = 1

// SetColorEnabled 设置全局颜色开关
func SetColorEnabled(enabled bool) {
	if enabled {
		atomic.StoreInt32(&globalColorEnabled, 1)
	} else {
		atomic.StoreInt32(&globalColorEnabled, 0)
	}
}

// ColorsEnabled 查询颜色是否启用
func ColorsEnabled() bool {
	return atomic.LoadInt32(&globalColorEnabled) == 1
}

// FormatURL 格式化URL显示
func FormatURL(url string) string {
	if !ColorsEnabled() {
		return url
	}
	return ColorGreen + url + ColorReset
}

// FormatMedium 格式化媒介标签显示（按媒介类别使用不同颜色）
func FormatMedium(medium referer.Medium) string {
	tag := fmt.Sprintf("[%s]", medium)
	if !ColorsEnabled() {
		return tag
	}

	var color string
	switch medium {
	case referer.MediumSearch:
		color = ColorBold + ColorGreen
	case referer.MediumSocial:
		color = ColorBold + ColorBlue
	case referer.MediumEmail:
		color = ColorBold + ColorCyan
	case referer.MediumPaid:
		color = ColorBold + ColorMagenta
	case referer.MediumInternal:
		color = ColorBold + ColorYellow
	default:
		color = ColorBold + ColorGray
	}
	return color + tag + ColorReset
}

// FormatSource 格式化来源名称显示
func FormatSource(source string) string {
	if source == "" {
		source = "-"
	}
	if !ColorsEnabled() {
		return source
	}
	return ColorBlue + source + ColorReset
}

// FormatTerm 格式化搜索词显示
func FormatTerm(term string) string {
	if term == "" {
		return ""
	}
	if !ColorsEnabled() {
		return fmt.Sprintf("term=%q", term)
	}
	return ColorCyan + fmt.Sprintf("term=%q", term) + ColorReset
}

// FormatAbsent 格式化无结果显示
func FormatAbsent() string {
	if !ColorsEnabled() {
		return "[no-referer]"
	}
	return ColorGray + "[no-referer]" + ColorReset
}

// FormatNumber 格式化数字显示
func FormatNumber(num int64) string {
	return fmt.Sprintf("%d", num)
}
