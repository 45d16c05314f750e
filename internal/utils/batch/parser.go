package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"refo/internal/core/logger"
)

// RefererParser referer列表文件解析器
type RefererParser struct{}

// NewRefererParser 创建referer列表解析器
func NewRefererParser() *RefererParser {
	return &RefererParser{}
}

// ParseFile 从文件解析referer列表
// 每行一个referer URL，跳过空行和#注释行
func (rp *RefererParser) ParseFile(filePath string) ([]string, error) {
	logger.Debugf("开始解析referer文件: %s", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法打开referer文件: %v", err)
	}
	defer file.Close()

	var referers []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// 跳过空行和注释行
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		referers = append(referers, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取文件时发生错误: %v", err)
	}

	logger.Debugf("从文件解析到 %d 个referer", len(referers))
	return referers, nil
}

// Merge 合并命令行与文件来源的referer列表并去重（保留首次出现顺序）
func (rp *RefererParser) Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, list := range lists {
		for _, r := range list {
			r = strings.TrimSpace(r)
			if r == "" {
				continue
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}
