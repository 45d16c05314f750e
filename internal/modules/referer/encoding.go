package referer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"refo/internal/core/logger"
)

// ===========================================
// 规则文件读取与编码处理
// ===========================================

// readRuleFile 读取规则定义文件
// 依据扩展名对.gz/.br文件透明解压，再做编码归一化
func readRuleFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开规则文件: %v", err)
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %v", err)
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(path, ".br"):
		reader = brotli.NewReader(f)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取规则文件失败: %v", err)
	}

	return normalizeEncoding(data), nil
}

// normalizeEncoding 将规则内容归一化为UTF-8
// 已是合法UTF-8的内容原样返回，否则先尝试GBK，再退回字符集检测
func normalizeEncoding(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	// 非UTF-8规则文件以GBK最为常见
	gbk, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), simplifiedchinese.GBK.NewDecoder()))
	if err == nil && utf8.Valid(gbk) {
		logger.Debug("规则文件编码已从 GBK 转换为 UTF-8")
		return gbk
	}

	enc, name, _ := charset.DetermineEncoding(data, "")
	converted, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		logger.Debugf("规则文件编码转换失败 (%s): %v, 保留原始内容", name, err)
		return data
	}

	logger.Debugf("规则文件编码已从 %s 转换为 UTF-8", name)
	return converted
}
