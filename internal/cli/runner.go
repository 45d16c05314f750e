package cli

import (
	"encoding/json"
	"fmt"

	"refo/internal/core/logger"
	"refo/internal/modules/referer"
	"refo/internal/utils/batch"
	"refo/internal/utils/formatter"
)

// run 执行批量分类流程：收集输入 → 构建分类器 → 逐条分类输出
func run(args *CLIArgs) error {
	referers, err := collectReferers(args)
	if err != nil {
		return err
	}
	if len(referers) == 0 {
		return fmt.Errorf("未提供referer输入，使用 -u 或 -f 指定")
	}

	parser, err := buildParser(args.RulesPath)
	if err != nil {
		return err
	}
	logger.Infof("规则库就绪: %d 条规则, %d 个主机名",
		parser.Database().RuleCount(), parser.Database().HostCount())

	for _, ref := range referers {
		result := parser.Parse(ref, args.PageHost, args.InternalList)
		if args.JSONOutput {
			printJSONLine(ref, result)
		} else {
			printTextLine(ref, result)
		}
	}

	if args.ShowStats {
		printStats(parser.Stats().Snapshot())
	}
	return nil
}

// collectReferers 收集命令行与文件两类输入
func collectReferers(args *CLIArgs) ([]string, error) {
	parser := batch.NewRefererParser()

	var fromFile []string
	if args.RefererFile != "" {
		var err error
		fromFile, err = parser.ParseFile(args.RefererFile)
		if err != nil {
			return nil, err
		}
	}

	return parser.Merge(args.Referers, fromFile), nil
}

// buildParser 构建分类器，未指定规则文件时使用内置规则库
func buildParser(rulesPath string) (*referer.Parser, error) {
	if rulesPath == "" {
		return referer.Default()
	}

	db, err := referer.LoadDatabaseFile(rulesPath)
	if err != nil {
		return nil, err
	}
	logger.Debugf("外部规则库加载完成: %s", rulesPath)
	return referer.NewParser(db), nil
}

// jsonLine JSON行输出结构
type jsonLine struct {
	Referer        string           `json:"referer"`
	Classification *referer.Referer `json:"classification,omitempty"`
	Absent         bool             `json:"absent"`
}

// printJSONLine 以JSON行格式输出单条结果
func printJSONLine(ref string, result *referer.Referer) {
	line, err := json.Marshal(&jsonLine{
		Referer:        ref,
		Classification: result,
		Absent:         result == nil,
	})
	if err != nil {
		logger.Errorf("结果序列化失败: %v", err)
		return
	}
	fmt.Println(string(line))
}

// printTextLine 以彩色文本格式输出单条结果
func printTextLine(ref string, result *referer.Referer) {
	if result == nil {
		fmt.Printf("%s %s\n", formatter.FormatAbsent(), formatter.FormatURL(ref))
		return
	}

	line := fmt.Sprintf("%s %s", formatter.FormatMedium(result.Medium), formatter.FormatURL(ref))
	if result.Source != "" {
		line += " <- " + formatter.FormatSource(result.Source)
	}
	if result.Term != "" {
		line += " " + formatter.FormatTerm(result.Term)
	}
	fmt.Println(line)
}

// printStats 输出统计摘要
func printStats(s referer.StatisticsSnapshot) {
	logger.Infof("统计: 总计 %s, 命中 %s, 内部 %s, 未知 %s, 无效 %s",
		formatter.FormatNumber(s.TotalParsed),
		formatter.FormatNumber(s.Matched),
		formatter.FormatNumber(s.Internal),
		formatter.FormatNumber(s.Unknown),
		formatter.FormatNumber(s.InvalidURIs))
}
