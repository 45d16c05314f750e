package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"refo/internal/core/config"
	"refo/internal/core/logger"
	"refo/internal/utils/formatter"
)

// arrayFlags 实现flag.Value接口，支持多个相同参数
type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ", ")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

// CLIArgs CLI参数结构体
type CLIArgs struct {
	Referers     []string // 待分类的referer URL (-u)
	RefererFile  string   // referer列表文件路径 (-f)
	PageHost     string   // 当前页面主机名 (--page-host)
	InternalList []string // 附加内部域名 (-i)
	RulesPath    string   // 外部规则文件路径 (-r)

	// 输出控制
	JSONOutput bool // 控制台输出JSON结果 (--json)
	ShowStats  bool // 输出统计摘要 (--stats)
	NoColor    bool // 禁用彩色输出 (-nc)
	Debug      bool // 调试模式 (--debug)
}

// Execute 执行CLI命令
func Execute() {
	// 优先初始化配置系统
	if err := config.InitConfig(); err != nil {
		fmt.Printf("配置文件加载失败，使用默认配置: %v\n", err)
	}
	cfg := config.GetConfig()

	args := parseFlags(cfg)

	// 初始化日志系统
	loggerConfig := &logger.LogConfig{
		Level:       cfg.Log.Level,
		ColorOutput: cfg.Log.ColorOutput && !args.NoColor,
	}
	if args.Debug {
		loggerConfig.Level = "debug"
	}
	if err := logger.Initialize(loggerConfig); err != nil {
		fmt.Printf("日志系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	formatter.SetColorEnabled(!args.NoColor && !cfg.Output.NoColor)

	if err := run(args); err != nil {
		logger.Fatalf("执行失败: %v", err)
	}
}

// parseFlags 解析命令行参数，命令行取值优先于配置文件
func parseFlags(cfg *config.Config) *CLIArgs {
	var referers arrayFlags
	var internalDomains arrayFlags

	flag.Var(&referers, "u", "待分类的referer URL（可重复指定）")
	refererFile := flag.String("f", "", "referer列表文件路径（每行一个，支持#注释）")
	pageHost := flag.String("page-host", cfg.Parser.PageHost, "当前页面主机名或完整URL")
	flag.Var(&internalDomains, "i", "附加内部域名（可重复指定，子域名按后缀命中）")
	rulesPath := flag.String("r", cfg.Rules.Path, "外部规则文件路径（支持 .yaml/.gz/.br）")
	jsonOutput := flag.Bool("json", cfg.Output.JSON, "以JSON行输出分类结果")
	showStats := flag.Bool("stats", cfg.Output.ShowStats, "输出统计摘要")
	noColor := flag.Bool("nc", cfg.Output.NoColor, "禁用彩色输出")
	debug := flag.Bool("debug", false, "启用调试日志")

	flag.Usage = printUsage
	flag.Parse()

	// 位置参数也视作referer输入
	referers = append(referers, flag.Args()...)

	return &CLIArgs{
		Referers:     referers,
		RefererFile:  *refererFile,
		PageHost:     *pageHost,
		InternalList: append(append([]string{}, cfg.Parser.InternalDomains...), internalDomains...),
		RulesPath:    *rulesPath,
		JSONOutput:   *jsonOutput,
		ShowStats:    *showStats,
		NoColor:      *noColor,
		Debug:        *debug,
	}
}

// printUsage 打印使用说明
func printUsage() {
	fmt.Fprintf(os.Stderr, `refo - referer流量来源分类工具

用法:
  refo -u <referer-url> [--page-host <host>] [-i <domain>]...
  refo -f <referer-file> [--json] [--stats]

示例:
  refo -u "https://www.google.com/search?q=snowplow" --page-host example.com
  refo -f referers.txt -i example.com -i cdn.example.net --json

参数:
`)
	flag.PrintDefaults()
}
