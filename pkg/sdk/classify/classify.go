package classify

import (
	"encoding/json"
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"

	"refo/internal/core/logger"
	"refo/internal/modules/referer"
)

// Config 定义一次批量分类的可配置参数。
type Config struct {
	RulesPath       string   // 外部规则文件路径，留空使用内置规则库
	PageHost        string   // 当前页面主机名（可为空）
	InternalDomains []string // 附加内部域名列表
	LogLevel        string   // 日志级别，留空保持当前级别
}

// Result 单个referer的分类结果。
type Result struct {
	Referer        string           `json:"referer"`
	Classification *referer.Referer `json:"classification,omitempty"`
	Absent         bool             `json:"absent"`
}

// Report 一次批量分类的完整输出。
type Report struct {
	SessionID  string                     `json:"session_id"`
	StartedAt  time.Time                  `json:"started_at"`
	Results    []Result                   `json:"results"`
	Statistics referer.StatisticsSnapshot `json:"statistics"`
}

// DefaultConfig 返回默认配置。
func DefaultConfig() *Config {
	return &Config{}
}

// Run 对referer列表执行批量分类。
func Run(cfg *Config, referers []string) (*Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.LogLevel != "" {
		logger.SetLogLevel(cfg.LogLevel)
	}

	parser, err := newParser(cfg)
	if err != nil {
		return nil, err
	}

	report := &Report{
		SessionID: uuid.NewV4().String(),
		StartedAt: time.Now(),
		Results:   make([]Result, 0, len(referers)),
	}

	for _, ref := range referers {
		r := parser.Parse(ref, cfg.PageHost, cfg.InternalDomains)
		report.Results = append(report.Results, Result{
			Referer:        ref,
			Classification: r,
			Absent:         r == nil,
		})
	}

	report.Statistics = parser.Stats().Snapshot()
	logger.Debugf("批量分类完成: session=%s, 共 %d 条", report.SessionID, len(referers))
	return report, nil
}

// RunJSON 执行批量分类并返回JSON编码的报告。
func RunJSON(cfg *Config, referers []string) ([]byte, error) {
	report, err := Run(cfg, referers)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(report, "", "  ")
}

// newParser 按配置构建分类器。
func newParser(cfg *Config) (*referer.Parser, error) {
	if cfg.RulesPath == "" {
		parser, err := referer.Default()
		if err != nil {
			return nil, fmt.Errorf("内置规则库加载失败: %v", err)
		}
		// 默认分类器为进程级共享实例，批量报告需要独立统计
		return referer.NewParser(parser.Database()), nil
	}

	db, err := referer.LoadDatabaseFile(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("规则库加载失败: %v", err)
	}
	return referer.NewParser(db), nil
}
