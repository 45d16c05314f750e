package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"refo/internal/core/logger"
)

// Config 全局配置结构体
type Config struct {
	Rules  RulesConfig  `yaml:"rules"`
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// RulesConfig 规则库配置
type RulesConfig struct {
	Path string `yaml:"path"` // 外部规则文件路径，留空使用内置规则库
}

// ParserConfig 分类器配置
type ParserConfig struct {
	PageHost        string   `yaml:"page_host"`        // 默认页面主机名
	InternalDomains []string `yaml:"internal_domains"` // 附加内部域名列表
}

// OutputConfig 输出配置
type OutputConfig struct {
	JSON      bool `yaml:"json"`       // 以JSON行输出结果
	NoColor   bool `yaml:"no_color"`   // 禁用彩色输出
	ShowStats bool `yaml:"show_stats"` // 输出统计摘要
}

// LogConfig 日志配置结构体
type LogConfig struct {
	Level       string `yaml:"level"`        // 日志级别
	ColorOutput bool   `yaml:"color_output"` // 彩色输出
}

// 全局配置实例
var GlobalConfig *Config

// DefaultConfig 获取默认配置
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:       "info",
			ColorOutput: true,
		},
	}
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	logger.Debug("[config.go] 开始加载配置文件: ", configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %v", err)
	}

	GlobalConfig = config
	logger.Debug("[config.go] 配置文件加载成功")
	return config, nil
}

// validateConfig 验证配置文件
func validateConfig(config *Config) error {
	if config.Rules.Path != "" {
		if _, err := os.Stat(config.Rules.Path); os.IsNotExist(err) {
			return fmt.Errorf("规则文件不存在: %s", config.Rules.Path)
		}
	}
	return nil
}

// InitConfig 初始化配置（自动查找配置文件）
// 未找到配置文件时回落到默认配置，不视为错误
func InitConfig() error {
	configPaths := []string{
		"config.yaml",
		"./configs/config.yaml",
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := LoadConfig(configPath); err != nil {
				return fmt.Errorf("加载配置文件 %s 失败: %v", configPath, err)
			}
			return nil
		}
	}

	GlobalConfig = DefaultConfig()
	logger.Debug("[config.go] 未找到配置文件，使用默认配置")
	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		GlobalConfig = DefaultConfig()
	}
	return GlobalConfig
}
