package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// ===========================================
// refo日志系统 - gologger封装层
// ===========================================

// LogConfig 日志配置结构
type LogConfig struct {
	Level       string `yaml:"level"`        // 日志级别
	ColorOutput bool   `yaml:"color_output"` // 彩色输出
}

// Logger refo日志封装器，底层使用gologger实现
type Logger struct {
	config       *LogConfig
	currentLevel levels.Level
}

// 全局日志实例
var globalLogger *Logger

// Initialize 初始化日志系统
func Initialize(config *LogConfig) error {
	if config == nil {
		config = defaultLogConfig()
	}

	level := parseLogLevel(config.Level)
	gologger.DefaultLogger.SetMaxLevel(level)
	os.Setenv("GOLOGGER_TIMESTAMP", "false")
	if !config.ColorOutput {
		os.Setenv("NO_COLOR", "1")
	}

	globalLogger = &Logger{
		config:       config,
		currentLevel: level,
	}
	return nil
}

// parseLogLevel 解析日志级别
func parseLogLevel(levelStr string) levels.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return levels.LevelDebug
	case "info":
		return levels.LevelInfo
	case "warn", "warning":
		return levels.LevelWarning
	case "error":
		return levels.LevelError
	case "fatal":
		return levels.LevelFatal
	default:
		return levels.LevelInfo
	}
}

// defaultLogConfig 获取默认日志配置
func defaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:       "info",
		ColorOutput: true,
	}
}

// SetLogLevel 设置日志级别
func SetLogLevel(levelStr string) {
	level := parseLogLevel(levelStr)
	gologger.DefaultLogger.SetMaxLevel(level)
	if globalLogger != nil {
		globalLogger.currentLevel = level
	}
}

// ===========================================
// 实例日志方法
// ===========================================

// Info 信息级别日志
func (l *Logger) Info(args ...interface{}) {
	l.printWithFormat(levels.LevelInfo, fmt.Sprint(args...))
}

// Infof 格式化信息级别日志
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelInfo, fmt.Sprintf(format, args...))
}

// Debug 调试级别日志
func (l *Logger) Debug(args ...interface{}) {
	l.printWithFormat(levels.LevelDebug, fmt.Sprint(args...))
}

// Debugf 格式化调试级别日志
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelDebug, fmt.Sprintf(format, args...))
}

// Warn 警告级别日志
func (l *Logger) Warn(args ...interface{}) {
	l.printWithFormat(levels.LevelWarning, fmt.Sprint(args...))
}

// Warnf 格式化警告级别日志
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelWarning, fmt.Sprintf(format, args...))
}

// Error 错误级别日志
func (l *Logger) Error(args ...interface{}) {
	l.printWithFormat(levels.LevelError, fmt.Sprint(args...))
}

// Errorf 格式化错误级别日志
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelError, fmt.Sprintf(format, args...))
}

// Fatal 致命错误日志
func (l *Logger) Fatal(args ...interface{}) {
	l.printWithFormat(levels.LevelFatal, fmt.Sprint(args...))
	os.Exit(1)
}

// Fatalf 格式化致命错误日志
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.printWithFormat(levels.LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// printWithFormat 使用refo自定义格式打印日志
func (l *Logger) printWithFormat(level levels.Level, message string) {
	if level > l.currentLevel {
		return
	}

	var levelColor, resetColor string
	if l.config.ColorOutput {
		switch level {
		case levels.LevelDebug:
			levelColor = "\033[36m" // 青色
		case levels.LevelInfo:
			levelColor = "\033[34m" // 蓝色
		case levels.LevelWarning:
			levelColor = "\033[33m" // 黄色
		case levels.LevelError:
			levelColor = "\033[31m" // 红色
		case levels.LevelFatal:
			levelColor = "\033[35m" // 紫色
		}
		resetColor = "\033[0m"
	}

	var levelText string
	switch level {
	case levels.LevelDebug:
		levelText = "DBG"
	case levels.LevelWarning:
		levelText = "WRN"
	case levels.LevelError:
		levelText = "ERR"
	case levels.LevelFatal:
		levelText = "FTL"
	default:
		levelText = "INF"
	}

	var output string
	if l.config.ColorOutput {
		output = fmt.Sprintf("%s[%s]%s %s", levelColor, levelText, resetColor, message)
	} else {
		output = fmt.Sprintf("[%s] %s", levelText, message)
	}

	if level >= levels.LevelError {
		fmt.Fprintln(os.Stderr, output)
	} else {
		fmt.Println(output)
	}
}

// ===========================================
// 全局日志函数
// ===========================================

func getLogger() *Logger {
	if globalLogger != nil {
		return globalLogger
	}
	return &Logger{config: defaultLogConfig(), currentLevel: levels.LevelInfo}
}

// Info 全局信息日志
func Info(args ...interface{}) {
	getLogger().Info(args...)
}

// Infof 全局格式化信息日志
func Infof(format string, args ...interface{}) {
	getLogger().Infof(format, args...)
}

// Debug 全局调试日志
func Debug(args ...interface{}) {
	getLogger().Debug(args...)
}

// Debugf 全局格式化调试日志
func Debugf(format string, args ...interface{}) {
	getLogger().Debugf(format, args...)
}

// Warn 全局警告日志
func Warn(args ...interface{}) {
	getLogger().Warn(args...)
}

// Warnf 全局格式化警告日志
func Warnf(format string, args ...interface{}) {
	getLogger().Warnf(format, args...)
}

// Error 全局错误日志
func Error(args ...interface{}) {
	getLogger().Error(args...)
}

// Errorf 全局格式化错误日志
func Errorf(format string, args ...interface{}) {
	getLogger().Errorf(format, args...)
}

// Fatal 全局致命错误日志
func Fatal(args ...interface{}) {
	getLogger().Fatal(args...)
}

// Fatalf 全局格式化致命错误日志
func Fatalf(format string, args ...interface{}) {
	getLogger().Fatalf(format, args...)
}
