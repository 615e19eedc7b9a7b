// Package logging 配置进程级的 zerolog 日志
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel 把配置中的级别名称转换为 zerolog 级别
// 未知名称回退到 info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Options Setup 的选项
type Options struct {
	Level   string
	Verbose bool      // 强制 debug 级别
	Out     io.Writer // 默认 os.Stderr
	NoColor bool
}

// Setup 创建控制台日志，设置为全局 log.Logger 并返回
func Setup(opts Options) zerolog.Logger {
	level := ParseLevel(opts.Level)
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}).With().Timestamp().Logger()

	log.Logger = logger
	logger.Info().Str("loglevel", level.String()).Msg("Logging set up")
	return logger
}

// Component 返回带 component 字段的全局日志子 logger
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
