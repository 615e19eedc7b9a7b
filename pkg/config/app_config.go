package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
)

// 窗口默认尺寸
const (
	DefaultWindowWidth  = 640
	DefaultWindowHeight = 400
	DefaultWindowTitle  = "Hello Spin3D"
)

// 帧时钟模式
const (
	ClockFixed    = "fixed"
	ClockMeasured = "measured"
)

// EnvPrefix 环境变量前缀，例如 SPIN3D_LOGLEVEL=debug、SPIN3D_TRACE_DSN=trace.db
const EnvPrefix = "SPIN3D"

// AppConfig 程序级配置
type AppConfig struct {
	Window     WindowConfig `mapstructure:"window"`
	ClearColor []float64    `mapstructure:"clearColor"`
	Clock      ClockConfig  `mapstructure:"clock"`
	LogLevel   string       `mapstructure:"logLevel"`
	// ScenePath 场景文件路径，为空时使用嵌入的 data/scene.yaml
	ScenePath string         `mapstructure:"scenePath"`
	Trace     TraceConfig    `mapstructure:"trace"`
	Metrics   MetricsConfig  `mapstructure:"metrics"`
	Snapshot  SnapshotConfig `mapstructure:"snapshot"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title     string `mapstructure:"title"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Resizable bool   `mapstructure:"resizable"`
	DrawEdges bool   `mapstructure:"drawEdges"`
}

// ClockConfig 帧时钟配置
type ClockConfig struct {
	Mode      string  `mapstructure:"mode"`
	TPS       int     `mapstructure:"tps"`
	TimeScale float64 `mapstructure:"timeScale"`
}

// TraceConfig 轨迹记录配置，DSN 为空表示不记录
type TraceConfig struct {
	DSN      string `mapstructure:"dsn"`
	Interval int    `mapstructure:"interval"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SnapshotConfig 快照存储配置
type SnapshotConfig struct {
	// AppName gdata 存储目录名
	AppName string `mapstructure:"appName"`
	// Autosave 自动保存间隔（模拟秒），0 表示只在退出时保存
	Autosave float64 `mapstructure:"autosave"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", DefaultWindowTitle)
	v.SetDefault("window.width", DefaultWindowWidth)
	v.SetDefault("window.height", DefaultWindowHeight)
	v.SetDefault("window.resizable", false)
	v.SetDefault("window.drawEdges", false)

	v.SetDefault("clearColor", []float64{0.029, 0.008, 0.08, 1.0})

	v.SetDefault("clock.mode", ClockFixed)
	v.SetDefault("clock.tps", 60)
	v.SetDefault("clock.timeScale", 1.0)

	v.SetDefault("logLevel", "info")
	v.SetDefault("scenePath", "")

	v.SetDefault("trace.dsn", "")
	v.SetDefault("trace.interval", 10)

	v.SetDefault("metrics.enabled", false)

	v.SetDefault("snapshot.appName", "spin3d")
	v.SetDefault("snapshot.autosave", 0.0)
}

// LoadAppConfig 读取程序配置
//
// 优先级（高到低）: 环境变量 SPIN3D_*、配置文件、默认值。
// path 为空时不读取配置文件。
func LoadAppConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置有效性
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if len(c.ClearColor) != 4 {
		return fmt.Errorf("clearColor needs 4 channels, got %d", len(c.ClearColor))
	}
	for _, ch := range c.ClearColor {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("clearColor channels must be in [0,1], got %v", c.ClearColor)
		}
	}
	switch c.Clock.Mode {
	case ClockFixed, ClockMeasured:
	default:
		return fmt.Errorf("unknown clock mode %q (want %q or %q)", c.Clock.Mode, ClockFixed, ClockMeasured)
	}
	if c.Clock.TimeScale < 0 {
		return fmt.Errorf("clock timeScale must not be negative, got %f", c.Clock.TimeScale)
	}
	if c.Snapshot.Autosave < 0 {
		return fmt.Errorf("snapshot autosave must not be negative, got %f", c.Snapshot.Autosave)
	}
	if c.Trace.Interval < 1 {
		return fmt.Errorf("trace interval must be at least 1, got %d", c.Trace.Interval)
	}
	return nil
}

// ClearRGBA 返回清屏颜色
func (c *AppConfig) ClearRGBA() color.RGBA {
	to8 := func(v float64) uint8 { return uint8(v*255 + 0.5) }
	return color.RGBA{
		R: to8(c.ClearColor[0]),
		G: to8(c.ClearColor[1]),
		B: to8(c.ClearColor[2]),
		A: to8(c.ClearColor[3]),
	}
}
