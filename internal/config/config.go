package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. XBOX11_LOG_LEVEL.
const EnvPrefix = "XBOX11"

// Config holds application configuration.
type Config struct {
	Log     Log
	Webview Webview
	Window  Window
	Gamepad Gamepad
}

// Log describes the log sinks. It is consumed once at startup.
type Log struct {
	Level        string `mapstructure:"level"`
	ConsoleLevel string `mapstructure:"console_level"`
	Dir          string `mapstructure:"dir"`
	Basename     string `mapstructure:"basename"`
	Suffix       string `mapstructure:"suffix"`
	MaxSizeMB    int    `mapstructure:"max_size_mb"`
	MaxBackups   int    `mapstructure:"max_backups"`
}

// Webview holds settings for the embedded web rendering surface.
type Webview struct {
	RemoteDebugging     bool `mapstructure:"remote_debugging"`
	RemoteDebuggingPort int  `mapstructure:"remote_debugging_port"`
}

// Window holds the main window geometry.
type Window struct {
	Width  float32 `mapstructure:"width"`
	Height float32 `mapstructure:"height"`
}

// Gamepad holds input polling settings.
type Gamepad struct {
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	AxisThreshold float64       `mapstructure:"axis_threshold"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log: Log{
			Level:        "info",
			ConsoleLevel: "info",
			Dir:          "logs",
			Basename:     "xbox11",
			Suffix:       "log",
			MaxSizeMB:    10,
			MaxBackups:   3,
		},
		Webview: Webview{
			RemoteDebugging:     true,
			RemoteDebuggingPort: 9222,
		},
		Window: Window{
			Width:  1024,
			Height: 640,
		},
		Gamepad: Gamepad{
			PollInterval:  16 * time.Millisecond,
			AxisThreshold: 0.5,
		},
	}
}

// Load reads configuration from defaults, an optional file named by
// XBOX11_CONFIG, and XBOX11_* environment variables, in increasing priority.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if cfgPath := os.Getenv(EnvPrefix + "_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console_level", d.Log.ConsoleLevel)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.basename", d.Log.Basename)
	v.SetDefault("log.suffix", d.Log.Suffix)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("webview.remote_debugging", d.Webview.RemoteDebugging)
	v.SetDefault("webview.remote_debugging_port", d.Webview.RemoteDebuggingPort)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("gamepad.poll_interval", d.Gamepad.PollInterval)
	v.SetDefault("gamepad.axis_threshold", d.Gamepad.AxisThreshold)
}
