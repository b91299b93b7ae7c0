// Package config loads desktop-mcp settings from defaults, an optional YAML
// file and DESKTOP_MCP_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// DESKTOP_MCP_AUTOMATION_ELEMENT_TIMEOUT=10s.
const EnvPrefix = "DESKTOP_MCP"

// Config is the root configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Automation AutomationConfig `mapstructure:"automation" yaml:"automation"`
	Input      InputConfig      `mapstructure:"input" yaml:"input"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// AutomationConfig holds search and interaction timing.
type AutomationConfig struct {
	WindowTimeout       time.Duration `mapstructure:"window_timeout" yaml:"window_timeout"`
	ElementTimeout      time.Duration `mapstructure:"element_timeout" yaml:"element_timeout"`
	WaitTimeout         time.Duration `mapstructure:"wait_timeout" yaml:"wait_timeout"`
	LaunchTimeout       time.Duration `mapstructure:"launch_timeout" yaml:"launch_timeout"`
	PollInterval        time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	SnapshotDepth       int           `mapstructure:"snapshot_depth" yaml:"snapshot_depth"`
	SelectSettle        time.Duration `mapstructure:"select_settle" yaml:"select_settle"`
	InteractableTimeout time.Duration `mapstructure:"interactable_timeout" yaml:"interactable_timeout"`
	CloseGrace          time.Duration `mapstructure:"close_grace" yaml:"close_grace"`
	InputIdleTimeout    time.Duration `mapstructure:"input_idle_timeout" yaml:"input_idle_timeout"`
	HistorySize         int           `mapstructure:"history_size" yaml:"history_size"`
}

// InputConfig holds synthetic input settings.
type InputConfig struct {
	// KeystrokesPerSecond paces typed text; zero types at full speed.
	KeystrokesPerSecond float64 `mapstructure:"keystrokes_per_second" yaml:"keystrokes_per_second"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name            string        `mapstructure:"name" yaml:"name"`
	Transport       string        `mapstructure:"transport" yaml:"transport"`
	Address         string        `mapstructure:"address" yaml:"address"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Transports accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "desktop-mcp")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Automation --
	v.SetDefault("automation.window_timeout", "10s")
	v.SetDefault("automation.element_timeout", "5s")
	v.SetDefault("automation.wait_timeout", "30s")
	v.SetDefault("automation.launch_timeout", "30s")
	v.SetDefault("automation.poll_interval", "200ms")
	v.SetDefault("automation.snapshot_depth", 4)
	v.SetDefault("automation.select_settle", "300ms")
	v.SetDefault("automation.interactable_timeout", "2s")
	v.SetDefault("automation.close_grace", "5s")
	v.SetDefault("automation.input_idle_timeout", "1s")
	v.SetDefault("automation.history_size", 16)

	// -- Input --
	v.SetDefault("input.keystrokes_per_second", 0)

	// -- Server --
	v.SetDefault("server.name", "desktop-mcp")
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "5s")
}

// New returns a viper instance with defaults and environment overrides
// registered.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes it.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	a := c.Automation
	for name, d := range map[string]time.Duration{
		"automation.window_timeout":       a.WindowTimeout,
		"automation.element_timeout":      a.ElementTimeout,
		"automation.wait_timeout":         a.WaitTimeout,
		"automation.launch_timeout":       a.LaunchTimeout,
		"automation.poll_interval":        a.PollInterval,
		"automation.interactable_timeout": a.InteractableTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if a.SnapshotDepth <= 0 {
		return fmt.Errorf("automation.snapshot_depth must be a positive integer")
	}
	if a.SelectSettle < 0 || a.CloseGrace < 0 || a.InputIdleTimeout < 0 {
		return fmt.Errorf("automation delays must not be negative")
	}
	if c.Input.KeystrokesPerSecond < 0 {
		return fmt.Errorf("input.keystrokes_per_second must not be negative")
	}
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("server.transport must be %s or %s, got %q", TransportStdio, TransportHTTP, c.Server.Transport)
	}
	if c.Server.Transport == TransportHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	return nil
}
