// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/xkilldash9x/boxmodel/internal/browser/painting"
)

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	RenderCfg RenderConfig `mapstructure:"render" yaml:"render"`
}

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Render() RenderConfig { return c.RenderCfg }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// RenderConfig controls the rendering pipeline: the viewport used as the initial
// containing block, how results are written, and how many documents render at once.
type RenderConfig struct {
	ViewportWidth  int    `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int    `mapstructure:"viewport_height" yaml:"viewport_height"`
	OutputFormat   string `mapstructure:"output_format" yaml:"output_format"`
	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
	JPEGQuality    int    `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
	Concurrency    int    `mapstructure:"concurrency" yaml:"concurrency"`
	// InlineStyles applies declarations from an element's style attribute after all rules.
	InlineStyles bool `mapstructure:"inline_styles" yaml:"inline_styles"`
}

// Validate checks the render section for sane values.
func (r *RenderConfig) Validate() error {
	if r.ViewportWidth <= 0 || r.ViewportHeight <= 0 {
		return fmt.Errorf("render.viewport_width and render.viewport_height must be positive integers")
	}
	if r.Concurrency <= 0 {
		return fmt.Errorf("render.concurrency must be a positive integer")
	}
	switch strings.ToLower(r.OutputFormat) {
	case painting.FormatPNG, painting.FormatJPEG, painting.FormatSVG, painting.FormatJSON:
	default:
		return fmt.Errorf("render.output_format %q is not one of png, jpeg, svg, json", r.OutputFormat)
	}
	if r.JPEGQuality < 1 || r.JPEGQuality > 100 {
		return fmt.Errorf("render.jpeg_quality must be between 1 and 100")
	}
	return nil
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "boxmodel")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Render --
	v.SetDefault("render.viewport_width", 800)
	v.SetDefault("render.viewport_height", 600)
	v.SetDefault("render.output_format", painting.FormatPNG)
	v.SetDefault("render.output_dir", ".")
	v.SetDefault("render.jpeg_quality", 90)
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("render.inline_styles", true)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	v.SetEnvPrefix("BOXMODEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	dir, err := homedir.Expand(cfg.RenderCfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("could not expand render.output_dir: %w", err)
	}
	cfg.RenderCfg.OutputDir = dir
	cfg.RenderCfg.OutputFormat = strings.ToLower(cfg.RenderCfg.OutputFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.RenderCfg.Validate(); err != nil {
		return err
	}
	if c.LoggerCfg.LogFile != "" && c.LoggerCfg.MaxSize <= 0 {
		return fmt.Errorf("logger.max_size must be a positive integer when logger.log_file is set")
	}
	return nil
}
