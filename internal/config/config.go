// Package config loads section-stats settings from defaults, an optional YAML
// file and SECTION_STATS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrEmptyOutputDir    = errors.New("output directory must not be empty")
	ErrNoFormats         = errors.New("at least one output format is required")
	ErrInvalidAxisLength = errors.New("chart axis length must be positive")
	ErrInvalidTopNames   = errors.New("chart top names must be positive")
	ErrInvalidSize       = errors.New("chart size must be positive")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
)

// Default configuration values.
const (
	DefaultOutputDir   = "output"
	DefaultFormat      = "png"
	DefaultAxisLength  = 50
	DefaultTopNames    = 50
	DefaultWidth       = 1200
	DefaultHeight      = 800
	DefaultNamesWidth  = 1000
	DefaultNamesHeight = 1200
	DefaultSummaryTop  = 10

	envPrefix  = "SECTION_STATS"
	configName = "section-stats"
)

// Config holds all configuration for a section-stats run.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Summary SummaryConfig `mapstructure:"summary"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig selects where and what is written.
type OutputConfig struct {
	Directory string   `mapstructure:"directory"`
	Formats   []string `mapstructure:"formats"`
}

// ChartConfig holds chart dimensions. Sizes are in pixels.
type ChartConfig struct {
	AxisLength  int `mapstructure:"axis_length"`
	TopNames    int `mapstructure:"top_names"`
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	NamesWidth  int `mapstructure:"names_width"`
	NamesHeight int `mapstructure:"names_height"`
}

// SummaryConfig controls the table printed after aggregation.
type SummaryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Top     int  `mapstructure:"top"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for section-stats.yaml in . and ./config;
// a missing file there is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.directory", DefaultOutputDir)
	viperCfg.SetDefault("output.formats", []string{DefaultFormat})

	viperCfg.SetDefault("chart.axis_length", DefaultAxisLength)
	viperCfg.SetDefault("chart.top_names", DefaultTopNames)
	viperCfg.SetDefault("chart.width", DefaultWidth)
	viperCfg.SetDefault("chart.height", DefaultHeight)
	viperCfg.SetDefault("chart.names_width", DefaultNamesWidth)
	viperCfg.SetDefault("chart.names_height", DefaultNamesHeight)

	viperCfg.SetDefault("summary.enabled", true)
	viperCfg.SetDefault("summary.top", DefaultSummaryTop)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
}

// Validate checks every setting. It is called by LoadConfig and again by
// callers that override values from flags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Directory) == "" {
		return ErrEmptyOutputDir
	}

	if len(c.Output.Formats) == 0 {
		return ErrNoFormats
	}

	if c.Chart.AxisLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAxisLength, c.Chart.AxisLength)
	}

	if c.Chart.TopNames <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopNames, c.Chart.TopNames)
	}

	for _, size := range []int{c.Chart.Width, c.Chart.Height, c.Chart.NamesWidth, c.Chart.NamesHeight} {
		if size <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}
