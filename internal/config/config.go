// Package config loads application configuration from an optional YAML
// file and CAPRATE_-prefixed environment variables, and initializes the
// global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Parsing    ParsingConfig    `yaml:"parsing" mapstructure:"parsing"`
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ParsingConfig bounds what counts as a plausible cap rate figure.
type ParsingConfig struct {
	MinCapRate float64 `yaml:"min_cap_rate" mapstructure:"min_cap_rate"`
	MaxCapRate float64 `yaml:"max_cap_rate" mapstructure:"max_cap_rate"`
}

// ValidationConfig configures market name acceptance.
type ValidationConfig struct {
	MinMarketLength int      `yaml:"min_market_length" mapstructure:"min_market_length"`
	ValidMarkets    []string `yaml:"valid_markets" mapstructure:"valid_markets"`
}

// OutputConfig holds the data directories.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	ReportsDir string `yaml:"reports_dir" mapstructure:"reports_dir"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port         int    `yaml:"port" mapstructure:"port"`
	DashboardDir string `yaml:"dashboard_dir" mapstructure:"dashboard_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultMarkets is the reference list of major metro names. A candidate
// containing any of these is accepted as a market outright.
var DefaultMarkets = []string{
	"Atlanta", "Austin", "Boston", "Charlotte", "Chicago", "Dallas",
	"Denver", "Houston", "Los Angeles", "Miami", "Nashville",
	"New York", "Orlando", "Phoenix", "Raleigh", "San Francisco",
	"Seattle", "Tampa", "Washington DC", "Baltimore", "Cincinnati",
	"Cleveland", "Columbus", "Detroit", "Indianapolis", "Kansas City",
	"Las Vegas", "Memphis", "Milwaukee", "Minneapolis", "Pittsburgh",
	"Portland", "Sacramento", "Salt Lake City", "San Antonio",
	"San Diego", "St. Louis", "Virginia Beach", "Fort Lauderdale",
	"Jacksonville", "Richmond", "Tucson", "Albuquerque", "Birmingham",
	"Buffalo", "Charleston", "Grand Rapids", "Greenville", "Hartford",
	"Honolulu", "Louisville", "Oklahoma City", "Omaha", "Providence",
	"Rochester", "Spokane", "Syracuse", "Tulsa", "Fresno",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CAPRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("parsing.min_cap_rate", 0.5)
	v.SetDefault("parsing.max_cap_rate", 15.0)
	v.SetDefault("validation.min_market_length", 3)
	v.SetDefault("validation.valid_markets", DefaultMarkets)
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.reports_dir", "semi_annual_reports")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.dashboard_dir", "dashboard")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode.
// Modes: "parse" (parsing and validation settings), "serve" (server
// settings on top of parse).
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Parsing.MinCapRate < 0 {
		problems = append(problems, "parsing.min_cap_rate must be >= 0")
	}
	if c.Parsing.MaxCapRate <= c.Parsing.MinCapRate {
		problems = append(problems, "parsing.max_cap_rate must be > parsing.min_cap_rate")
	}
	if c.Validation.MinMarketLength < 1 {
		problems = append(problems, "validation.min_market_length must be >= 1")
	}
	if c.Output.Dir == "" {
		problems = append(problems, "output.dir is required")
	}

	switch mode {
	case "parse":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
