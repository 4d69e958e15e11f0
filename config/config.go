package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rustyeddy/candles/market"
	"gopkg.in/yaml.v3"
)

// Config represents the complete run configuration
type Config struct {
	Source      SourceConfig      `json:"source" yaml:"source"`
	Aggregation AggregationConfig `json:"aggregation" yaml:"aggregation" envPrefix:"CANDLES_"`
	Indicators  IndicatorConfig   `json:"indicators" yaml:"indicators" envPrefix:"CANDLES_"`
	Log         LogConfig         `json:"log" yaml:"log" envPrefix:"CANDLES_LOG_"`
}

// SourceConfig says where the price ticks come from. URL wins over Path.
type SourceConfig struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty" env:"CANDLES_SOURCE" default:"./prices.csv"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty" env:"PRICES_URL" validate:"omitempty,url"`
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty" env:"CANDLES_FETCH_TIMEOUT" default:"60s" validate:"omitempty,duration"` // e.g. "30s"
}

// Location returns the URL if set, else the path.
func (s SourceConfig) Location() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// ParseTimeout converts the timeout string to time.Duration
func (s SourceConfig) ParseTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Timeout)
}

// AggregationConfig controls candle building
type AggregationConfig struct {
	Precision int32  `json:"precision" yaml:"precision" env:"PRECISION" default:"8" validate:"gte=0,lte=28"`
	Trailing  string `json:"trailing" yaml:"trailing" env:"TRAILING" default:"flush" validate:"omitempty,oneof=flush drop"`
}

// IndicatorConfig holds the default windows, in daily candles
type IndicatorConfig struct {
	SMAWindow int `json:"sma_window" yaml:"sma_window" env:"SMA_WINDOW" default:"5" validate:"gte=1"`
	EMAWindow int `json:"ema_window" yaml:"ema_window" env:"EMA_WINDOW" default:"5" validate:"gte=1"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" env:"FORMAT" default:"console" validate:"oneof=console json"`
}

// Load builds a configuration from defaults, an optional file and the
// environment, in that order. A .env file in the working directory is
// read first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML) on top of
// the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks the struct tags and reports the first problem using the
// file's field names, e.g. "indicators.sma_window".
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(fieldMessage(verrs[0]))
	}
	return err
}

// Precision returns the aggregation precision as a market.Precision.
func (c *Config) Precision() market.Precision {
	return market.Precision(c.Aggregation.Precision)
}

// TrailingPolicy returns the parsed trailing policy. Validate has already
// rejected unknown values.
func (c *Config) TrailingPolicy() market.TrailingPolicy {
	p, _ := market.ParseTrailingPolicy(c.Aggregation.Trailing)
	return p
}

// Default returns a configuration filled from the default tags
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Only reachable with a malformed default tag.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}
