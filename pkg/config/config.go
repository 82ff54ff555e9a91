package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"TradePulse/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Data struct {
		Backend    string `yaml:"backend"` // file or sqlite
		Dir        string `yaml:"dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"data"`
	Cache struct {
		Backend string        `yaml:"backend"` // memory, redis, or layered
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Forecast struct {
		Window         int     `yaml:"window"`
		DefaultHorizon int     `yaml:"default_horizon"`
		MaxHorizon     int     `yaml:"max_horizon"`
		LinearWeight   float64 `yaml:"linear_weight"`
		SeasonalWeight float64 `yaml:"seasonal_weight"`
		MLWeight       float64 `yaml:"ml_weight"`
	} `yaml:"forecast"`
	Insights struct {
		Enabled bool          `yaml:"enabled"`
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
		RPS     float64       `yaml:"rps"`
	} `yaml:"insights"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("DATA_BACKEND"); v != "" {
		c.Data.Backend = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Data.SQLitePath = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Cache.Redis.Port = util.ParseIntDefault(v, c.Cache.Redis.Port)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("INSIGHTS_API_KEY"); v != "" {
		c.Insights.APIKey = v
	}
	if v := os.Getenv("INSIGHTS_BASE_URL"); v != "" {
		c.Insights.BaseURL = v
	}
	if v := os.Getenv("INSIGHTS_RPS"); v != "" {
		c.Insights.RPS = util.ParseFloatDefault(v, c.Insights.RPS)
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Forecast.Window <= 0 {
		c.Forecast.Window = 8
	}
	if c.Forecast.DefaultHorizon <= 0 {
		c.Forecast.DefaultHorizon = 4
	}
	if c.Forecast.MaxHorizon <= 0 {
		c.Forecast.MaxHorizon = 12
	}
	// Ensemble weights are policy constants carried over from the original
	// dashboard; override only if all three are set.
	if c.Forecast.LinearWeight == 0 && c.Forecast.SeasonalWeight == 0 && c.Forecast.MLWeight == 0 {
		c.Forecast.LinearWeight = 0.3
		c.Forecast.SeasonalWeight = 0.4
		c.Forecast.MLWeight = 0.3
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Redis.Host == "" {
		c.Cache.Redis.Host = "localhost"
	}
	if c.Cache.Redis.Port <= 0 {
		c.Cache.Redis.Port = 6379
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 60 * time.Second
	}
	if c.Insights.Timeout <= 0 {
		c.Insights.Timeout = 30 * time.Second
	}
	if c.Insights.RPS <= 0 {
		c.Insights.RPS = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Data.Backend {
	case "file":
		if c.Data.Dir == "" {
			return fmt.Errorf("data.dir is required for the file backend")
		}
	case "sqlite":
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("data.sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("data.backend must be 'file' or 'sqlite', got '%s'", c.Data.Backend)
	}
	switch c.Cache.Backend {
	case "", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis', or 'layered', got '%s'", c.Cache.Backend)
	}
	wsum := c.Forecast.LinearWeight + c.Forecast.SeasonalWeight + c.Forecast.MLWeight
	if wsum <= 0 {
		return fmt.Errorf("forecast ensemble weights must sum to a positive value")
	}
	if c.Insights.Enabled && c.Insights.BaseURL == "" {
		return fmt.Errorf("insights.base_url is required when insights are enabled")
	}
	return nil
}
