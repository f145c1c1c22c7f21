package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"screener/internal/dataprocessing"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Upload    UploadConfig    `yaml:"upload" envconfig:"UPLOAD"`
	Screening ScreeningConfig `yaml:"screening" envconfig:"SCREENING"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains security-related configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// UploadConfig bounds workbook uploads and names the required columns.
type UploadConfig struct {
	MaxFileSize int64                        `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE"`
	Columns     dataprocessing.ColumnMapping `yaml:"columns" envconfig:"COLUMNS"`
}

// ScreeningConfig controls session lifetime and the chart subset bounds.
type ScreeningConfig struct {
	SessionTTL      time.Duration `yaml:"session_ttl" envconfig:"SESSION_TTL"`
	JanitorInterval time.Duration `yaml:"janitor_interval" envconfig:"JANITOR_INTERVAL"`
	MaxTopN         int           `yaml:"max_top_n" envconfig:"MAX_TOP_N"`
}

// ChartConfig is the rendering configuration handed to the presentation
// layer with every chart payload. Fonts for CJK labels are explicit
// configuration here rather than process-global state.
type ChartConfig struct {
	FontFamily    string   `yaml:"font_family" envconfig:"FONT_FAMILY"`
	FallbackFonts []string `yaml:"fallback_fonts" envconfig:"FALLBACK_FONTS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			EnableCORS: true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/screener.log",
		},
		Upload: UploadConfig{
			MaxFileSize: 10 * 1024 * 1024,
			Columns:     dataprocessing.DefaultColumnMapping(),
		},
		Screening: ScreeningConfig{
			SessionTTL:      time.Hour,
			JanitorInterval: 5 * time.Minute,
			MaxTopN:         10,
		},
		Chart: ChartConfig{
			FontFamily:    "Arial Unicode MS",
			FallbackFonts: []string{"SimHei"},
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file on top, and SCREENER_* environment variables on top of
// both.
func Load() (*Config, error) {
	cfg := Default()

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("SCREENER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if cfg.Upload.Columns == (dataprocessing.ColumnMapping{}) {
		cfg.Upload.Columns = dataprocessing.DefaultColumnMapping()
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location, overridable through
// SCREENER_CONFIG_FILE.
func configFilePath() string {
	if p := os.Getenv("SCREENER_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

// validate checks the configuration for values that would break startup.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload max file size must be positive, got %d", c.Upload.MaxFileSize)
	}
	if c.Screening.MaxTopN < 1 {
		return fmt.Errorf("screening max top-n must be at least 1, got %d", c.Screening.MaxTopN)
	}
	if c.Screening.SessionTTL <= 0 {
		return fmt.Errorf("screening session ttl must be positive, got %s", c.Screening.SessionTTL)
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive when enabled, got %f", c.Security.RateLimit.RPS)
	}
	return nil
}
