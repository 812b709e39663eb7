package model

import "time"

// Config is the full service configuration. Values come from defaults,
// the YAML config file, CLAIMSIGHT_* environment variables, and CLI
// flags, in ascending priority.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	OCR    OCRConfig    `yaml:"ocr" mapstructure:"ocr"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	BodyLimit       string        `yaml:"body_limit" mapstructure:"body_limit"`
	CORSOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	AskDelay        time.Duration `yaml:"ask_delay" mapstructure:"ask_delay"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// OCRConfig selects and configures the vision backend.
type OCRConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "gemini", "openai", or "" (demo fallback only)
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"` // env only, never written to disk
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// CacheConfig configures the OCR result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			BodyLimit:       "20M",
			CORSOrigins:     []string{"*"},
			RateLimitRPS:    10,
			RateLimitBurst:  20,
			AskDelay:        2 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		OCR: OCRConfig{
			Provider: "",
			Model:    "",
			Timeout:  30,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}
