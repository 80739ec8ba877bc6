package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Prompt     PromptConfig     `yaml:"prompt"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	PostgreSQL PostgreSQLConfig `yaml:"postgresql"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	GinMode        string `yaml:"gin_mode"`
	AllowedOrigins string `yaml:"allowed_origins"`
}

// OpenAIConfig holds completion provider configuration
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	APIBase string `yaml:"api_base"`
	Model   string `yaml:"model"`
	Mode    string `yaml:"mode"`    // "completions" or "chat"
	Timeout int    `yaml:"timeout"` // seconds
	Enabled bool   `yaml:"-"`
}

// PromptConfig controls prompt post-processing
type PromptConfig struct {
	CollapseWhitespace bool `yaml:"collapse_whitespace"`
}

// RateLimitConfig holds submit rate limiting configuration
type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Window   time.Duration `yaml:"window"`
}

// PostgreSQLConfig holds the optional audit database configuration
type PostgreSQLConfig struct {
	DSN                string `yaml:"dsn"`
	MaxConnections     int    `yaml:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections"`
}

// API modes
const (
	ModeCompletions = "completions"
	ModeChat        = "chat"
)

// Default returns a Config populated with defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			Host:           "127.0.0.1",
			GinMode:        "release",
			AllowedOrigins: "*",
		},
		OpenAI: OpenAIConfig{
			APIBase: "https://api.openai.com/v1",
			Model:   "text-davinci-003",
			Mode:    ModeCompletions,
			Timeout: 30,
		},
		RateLimit: RateLimitConfig{
			Capacity: 10,
			Window:   time.Minute,
		},
		PostgreSQL: PostgreSQLConfig{
			MaxConnections:     5,
			MaxIdleConnections: 2,
		},
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads an optional YAML file, then applies environment variables on top
func LoadFile(path string) (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Server = ServerConfig{
		Port:           getEnvAsInt("SERVER_PORT", cfg.Server.Port),
		Host:           getEnv("SERVER_HOST", cfg.Server.Host),
		GinMode:        getEnv("GIN_MODE", cfg.Server.GinMode),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", cfg.Server.AllowedOrigins),
	}
	cfg.OpenAI = OpenAIConfig{
		APIKey:  getEnv("OPENAI_API_KEY", cfg.OpenAI.APIKey),
		APIBase: getEnv("OPENAI_API_BASE", cfg.OpenAI.APIBase),
		Model:   getEnv("OPENAI_MODEL", cfg.OpenAI.Model),
		Mode:    getEnv("OPENAI_API_MODE", cfg.OpenAI.Mode),
		Timeout: getEnvAsInt("OPENAI_TIMEOUT", cfg.OpenAI.Timeout),
	}
	cfg.OpenAI.Enabled = cfg.OpenAI.APIKey != ""
	cfg.Prompt.CollapseWhitespace = getEnvAsBool("PROMPT_COLLAPSE_WHITESPACE", cfg.Prompt.CollapseWhitespace)
	cfg.RateLimit = RateLimitConfig{
		Capacity: getEnvAsInt("RATE_LIMIT_CAPACITY", cfg.RateLimit.Capacity),
		Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window),
	}
	cfg.PostgreSQL = PostgreSQLConfig{
		DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", cfg.PostgreSQL.DSN)),
		MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", cfg.PostgreSQL.MaxConnections),
		MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", cfg.PostgreSQL.MaxIdleConnections),
	}

	if cfg.OpenAI.Mode != ModeCompletions && cfg.OpenAI.Mode != ModeChat {
		return nil, fmt.Errorf("invalid OPENAI_API_MODE %q, must be %q or %q", cfg.OpenAI.Mode, ModeCompletions, ModeChat)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AuditEnabled reports whether generation events should be written to PostgreSQL
func (c *Config) AuditEnabled() bool {
	return c.PostgreSQL.DSN != ""
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
