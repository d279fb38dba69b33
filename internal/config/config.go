// Package config provides Viper-based hierarchical configuration for the complaint classifier,
// .env loading and the two-tier API credential lookup.
package config

import (
	"fmt"
	"strings"

	"fjacquet/complaint-classifier/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override (CLASSIFIER_LOG_LEVEL, ...).
const EnvPrefix = "CLASSIFIER"

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CircuitBreakerConfig controls the breaker around model calls.
type CircuitBreakerConfig struct {
	Enabled     bool `mapstructure:"enabled" yaml:"enabled"`
	MaxFailures int  `mapstructure:"max_failures" yaml:"max_failures"`
	OpenSeconds int  `mapstructure:"open_seconds" yaml:"open_seconds"`
}

// AIConfig controls the remote model.
type AIConfig struct {
	Model             string               `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int                  `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	TimeoutSeconds    int                  `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	CircuitBreaker    CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
	APIKey            string               `mapstructure:"-" yaml:"-"` // Filled by ResolveAPIKey, never serialized
}

// ServerConfig controls the web form listener.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port"`
	Mode            string `mapstructure:"mode" yaml:"mode"`
	MaxConnections  int    `mapstructure:"max_connections" yaml:"max_connections"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds" yaml:"shutdown_seconds"`
}

// SecretsConfig points at the structured secrets source.
type SecretsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Secrets SecretsConfig `mapstructure:"secrets" yaml:"secrets"`
}

// Address returns host:port for the web server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// InitializeConfig loads defaults, an optional config.yaml and CLASSIFIER_* environment variables.
func InitializeConfig() (*Config, error) {
	return InitializeConfigWithFile("")
}

// InitializeConfigWithFile is InitializeConfig reading configFile instead of searching
// the standard locations. An empty configFile searches.
func InitializeConfigWithFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.complaint-classifier")
		v.AddConfigPath(".complaint-classifier")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// LOG_LEVEL is honoured as a fallback; CLASSIFIER_LOG_LEVEL wins over it.
	v.SetDefault("log.level", GetEnv("LOG_LEVEL", "info"))
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.requests_per_minute", 0)
	v.SetDefault("ai.timeout_seconds", 0)
	v.SetDefault("ai.circuit_breaker.enabled", false)
	v.SetDefault("ai.circuit_breaker.max_failures", 5)
	v.SetDefault("ai.circuit_breaker.open_seconds", 30)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8501)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_connections", 64)
	v.SetDefault("server.shutdown_seconds", 15)

	v.SetDefault("secrets.file", DefaultSecretsFile)
}

// Validate checks a configuration changed after loading, e.g. by command-line overrides.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.AI.Model) == "" {
		return fmt.Errorf("ai.model must not be empty")
	}

	// 0 disables the limiter
	if config.AI.RequestsPerMinute < 0 || config.AI.RequestsPerMinute > 1000 {
		return fmt.Errorf("ai.requests_per_minute must be between 0 and 1000, got: %d", config.AI.RequestsPerMinute)
	}

	// 0 keeps the client default
	if config.AI.TimeoutSeconds < 0 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 0 and 300, got: %d", config.AI.TimeoutSeconds)
	}

	if config.AI.CircuitBreaker.Enabled {
		if config.AI.CircuitBreaker.MaxFailures < 1 {
			return fmt.Errorf("ai.circuit_breaker.max_failures must be at least 1, got: %d", config.AI.CircuitBreaker.MaxFailures)
		}
		if config.AI.CircuitBreaker.OpenSeconds < 1 {
			return fmt.Errorf("ai.circuit_breaker.open_seconds must be at least 1, got: %d", config.AI.CircuitBreaker.OpenSeconds)
		}
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	switch config.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode: %s (must be 'debug', 'release' or 'test')", config.Server.Mode)
	}

	if config.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must not be negative, got: %d", config.Server.MaxConnections)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
