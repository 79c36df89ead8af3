// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Output struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"output" yaml:"output"`

	Rules struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"rules" yaml:"rules"`

	Classification struct {
		UseDirectMapping bool `mapstructure:"use_direct_mapping" yaml:"use_direct_mapping"`
	} `mapstructure:"classification" yaml:"classification"`

	AI struct {
		Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
		Model          string  `mapstructure:"model" yaml:"model"`
		MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
		Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
		TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string  `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.spending-insights")
	v.AddConfigPath(".spending-insights")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("SPEND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Handle special case for API key (always from env, not prefixed)
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Directory defaults
	v.SetDefault("data.directory", "data")
	v.SetDefault("output.directory", "output")
	v.SetDefault("rules.directory", "")

	// Classification defaults
	v.SetDefault("classification.use_direct_mapping", true)

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.max_tokens", 1500)
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.timeout_seconds", 60)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.MaxTokens < 1 || config.AI.MaxTokens > 8192 {
			return fmt.Errorf("ai.max_tokens must be between 1 and 8192, got: %d", config.AI.MaxTokens)
		}

		if config.AI.Temperature < 0.0 || config.AI.Temperature > 2.0 {
			return fmt.Errorf("ai.temperature must be between 0.0 and 2.0, got: %f", config.AI.Temperature)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
