package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitializeConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "data", cfg.Data.Directory)
	assert.Equal(t, "output", cfg.Output.Directory)
	assert.True(t, cfg.Classification.UseDirectMapping)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 1500, cfg.AI.MaxTokens)
}

func TestInitializeConfig_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SPEND_LOG_LEVEL", "debug")
	t.Setenv("SPEND_DATA_DIRECTORY", "/srv/spend")
	t.Setenv("SPEND_CLASSIFICATION_USE_DIRECT_MAPPING", "false")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/srv/spend", cfg.Data.Directory)
	assert.False(t, cfg.Classification.UseDirectMapping)
}

func TestInitializeConfig_GeminiKeyFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SPEND_AI_ENABLED", "true")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
	assert.True(t, cfg.AI.Enabled)
}

func TestInitializeConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "bad log level",
			env:  map[string]string{"SPEND_LOG_LEVEL": "chatty"},
		},
		{
			name: "bad log format",
			env:  map[string]string{"SPEND_LOG_FORMAT": "xml"},
		},
		{
			name: "AI enabled without key",
			env:  map[string]string{"SPEND_AI_ENABLED": "true"},
		},
		{
			name: "temperature out of range",
			env: map[string]string{
				"SPEND_AI_ENABLED":     "true",
				"GEMINI_API_KEY":       "k",
				"SPEND_AI_TEMPERATURE": "3.5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "nonsense"
	cfg.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
