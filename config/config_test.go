package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "API_TOKEN", "CROP_SOURCE", "CROP_DB_PATH",
	"LLM_PROVIDER", "LLM_ENDPOINT", "LLM_API_KEY", "LLM_MODEL", "LLM_TIMEOUT",
	"BATCH_CONCURRENCY",
}

// clearEnv unsets every config key for the test; envconfig treats set-but-empty as a value.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		old, ok := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if ok {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLMModel)
	assert.Empty(t, cfg.LLMEndpoint)
	assert.Equal(t, 8*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 4, cfg.BatchConcurrency)
	assert.False(t, cfg.LLMEnabled())
}

func TestLoadOpenAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-secret")
	t.Setenv("LLM_TIMEOUT", "2500ms")
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.openai.com", cfg.LLMEndpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, 2500*time.Millisecond, cfg.LLMTimeout)
	assert.Equal(t, 8, cfg.BatchConcurrency)
	assert.True(t, cfg.LLMEnabled())
}

func TestLoadKeepsExplicitModel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_ENDPOINT", "http://localhost:11434")
	t.Setenv("LLM_MODEL", "llama3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", cfg.LLMEndpoint)
	assert.Equal(t, "llama3", cfg.LLMModel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"provider":          {"LLM_PROVIDER", "claude"},
		"log level":         {"LOG_LEVEL", "trace"},
		"concurrency zero":  {"BATCH_CONCURRENCY", "0"},
		"concurrency large": {"BATCH_CONCURRENCY", "1000"},
		"timeout unparsed":  {"LLM_TIMEOUT", "soon"},
		"timeout negative":  {"LLM_TIMEOUT", "-1s"},
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env[0], env[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestFieldsRedactKey(t *testing.T) {
	cfg := AppConfig{LLMAPIKey: "sk-secret"}
	for _, f := range cfg.Fields() {
		assert.NotEqual(t, "sk-secret", f.String, f.Key)
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
