package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	APIToken string `envconfig:"API_TOKEN"`

	CropSource string `envconfig:"CROP_SOURCE"`
	CropDBPath string `envconfig:"CROP_DB_PATH"`

	LLMProvider string        `envconfig:"LLM_PROVIDER" default:"gemini" validate:"oneof=gemini openai"`
	LLMEndpoint string        `envconfig:"LLM_ENDPOINT"`
	LLMAPIKey   string        `envconfig:"LLM_API_KEY"`
	LLMModel    string        `envconfig:"LLM_MODEL"`
	LLMTimeout  time.Duration `envconfig:"LLM_TIMEOUT" default:"8s" validate:"gt=0"`

	BatchConcurrency int `envconfig:"BATCH_CONCURRENCY" default:"4" validate:"min=1,max=64"`
}

// Load reads .env (if present) and the environment into an AppConfig.
func Load() (AppConfig, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process env: %w", err)
	}
	cfg.applyProviderDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *AppConfig) applyProviderDefaults() {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.LLMEndpoint == "" {
			c.LLMEndpoint = "https://api.openai.com"
		}
		if c.LLMModel == "" {
			c.LLMModel = "gpt-4o-mini"
		}
	case ProviderGemini:
		if c.LLMModel == "" {
			c.LLMModel = "gemini-2.0-flash"
		}
	}
}

// LLMEnabled reports whether a remote advisor can be built at all.
func (c AppConfig) LLMEnabled() bool { return c.LLMAPIKey != "" }

// Fields renders the config for logging with the API key redacted.
func (c AppConfig) Fields() []zap.Field {
	key := ""
	if c.LLMAPIKey != "" {
		key = "[redacted]"
	}
	return []zap.Field{
		zap.String("port", c.Port),
		zap.Bool("api_token_set", c.APIToken != ""),
		zap.String("log_level", c.LogLevel),
		zap.String("crop_source", c.CropSource),
		zap.String("crop_db_path", c.CropDBPath),
		zap.String("llm_provider", c.LLMProvider),
		zap.String("llm_endpoint", c.LLMEndpoint),
		zap.String("llm_model", c.LLMModel),
		zap.String("llm_api_key", key),
		zap.Duration("llm_timeout", c.LLMTimeout),
		zap.Int("batch_concurrency", c.BatchConcurrency),
	}
}

// NewLogger builds the production JSON logger at the configured level.
func NewLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
