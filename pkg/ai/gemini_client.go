// pkg/ai/gemini_client.go

package ai

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"soilai/entities"
)

type gemini struct {
	endpoint string
	key      string
	model    string
	timeout  time.Duration
	logger   *zap.Logger

	newClient func(context.Context, *genai.ClientConfig) (*genai.Client, error)
	mu        sync.Mutex
	client    *genai.Client
}

// NewGemini uses the Gemini API. The client is created lazily on the first request so a
// bad key or unreachable endpoint only costs the fallback, never start-up.
func NewGemini(endpoint, key, model string, timeout time.Duration, logger *zap.Logger) Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gemini{endpoint: endpoint, key: key, model: model, timeout: timeout, logger: logger, newClient: genai.NewClient}
}

func (g *gemini) Provider() string { return "gemini" }

// connect creates the client once it succeeds; a failed attempt is retried on the next request.
func (g *gemini) connect(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	cc := &genai.ClientConfig{
		APIKey:  g.key,
		Backend: genai.BackendGeminiAPI,
	}
	if g.endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.endpoint}
	}
	client, err := g.newClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}

func (g *gemini) RequestAdvice(ctx context.Context, r entities.SoilReading) (string, bool) {
	if g.key == "" {
		return "", false
	}
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	client, err := g.connect(ctx)
	if err != nil {
		g.logger.Warn("gemini client init failed", zap.Error(err))
		return "", false
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(r)), nil)
	if err != nil {
		g.logger.Warn("gemini advisor unavailable", zap.Error(err))
		return "", false
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		g.logger.Warn("gemini advisor unavailable", zap.Error(ErrNoContent))
		return "", false
	}
	return text, true
}
