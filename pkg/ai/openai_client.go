// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"soilai/entities"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	timeout  time.Duration
	httpc    *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
	logger   *zap.Logger
}

// NewOpenAI talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAI(endpoint, key, model string, timeout time.Duration, logger *zap.Logger) Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "openai-advisor",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("advisor circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &openAI{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    model,
		timeout:  timeout,
		httpc:    &http.Client{},
		breaker:  cb,
		logger:   logger,
	}
}

func (c *openAI) Provider() string { return "openai" }

func (c *openAI) RequestAdvice(ctx context.Context, r entities.SoilReading) (string, bool) {
	if c.key == "" {
		return "", false
	}
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.breaker.Execute(func() (string, error) {
		return c.complete(ctx, BuildPrompt(r))
	})
	if err != nil {
		c.logger.Warn("openai advisor unavailable", zap.Error(err))
		return "", false
	}
	return text, true
}

func (c *openAI) complete(ctx context.Context, prompt string) (string, error) {
	type chatReq struct {
		Model    string              `json:"model"`
		Messages []map[string]string `json:"messages"`
	}
	b, err := json.Marshal(chatReq{
		Model:    c.model,
		Messages: []map[string]string{{"role": "user", "content": prompt}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completions: status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat completions: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrNoContent
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", ErrNoContent
	}
	return content, nil
}
