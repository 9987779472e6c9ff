// pkg/ai/advisor.go

package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"soilai/config"
	"soilai/entities"
)

// ErrNoContent is returned by providers whose response carried no usable text.
var ErrNoContent = errors.New("advisor response has no content")

// Advisor asks a remote model for a decision. It never fails loudly: any problem on the
// way (no key, network, timeout, bad status, empty answer) comes back as ok == false.
type Advisor interface {
	RequestAdvice(ctx context.Context, r entities.SoilReading) (text string, ok bool)
	Provider() string
}

// New builds the advisor selected by cfg.LLMProvider, or nil when no key is configured.
func New(cfg config.AppConfig, logger *zap.Logger) Advisor {
	if !cfg.LLMEnabled() {
		return nil
	}
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	default:
		return NewGemini(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	}
}

// BuildPrompt renders the fixed analysis prompt for one reading.
func BuildPrompt(r entities.SoilReading) string {
	return fmt.Sprintf(`
You are an agricultural soil expert AI. Analyze and return JSON only:

Soil:
Moisture=%v
Nitrogen=%v
Phosphorus=%v
Potassium=%v
pH=%v
Temperature=%v
EC=%v
Organic Carbon=%v
Crop=%s
Location=%s

Response format:
{
 "action": "",
 "priority": "",
 "confidence": 0.0,
 "reasoning": "",
 "recommendations": [],
 "recommendations_hindi": [],
 "next_check_hours": 0
}
`, r.Moisture, r.Nitrogen, r.Phosphorus, r.Potassium, r.PH, r.Temperature,
		r.ElectricalConductivity, r.OrganicCarbon, r.CropType, r.Location)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
