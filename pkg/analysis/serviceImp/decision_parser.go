package serviceImp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"soilai/entities"
)

// ErrMalformedDecision wraps every reason a remote answer could not be used.
var ErrMalformedDecision = errors.New("malformed decision")

var validate = validator.New()

// remoteDecision is the exact JSON shape the prompt asks for. Pointers tell a missing
// field apart from a zero value; timestamp is tolerated and dropped.
type remoteDecision struct {
	Action               *entities.Action   `json:"action"`
	Priority             *entities.Priority `json:"priority"`
	Confidence           *float64           `json:"confidence"`
	Reasoning            *string            `json:"reasoning"`
	Recommendations      *[]string          `json:"recommendations"`
	RecommendationsHindi *[]string          `json:"recommendations_hindi"`
	NextCheckHours       *int               `json:"next_check_hours"`
	Timestamp            json.RawMessage    `json:"timestamp"`
}

type decisionRanges struct {
	Confidence     float64 `validate:"gte=0,lte=1"`
	NextCheckHours int     `validate:"gte=0"`
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseDecision decodes a remote answer strictly. The result has no Timestamp or Source;
// the caller stamps both.
func ParseDecision(text string) (entities.AIDecision, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(stripFences(text))))
	dec.DisallowUnknownFields()

	var rd remoteDecision
	if err := dec.Decode(&rd); err != nil {
		return entities.AIDecision{}, fmt.Errorf("%w: %v", ErrMalformedDecision, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return entities.AIDecision{}, fmt.Errorf("%w: trailing data after object", ErrMalformedDecision)
	}

	var missing []string
	for _, f := range []struct {
		name   string
		absent bool
	}{
		{"action", rd.Action == nil},
		{"priority", rd.Priority == nil},
		{"confidence", rd.Confidence == nil},
		{"reasoning", rd.Reasoning == nil},
		{"recommendations", rd.Recommendations == nil},
		{"recommendations_hindi", rd.RecommendationsHindi == nil},
		{"next_check_hours", rd.NextCheckHours == nil},
	} {
		if f.absent {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return entities.AIDecision{}, fmt.Errorf("%w: missing %s", ErrMalformedDecision, strings.Join(missing, ", "))
	}

	if err := validate.Struct(decisionRanges{Confidence: *rd.Confidence, NextCheckHours: *rd.NextCheckHours}); err != nil {
		return entities.AIDecision{}, fmt.Errorf("%w: %v", ErrMalformedDecision, err)
	}

	return entities.AIDecision{
		Action:               *rd.Action,
		Priority:             *rd.Priority,
		Confidence:           *rd.Confidence,
		Reasoning:            *rd.Reasoning,
		Recommendations:      *rd.Recommendations,
		RecommendationsHindi: *rd.RecommendationsHindi,
		NextCheckHours:       *rd.NextCheckHours,
	}, nil
}
