package serviceImp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilai/entities"
)

const validDecision = `{
 "action": "ATTENTION_NEEDED",
 "priority": "HIGH",
 "confidence": 0.9,
 "reasoning": "Dry topsoil",
 "recommendations": ["Irrigate today"],
 "recommendations_hindi": ["आज सिंचाई करें"],
 "next_check_hours": 8
}`

func TestParseDecision(t *testing.T) {
	for name, text := range map[string]string{
		"plain":          validDecision,
		"fenced":         "```json\n" + validDecision + "\n```",
		"bare fence":     "```" + validDecision + "```",
		"surrounding ws": "\n\n  " + validDecision + "  \n",
	} {
		t.Run(name, func(t *testing.T) {
			d, err := ParseDecision(text)
			require.NoError(t, err)
			assert.Equal(t, entities.AIDecision{
				Action:               entities.ActionAttentionNeeded,
				Priority:             entities.PriorityHigh,
				Confidence:           0.9,
				Reasoning:            "Dry topsoil",
				Recommendations:      []string{"Irrigate today"},
				RecommendationsHindi: []string{"आज सिंचाई करें"},
				NextCheckHours:       8,
			}, d)
		})
	}
}

func TestParseDecisionIgnoresTimestamp(t *testing.T) {
	d, err := ParseDecision(`{"action":"ALL_GOOD","priority":"LOW","confidence":1,"reasoning":"",
		"recommendations":[],"recommendations_hindi":[],"next_check_hours":0,"timestamp":"2024-01-01T00:00:00Z"}`)
	require.NoError(t, err)
	assert.True(t, d.Timestamp.IsZero())
	assert.Equal(t, []string{}, d.Recommendations)
}

func TestParseDecisionRejects(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"prose":          "The soil looks fine to me.",
		"truncated":      `{"action":"ALL_GOOD","priority":"LOW","confidence":0.8,`,
		"array":          `[` + validDecision + `]`,
		"extra field":    `{"action":"ALL_GOOD","priority":"LOW","confidence":0.8,"reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":1,"mood":"happy"}`,
		"missing field":  `{"action":"ALL_GOOD","priority":"LOW","confidence":0.8,"reasoning":"","recommendations":[],"next_check_hours":1}`,
		"null field":     `{"action":"ALL_GOOD","priority":"LOW","confidence":null,"reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":1}`,
		"string number":  `{"action":"ALL_GOOD","priority":"LOW","confidence":"high","reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":1}`,
		"fractional hrs": `{"action":"ALL_GOOD","priority":"LOW","confidence":0.8,"reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":1.5}`,
		"confidence > 1": `{"action":"ALL_GOOD","priority":"LOW","confidence":1.5,"reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":1}`,
		"confidence < 0": `{"action":"ALL_GOOD","priority":"LOW","confidence":-0.1,"reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":1}`,
		"negative hours": `{"action":"ALL_GOOD","priority":"LOW","confidence":0.5,"reasoning":"","recommendations":[],"recommendations_hindi":[],"next_check_hours":-6}`,
		"trailing data":  validDecision + ` {"again":true}`,
		"list of ints":   `{"action":"ALL_GOOD","priority":"LOW","confidence":0.8,"reasoning":"","recommendations":[1,2],"recommendations_hindi":[],"next_check_hours":1}`,
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDecision(text)
			assert.ErrorIs(t, err, ErrMalformedDecision)
		})
	}
}

func TestParseDecisionNamesMissingFields(t *testing.T) {
	_, err := ParseDecision(`{"action":"ALL_GOOD","confidence":0.8}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing priority, reasoning, recommendations, recommendations_hindi, next_check_hours")
}
