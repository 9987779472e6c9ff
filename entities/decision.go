package entities

import "time"

type Action string

const (
	ActionAttentionNeeded Action = "ATTENTION_NEEDED"
	ActionAllGood         Action = "ALL_GOOD"
	ActionInvalidCrop     Action = "INVALID_CROP"
)

type Priority string

const (
	PriorityHigh Priority = "HIGH"
	PriorityLow  Priority = "LOW"
)

// Source records which path of the pipeline produced a decision.
type Source string

const (
	SourceRemote     Source = "remote"
	SourceRules      Source = "rules"
	SourceValidation Source = "validation"
)

// AIDecision is the structured output of one analysis run.
type AIDecision struct {
	Action               Action    `json:"action"`
	Priority             Priority  `json:"priority"`
	Confidence           float64   `json:"confidence"`
	Reasoning            string    `json:"reasoning"`
	Recommendations      []string  `json:"recommendations"`
	RecommendationsHindi []string  `json:"recommendations_hindi"`
	NextCheckHours       int       `json:"next_check_hours"`
	Timestamp            time.Time `json:"timestamp"`
	Source               Source    `json:"source"`
}
