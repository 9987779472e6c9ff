package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"soilai/entities"
)

const (
	Confidence = 0.80

	// criticalMoistureFloor is the lowest critical-irrigation threshold any profile can have.
	criticalMoistureFloor = 20.0
	// criticalMoistureMargin is how far below the profile minimum moisture becomes critical.
	criticalMoistureMargin = 15.0

	nextCheckAttention = 6
	nextCheckRoutine   = 12
)

const (
	RecIrrigateNow        = "Irrigate immediately"
	RecIrrigateNowHindi   = "तुरंत सिंचाई करें"
	RecIrrigateSoon       = "Irrigate soon"
	RecIrrigateSoonHindi  = "जल्द सिंचाई करें"
	RecHealthy            = "Soil healthy, maintain regular care"
	RecHealthyHindi       = "मिट्टी अच्छी है, नियमित देखभाल करें"
	ReasonAllOptimal      = "All soil parameters within optimal ranges"
	ReasonAnalysisDefault = "Soil analysis complete"
)

// Engine maps a reading and its crop profile to a deterministic decision.
type Engine interface {
	Evaluate(r entities.SoilReading, p entities.CropProfile) entities.AIDecision
}

type engine struct {
	now func() time.Time
}

func New() Engine { return &engine{now: time.Now} }

// finding is what one threshold check contributes.
type finding struct {
	rec, recHindi string
	reason        string
}

func (e *engine) Evaluate(r entities.SoilReading, p entities.CropProfile) entities.AIDecision {
	var (
		rec, recHi []string
		reasons    []string
	)
	add := func(f finding) {
		if f.rec != "" {
			rec = append(rec, f.rec)
			recHi = append(recHi, f.recHindi)
		}
		if f.reason != "" {
			reasons = append(reasons, f.reason)
		}
	}

	for _, check := range []func(entities.SoilReading, entities.CropProfile) (finding, bool){
		checkMoisture,
		checkNitrogen,
		checkPotassium,
		checkPH,
	} {
		if f, ok := check(r, p); ok {
			add(f)
		}
	}

	if len(rec) == 0 {
		rec = []string{RecHealthy}
		recHi = []string{RecHealthyHindi}
		reasons = append(reasons, ReasonAllOptimal)
	}

	reasoning := ReasonAnalysisDefault
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}

	// Escalation needs more than one recommendation; a single one stays routine.
	d := entities.AIDecision{
		Action:               entities.ActionAllGood,
		Priority:             entities.PriorityLow,
		Confidence:           Confidence,
		Reasoning:            reasoning,
		Recommendations:      rec,
		RecommendationsHindi: recHi,
		NextCheckHours:       nextCheckRoutine,
		Timestamp:            e.now(),
		Source:               entities.SourceRules,
	}
	if len(rec) > 1 {
		d.Action = entities.ActionAttentionNeeded
		d.Priority = entities.PriorityHigh
		d.NextCheckHours = nextCheckAttention
	}
	return d
}

// CriticalMoisture is the level below which irrigation is urgent for a profile minimum.
func CriticalMoisture(min float64) float64 {
	return math.Max(criticalMoistureFloor, min-criticalMoistureMargin)
}

func checkMoisture(r entities.SoilReading, p entities.CropProfile) (finding, bool) {
	floor := p.Moisture.Min
	switch {
	case r.Moisture < CriticalMoisture(floor):
		return finding{
			rec:      RecIrrigateNow,
			recHindi: RecIrrigateNowHindi,
			reason:   fmt.Sprintf("Moisture critically low at %s%%", num(r.Moisture)),
		}, true
	case r.Moisture < floor:
		return finding{
			rec:      RecIrrigateSoon,
			recHindi: RecIrrigateSoonHindi,
			reason:   fmt.Sprintf("Moisture is %s%%, below optimal %s%%", num(r.Moisture), num(floor)),
		}, true
	}
	return finding{}, false
}

func checkNitrogen(r entities.SoilReading, p entities.CropProfile) (finding, bool) {
	if r.Nitrogen >= p.Nitrogen.Min {
		return finding{}, false
	}
	return finding{
		rec:      p.Nitrogen.Recommendation,
		recHindi: p.Nitrogen.RecommendationHindi,
		reason:   fmt.Sprintf("Nitrogen deficiency detected at %s mg/kg (target %s mg/kg)", num(r.Nitrogen), num(p.Nitrogen.Min)),
	}, true
}

func checkPotassium(r entities.SoilReading, p entities.CropProfile) (finding, bool) {
	if p.Potassium == nil || r.Potassium >= p.Potassium.Min {
		return finding{}, false
	}
	return finding{
		rec:      p.Potassium.Recommendation,
		recHindi: p.Potassium.RecommendationHindi,
		reason:   fmt.Sprintf("Potassium deficiency detected at %s mg/kg (target %s mg/kg)", num(r.Potassium), num(p.Potassium.Min)),
	}, true
}

// checkPH only explains; there is no actionable pH recommendation.
func checkPH(r entities.SoilReading, p entities.CropProfile) (finding, bool) {
	if r.PH >= p.PH.Min && r.PH <= p.PH.Max {
		return finding{}, false
	}
	return finding{
		reason: fmt.Sprintf("Soil pH %s is outside ideal range (%s-%s)", num(r.PH), num1(p.PH.Min), num1(p.PH.Max)),
	}, true
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// num1 keeps at least one decimal, so ranges read "6.0-8.0".
func num1(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return num(v)
}
