package service

import (
	"context"

	"soilai/entities"
)

type AnalysisService interface {
	Analyze(ctx context.Context, r entities.SoilReading) entities.AIDecision
	AnalyzeBatch(ctx context.Context, rs []entities.SoilReading) []entities.AIDecision
}
