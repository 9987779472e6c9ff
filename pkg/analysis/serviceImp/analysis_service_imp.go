package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"soilai/entities"
	"soilai/pkg/ai"
	"soilai/pkg/analysis/service"
	"soilai/pkg/crop"
	"soilai/pkg/metrics"
	"soilai/pkg/rules"
)

const (
	msgEnterValidCrop      = "Enter the valid crop name"
	msgEnterValidCropHindi = "मान्य फसल का नाम दर्ज करें"

	defaultBatchConcurrency = 4
)

// AnalysisSvc runs one reading through validation, the remote advisor and the rule
// fallback. It keeps no per-call state, so one value serves concurrent requests.
type AnalysisSvc struct {
	registry    *crop.Registry
	validator   *crop.Validator
	rules       rules.Engine
	advisor     ai.Advisor // nil: rules only
	metrics     *metrics.Metrics
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

type Option func(*AnalysisSvc)

func WithMetrics(m *metrics.Metrics) Option { return func(s *AnalysisSvc) { s.metrics = m } }

func WithLogger(l *zap.Logger) Option { return func(s *AnalysisSvc) { s.logger = l } }

func WithBatchConcurrency(n int) Option {
	return func(s *AnalysisSvc) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewAnalysisService(reg *crop.Registry, r rules.Engine, adv ai.Advisor, opts ...Option) *AnalysisSvc {
	s := &AnalysisSvc{
		registry:    reg,
		validator:   crop.NewValidator(reg),
		rules:       r,
		advisor:     adv,
		logger:      zap.NewNop(),
		concurrency: defaultBatchConcurrency,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ service.AnalysisService = (*AnalysisSvc)(nil)

func (s *AnalysisSvc) Analyze(ctx context.Context, r entities.SoilReading) entities.AIDecision {
	log := s.logger.With(
		zap.String("analysis_id", uuid.NewString()),
		zap.String("crop", r.CropType),
	)
	d := s.decide(ctx, r, log)
	s.metrics.ObserveDecision(d)
	log.Info("analysis done",
		zap.String("source", string(d.Source)),
		zap.String("action", string(d.Action)),
		zap.String("priority", string(d.Priority)))
	return d
}

func (s *AnalysisSvc) decide(ctx context.Context, r entities.SoilReading, log *zap.Logger) entities.AIDecision {
	if !s.validator.IsValid(r.CropType) {
		return s.invalidCrop(r.CropType)
	}

	if s.advisor != nil {
		start := time.Now()
		text, ok := s.advisor.RequestAdvice(ctx, r)
		if ok {
			d, err := ParseDecision(text)
			if err == nil {
				s.metrics.ObserveAdvisor("ok", time.Since(start))
				d.Timestamp = s.now()
				d.Source = entities.SourceRemote
				return d
			}
			s.metrics.ObserveAdvisor("malformed", time.Since(start))
			log.Warn("remote decision rejected, using rules", zap.Error(err))
		} else {
			s.metrics.ObserveAdvisor("unavailable", time.Since(start))
			log.Debug("remote advisor gave no answer, using rules")
		}
	}

	return s.rules.Evaluate(r, s.registry.Resolve(r.CropType))
}

func (s *AnalysisSvc) invalidCrop(name string) entities.AIDecision {
	name = strings.TrimSpace(name)
	rec, recHi := msgEnterValidCrop, msgEnterValidCropHindi
	if sugg := s.validator.Suggest(name, crop.DefaultSuggestLimit); len(sugg) > 0 {
		prefix := fmt.Sprintf("Did you mean: %s? ", strings.Join(sugg, ", "))
		rec, recHi = prefix+rec, prefix+recHi
	}
	return entities.AIDecision{
		Action:               entities.ActionInvalidCrop,
		Priority:             entities.PriorityLow,
		Confidence:           0.0,
		Reasoning:            fmt.Sprintf("Crop '%s' is not a recognized crop", name),
		Recommendations:      []string{rec},
		RecommendationsHindi: []string{recHi},
		NextCheckHours:       0,
		Timestamp:            s.now(),
		Source:               entities.SourceValidation,
	}
}

// AnalyzeBatch analyzes every reading independently; decisions come back in input order.
func (s *AnalysisSvc) AnalyzeBatch(ctx context.Context, rs []entities.SoilReading) []entities.AIDecision {
	out := make([]entities.AIDecision, len(rs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range rs {
		g.Go(func() error {
			out[i] = s.Analyze(gctx, rs[i])
			return nil
		})
	}
	_ = g.Wait() // Analyze never fails
	return out
}
