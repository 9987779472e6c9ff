package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"soilai/config"
	"soilai/router"

	// Analysis
	analysisCtrlImp "soilai/pkg/analysis/controllerImp"
	analysisSvcImp "soilai/pkg/analysis/serviceImp"

	// Crops
	"soilai/pkg/crop/catalog"
	cropCtrlImp "soilai/pkg/crop/controllerImp"

	// Rules/LLM
	"soilai/pkg/ai"
	"soilai/pkg/metrics"
	"soilai/pkg/rules"

	// Health
	healthCtrlImp "soilai/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting soil advisory service", cfg.Fields()...)

	// 2) Crop registry (built-in + CROP_SOURCE + CROP_DB_PATH)
	cat := catalog.Load(cfg, logger)
	defer cat.Close()

	// 3) Advisor (nil without a key: rules only)
	adv := ai.New(cfg, logger)
	if adv == nil {
		logger.Info("no LLM_API_KEY, decisions come from the rule engine only")
	}

	// 4) Arbiter
	m := metrics.New()
	svc := analysisSvcImp.NewAnalysisService(cat.Registry, rules.New(), adv,
		analysisSvcImp.WithLogger(logger),
		analysisSvcImp.WithMetrics(m),
		analysisSvcImp.WithBatchConcurrency(cfg.BatchConcurrency),
	)

	// 5) Router
	e := router.New(echo.New(), router.Deps{
		Logger:       logger,
		APIToken:     cfg.APIToken,
		AnalysisCtrl: analysisCtrlImp.New(svc),
		CropCtrl:     cropCtrlImp.New(cat.Registry),
		HealthCtrl:   healthCtrlImp.NewHealthCtrl(cat.DB, cat.Registry, adv),
		Metrics:      m.Handler(),
	})

	// 6) Start, stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", ":"+cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
