package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	analysisController "soilai/pkg/analysis/controller"
	cropController "soilai/pkg/crop/controller"
	"soilai/pkg/middleware"
)

type Deps struct {
	Logger   *zap.Logger
	APIToken string

	AnalysisCtrl analysisController.AnalysisController
	CropCtrl     cropController.CropController
	HealthCtrl   interface{ Health(echo.Context) error }
	Metrics      http.Handler
}

func New(e *echo.Echo, d Deps) *echo.Echo {
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoMiddleware.BodyLimit("2M"))

	e.GET("/health", d.HealthCtrl.Health)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	key := middleware.APIKey(d.APIToken)

	e.POST("/analyze", d.AnalysisCtrl.Analyze, key)
	e.POST("/analyze/batch", d.AnalysisCtrl.AnalyzeBatch, key)

	e.GET("/crops", d.CropCtrl.List, key)
	e.GET("/crops/:name/profile", d.CropCtrl.Profile, key)
	return e
}
