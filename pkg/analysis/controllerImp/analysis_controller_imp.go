package controllerImp

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"soilai/entities"
	"soilai/pkg/analysis/service"
)

// MaxBatch caps the readings of one batch request.
const MaxBatch = 100

type AnalysisCtrl struct {
	svc      service.AnalysisService
	validate *validator.Validate
}

func New(svc service.AnalysisService) *AnalysisCtrl {
	return &AnalysisCtrl{svc: svc, validate: validator.New()}
}

type batchReq struct {
	Readings []entities.ReadingInput `json:"readings" validate:"required,min=1"`
}

type batchResp struct {
	Decisions []entities.AIDecision `json:"decisions"`
}

func (h *AnalysisCtrl) Analyze(c echo.Context) error {
	var req entities.ReadingInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	// A blank or unknown crop is not a bad request: the service answers INVALID_CROP.
	d := h.svc.Analyze(c.Request().Context(), entities.NewSoilReading(req))
	return c.JSON(http.StatusOK, d)
}

func (h *AnalysisCtrl) AnalyzeBatch(c echo.Context) error {
	var req batchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if len(req.Readings) > MaxBatch {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("at most %d readings per batch", MaxBatch)})
	}
	rs := make([]entities.SoilReading, len(req.Readings))
	for i, in := range req.Readings {
		rs[i] = entities.NewSoilReading(in)
	}
	return c.JSON(http.StatusOK, batchResp{Decisions: h.svc.AnalyzeBatch(c.Request().Context(), rs)})
}
