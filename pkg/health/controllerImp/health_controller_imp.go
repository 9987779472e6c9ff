package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"soilai/pkg/ai"
	"soilai/pkg/crop"
)

var appStart = time.Now()

type HealthCtrl struct {
	db      *gorm.DB // optional crop store
	reg     *crop.Registry
	advisor ai.Advisor
}

func NewHealthCtrl(db *gorm.DB, reg *crop.Registry, adv ai.Advisor) *HealthCtrl {
	return &HealthCtrl{db: db, reg: reg, advisor: adv}
}

type sub struct {
	OK      bool   `json:"ok"`
	Err     string `json:"err,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Health reports 503 only when a configured crop store stops answering; running without
// an advisor or a store is a valid setup.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := sub{OK: true}
	if h.db == nil {
		dbCheck.Skipped = true
	} else if sqlDB, err := h.db.DB(); err != nil {
		dbCheck = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbCheck = sub{Err: "ping: " + err.Error()}
	}

	advisor := map[string]any{"configured": h.advisor != nil}
	if h.advisor != nil {
		advisor["provider"] = h.advisor.Provider()
	}

	status := http.StatusOK
	if !dbCheck.OK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": dbCheck.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"crop_store": dbCheck,
			"advisor":    advisor,
			"crops":      h.reg.Len(),
		},
		"time": time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}
