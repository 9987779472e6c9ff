package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"soilai/entities"
	"soilai/pkg/crop"
)

type CropCtrl struct {
	reg *crop.Registry
	val *crop.Validator
}

func New(reg *crop.Registry) *CropCtrl { return &CropCtrl{reg: reg, val: crop.NewValidator(reg)} }

type profileResp struct {
	Name     string               `json:"name"`
	Known    bool                 `json:"known"`
	Explicit bool                 `json:"explicit"`
	Profile  entities.CropProfile `json:"profile"`
}

// List returns every crop, or prefix suggestions when ?prefix= is given.
func (h *CropCtrl) List(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}
	if prefix == "" {
		names := h.reg.Names()
		if limit > 0 && limit < len(names) {
			names = names[:limit]
		}
		return c.JSON(http.StatusOK, map[string]any{"crops": names})
	}
	return c.JSON(http.StatusOK, map[string]any{"crops": h.val.Suggest(prefix, limit)})
}

func (h *CropCtrl) Profile(c echo.Context) error {
	name := crop.Normalize(c.Param("name"))
	p, explicit := h.reg.Profile(name)
	return c.JSON(http.StatusOK, profileResp{
		Name:     name,
		Known:    h.val.IsValid(name),
		Explicit: explicit,
		Profile:  p,
	})
}
