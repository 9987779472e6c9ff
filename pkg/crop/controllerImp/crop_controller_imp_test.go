package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilai/pkg/crop"
)

func get(t *testing.T, target string, route func(*echo.Echo, *CropCtrl)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	route(e, New(crop.NewRegistry(crop.Overlay{Crops: []string{"wheatgrass"}})))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func listRoute(e *echo.Echo, h *CropCtrl)    { e.GET("/crops", h.List) }
func profileRoute(e *echo.Echo, h *CropCtrl) { e.GET("/crops/:name/profile", h.Profile) }

func crops(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Crops []string `json:"crops"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Crops
}

func TestList(t *testing.T) {
	all := crops(t, get(t, "/crops", listRoute))
	assert.Len(t, all, 21)
	assert.IsNonDecreasing(t, all)

	assert.Equal(t, []string{"banana", "barley"}, crops(t, get(t, "/crops?limit=2", listRoute)))
	assert.Equal(t, []string{"wheat", "wheatgrass"}, crops(t, get(t, "/crops?prefix=WH", listRoute)))
	assert.Equal(t, []string{"wheat"}, crops(t, get(t, "/crops?prefix=wh&limit=1", listRoute)))
	assert.Equal(t, []string{}, crops(t, get(t, "/crops?prefix=zz", listRoute)))

	assert.Equal(t, http.StatusBadRequest, get(t, "/crops?limit=many", listRoute).Code)
	assert.Equal(t, http.StatusBadRequest, get(t, "/crops?limit=-1", listRoute).Code)
}

func TestProfile(t *testing.T) {
	var resp profileResp

	rec := get(t, "/crops/Rice/profile", profileRoute)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rice", resp.Name)
	assert.True(t, resp.Known)
	assert.True(t, resp.Explicit)
	assert.Equal(t, 60.0, resp.Profile.Moisture.Min)
	require.NotNil(t, resp.Profile.Potassium)

	resp = profileResp{}
	require.NoError(t, json.Unmarshal(get(t, "/crops/wheat/profile", profileRoute).Body.Bytes(), &resp))
	assert.True(t, resp.Known)
	assert.False(t, resp.Explicit)
	assert.Equal(t, "_default", resp.Profile.Name)

	resp = profileResp{}
	require.NoError(t, json.Unmarshal(get(t, "/crops/kiwi/profile", profileRoute).Body.Bytes(), &resp))
	assert.False(t, resp.Known)
	assert.False(t, resp.Explicit)
	assert.Equal(t, 35.0, resp.Profile.Moisture.Min)
}
