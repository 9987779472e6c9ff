package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"soilai/pkg/crop"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestReadJSONList(t *testing.T) {
	ov, err := Read(write(t, "crops.json", `["Quinoa", "kiwi"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quinoa", "kiwi"}, ov.Crops)
	assert.Empty(t, ov.Profiles)
}

func TestReadJSONDocument(t *testing.T) {
	ov, err := Read(write(t, "crops.json", `{
		"crops": ["quinoa"],
		"profiles": {
			"wheat": {"moisture_min": 40, "potassium_min": 110, "potassium_recommendation": "Apply MOP"},
			"_default": {"ph_max": 7.5}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"quinoa"}, ov.Crops)
	require.Contains(t, ov.Profiles, "wheat")
	assert.Equal(t, 40.0, *ov.Profiles["wheat"].MoistureMin)
	assert.Nil(t, ov.Profiles["wheat"].NitrogenMin)

	reg := crop.NewRegistry(ov)
	wheat := reg.Resolve("wheat")
	assert.Equal(t, 40.0, wheat.Moisture.Min)
	assert.Equal(t, 250.0, wheat.Nitrogen.Min)
	require.NotNil(t, wheat.Potassium)
	assert.Equal(t, "Apply MOP", wheat.Potassium.Recommendation)
	assert.Equal(t, 7.5, wheat.PH.Max)
	assert.Equal(t, 7.5, reg.Default().PH.Max)
}

func TestReadYAML(t *testing.T) {
	ov, err := Read(write(t, "crops.yaml", "- quinoa\n- kiwi\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"quinoa", "kiwi"}, ov.Crops)

	ov, err = Read(write(t, "crops.yml", `
crops: [quinoa]
profiles:
  rice:
    moisture_min: 65
    nitrogen_recommendation_hindi: "यूरिया डालें"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"quinoa"}, ov.Crops)
	assert.Equal(t, 65.0, *ov.Profiles["rice"].MoistureMin)
	assert.Equal(t, "यूरिया डालें", *ov.Profiles["rice"].NitrogenRecommendationHindi)

	_, err = Read(write(t, "crops.yaml", "just a string"))
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	ov, err := Read(write(t, "crops.csv", "\uFEFFCrop,Moisture Min,nitrogen_min,ph-min,ph_max\n"+
		"Quinoa,,,,\n"+
		"wheat,40,\"260,5\",6.2,7.8\n"+
		",10,10,10,10\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quinoa", "wheat"}, ov.Crops)
	assert.NotContains(t, ov.Profiles, "Quinoa")
	w := ov.Profiles["wheat"]
	assert.Equal(t, 40.0, *w.MoistureMin)
	assert.Equal(t, 260.5, *w.NitrogenMin)
	assert.Equal(t, 6.2, *w.PHMin)
	assert.Equal(t, 7.8, *w.PHMax)
}

func TestReadCSVRejectsWholeFile(t *testing.T) {
	_, err := Read(write(t, "crops.csv", "name,moisture_min\nwheat,40\nrice,wet\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row 3: "wet" is not a number`)

	_, err = Read(write(t, "crops.csv", "name,nitrogen_min\nwheat,\"1,200\"\n"))
	assert.ErrorContains(t, err, `row 2: "1,200" is not a number`)

	_, err = Read(write(t, "crops.csv", "moisture_min,ph_min\n40,6\n"))
	assert.ErrorContains(t, err, "missing crop name column")
}

func TestReadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "crops.xlsx")
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"crop", "moisture_min", "potassium_min"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"Quinoa", 42, 100}))
	require.NoError(t, x.SetSheetRow(sheet, "A3", &[]any{"kiwi"}))
	require.NoError(t, x.SaveAs(p))
	require.NoError(t, x.Close())

	ov, err := Read(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quinoa", "kiwi"}, ov.Crops)
	assert.Equal(t, 42.0, *ov.Profiles["Quinoa"].MoistureMin)
	assert.Equal(t, 100.0, *ov.Profiles["Quinoa"].PotassiumMin)
	assert.NotContains(t, ov.Profiles, "kiwi")
}

func TestReadHTML(t *testing.T) {
	ov, err := Read(write(t, "crops.html", `<html><body>
<p>Regional crop table</p>
<table>
  <tr><th>Crop</th><th>Moisture Min</th><th>Nitrogen Recommendation</th></tr>
  <tr><td> Quinoa </td><td>38</td><td>Apply compost</td></tr>
  <tr><td>kiwi</td><td></td><td></td></tr>
</table>
<table><tr><th>ignored</th></tr></table>
</body></html>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Quinoa", "kiwi"}, ov.Crops)
	assert.Equal(t, 38.0, *ov.Profiles["Quinoa"].MoistureMin)
	assert.Equal(t, "Apply compost", *ov.Profiles["Quinoa"].NitrogenRecommendation)

	_, err = Read(write(t, "crops.htm", "<html><body>no table</body></html>"))
	assert.Error(t, err)
}

func TestReadUnsupported(t *testing.T) {
	_, err := Read(write(t, "crops.toml", "x = 1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadKeepsDefaultsOnBadSource(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	for _, path := range []string{
		write(t, "bad.json", `{"crops": [`),
		write(t, "empty.json", "   "),
		write(t, "bad.csv", "crop,moisture_min\nwheat,dry\n"),
		filepath.Join(t.TempDir(), "missing.yaml"),
	} {
		ov := Load(path, logger)
		assert.True(t, ov.Empty(), path)

		reg := crop.NewRegistry(ov)
		assert.Equal(t, crop.NewRegistry().Names(), reg.Names())
	}
	assert.Equal(t, 4, logs.FilterMessage("crop source ignored, keeping defaults").Len())

	assert.True(t, Load("", logger).Empty())
	assert.Equal(t, 4, logs.Len())
}

func TestParseNumber(t *testing.T) {
	for in, want := range map[string]float64{"6.5": 6.5, "6,5": 6.5, "260,25": 260.25, "1200": 1200} {
		got, err := parseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"1,200", "1,200.5", "1,2,3"} {
		_, err := parseNumber(in)
		assert.Error(t, err, in)
	}
}
