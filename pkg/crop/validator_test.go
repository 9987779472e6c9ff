package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorIsValid(t *testing.T) {
	v := NewValidator(NewRegistry())

	for name, want := range map[string]bool{
		"wheat":     true,
		" Wheat  ":  true,
		"SUGARCANE": true,
		"":          false,
		"   ":       false,
		"wheatx":    false,
		"_default":  false,
	} {
		assert.Equal(t, want, v.IsValid(name), "%q", name)
	}
}

func TestValidatorSuggest(t *testing.T) {
	v := NewValidator(NewRegistry(Overlay{Crops: []string{"wheatgrass"}}))

	assert.Equal(t, []string{"wheat", "wheatgrass"}, v.Suggest("wh", 20))
	assert.Equal(t, []string{"wheat", "wheatgrass"}, v.Suggest(" WH ", 0))
	assert.Equal(t, []string{"wheat"}, v.Suggest("wh", 1))
	assert.Equal(t, []string{"maize", "mango", "millet", "mustard"}, v.Suggest("m", -1))
	assert.Equal(t, []string{}, v.Suggest("", 20))
	assert.Equal(t, []string{}, v.Suggest("  ", 20))
	assert.Equal(t, []string{}, v.Suggest("xyz", 20))
}

func TestValidatorSuggestIsRestartable(t *testing.T) {
	v := NewValidator(NewRegistry())
	first := v.Suggest("s", 20)
	first[0] = "changed"
	assert.Equal(t, []string{"sorghum", "soybean", "sugarcane"}, v.Suggest("s", 20))
}

func TestValidatorSuggestDefaultLimit(t *testing.T) {
	var many []string
	for i := 0; i < 30; i++ {
		many = append(many, "z"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	v := NewValidator(NewRegistry(Overlay{Crops: many}))
	assert.Len(t, v.Suggest("z", 0), DefaultSuggestLimit)
	assert.Len(t, v.Suggest("z", 100), 30)
}
