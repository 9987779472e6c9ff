package entities

import "time"

// DefaultProfileName is the registry key of the profile used for crops without their own entry.
const DefaultProfileName = "_default"

type MoistureThreshold struct {
	Min float64 `json:"min" yaml:"min"`
}

type NutrientThreshold struct {
	Min                 float64 `json:"min" yaml:"min"`
	Recommendation      string  `json:"recommendation" yaml:"recommendation"`
	RecommendationHindi string  `json:"recommendation_hindi" yaml:"recommendation_hindi"`
}

type PHRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// CropProfile is a fully populated set of thresholds. Potassium is the only optional part:
// nil means the crop has no potassium minimum.
type CropProfile struct {
	Name      string             `json:"name"`
	Moisture  MoistureThreshold  `json:"moisture"`
	Nitrogen  NutrientThreshold  `json:"nitrogen"`
	Potassium *NutrientThreshold `json:"potassium,omitempty"`
	PH        PHRange            `json:"ph"`
}

// ProfileOverride is the partial, source-file shape of a profile. Nil fields inherit
// from the default profile when the registry is built.
type ProfileOverride struct {
	MoistureMin                  *float64 `json:"moisture_min,omitempty" yaml:"moisture_min,omitempty"`
	NitrogenMin                  *float64 `json:"nitrogen_min,omitempty" yaml:"nitrogen_min,omitempty"`
	NitrogenRecommendation       *string  `json:"nitrogen_recommendation,omitempty" yaml:"nitrogen_recommendation,omitempty"`
	NitrogenRecommendationHindi  *string  `json:"nitrogen_recommendation_hindi,omitempty" yaml:"nitrogen_recommendation_hindi,omitempty"`
	PotassiumMin                 *float64 `json:"potassium_min,omitempty" yaml:"potassium_min,omitempty"`
	PotassiumRecommendation      *string  `json:"potassium_recommendation,omitempty" yaml:"potassium_recommendation,omitempty"`
	PotassiumRecommendationHindi *string  `json:"potassium_recommendation_hindi,omitempty" yaml:"potassium_recommendation_hindi,omitempty"`
	PHMin                        *float64 `json:"ph_min,omitempty" yaml:"ph_min,omitempty"`
	PHMax                        *float64 `json:"ph_max,omitempty" yaml:"ph_max,omitempty"`
}

// CropProfileRecord is the crop_profiles row of the optional SQLite crop store.
type CropProfileRecord struct {
	Name                         string   `gorm:"primaryKey" json:"name"`
	MoistureMin                  *float64 `json:"moisture_min"`
	NitrogenMin                  *float64 `json:"nitrogen_min"`
	NitrogenRecommendation       *string  `json:"nitrogen_recommendation"`
	NitrogenRecommendationHindi  *string  `json:"nitrogen_recommendation_hindi"`
	PotassiumMin                 *float64 `json:"potassium_min"`
	PotassiumRecommendation      *string  `json:"potassium_recommendation"`
	PotassiumRecommendationHindi *string  `json:"potassium_recommendation_hindi"`
	PHMin                        *float64 `json:"ph_min"`
	PHMax                        *float64 `json:"ph_max"`
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

func (CropProfileRecord) TableName() string { return "crop_profiles" }

func (r CropProfileRecord) Override() ProfileOverride {
	return ProfileOverride{
		MoistureMin:                  r.MoistureMin,
		NitrogenMin:                  r.NitrogenMin,
		NitrogenRecommendation:       r.NitrogenRecommendation,
		NitrogenRecommendationHindi:  r.NitrogenRecommendationHindi,
		PotassiumMin:                 r.PotassiumMin,
		PotassiumRecommendation:      r.PotassiumRecommendation,
		PotassiumRecommendationHindi: r.PotassiumRecommendationHindi,
		PHMin:                        r.PHMin,
		PHMax:                        r.PHMax,
	}
}

func NewCropProfileRecord(name string, o ProfileOverride) CropProfileRecord {
	return CropProfileRecord{
		Name:                         name,
		MoistureMin:                  o.MoistureMin,
		NitrogenMin:                  o.NitrogenMin,
		NitrogenRecommendation:       o.NitrogenRecommendation,
		NitrogenRecommendationHindi:  o.NitrogenRecommendationHindi,
		PotassiumMin:                 o.PotassiumMin,
		PotassiumRecommendation:      o.PotassiumRecommendation,
		PotassiumRecommendationHindi: o.PotassiumRecommendationHindi,
		PHMin:                        o.PHMin,
		PHMax:                        o.PHMax,
	}
}

// IsZero reports whether the override sets nothing.
func (o ProfileOverride) IsZero() bool { return o == ProfileOverride{} }
