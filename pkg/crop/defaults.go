package crop

import "soilai/entities"

const (
	defaultNitrogenRec        = "Apply 50kg urea per acre"
	defaultNitrogenRecHindi   = "यूरिया 50 किलो/एकड़ डालें"
	defaultPotassiumRec       = "Apply muriate of potash (MOP) as per soil test"
	defaultPotassiumRecHindi  = "मिट्टी परीक्षण के अनुसार म्यूरेट ऑफ पोटाश (MOP) डालें"
	builtinDefaultMoistureMin = 35.0
	builtinDefaultNitrogenMin = 250.0
	builtinDefaultPHMin       = 6.0
	builtinDefaultPHMax       = 8.0
)

var builtinCrops = []string{
	"wheat", "rice", "maize", "sugarcane", "cotton", "soybean", "potato", "tomato",
	"onion", "mustard", "barley", "chickpea", "groundnut", "millet", "sorghum", "jute",
	"tea", "coffee", "banana", "mango",
}

func builtinDefaultProfile() entities.CropProfile {
	return entities.CropProfile{
		Name:     entities.DefaultProfileName,
		Moisture: entities.MoistureThreshold{Min: builtinDefaultMoistureMin},
		Nitrogen: entities.NutrientThreshold{
			Min:                 builtinDefaultNitrogenMin,
			Recommendation:      defaultNitrogenRec,
			RecommendationHindi: defaultNitrogenRecHindi,
		},
		PH: entities.PHRange{Min: builtinDefaultPHMin, Max: builtinDefaultPHMax},
	}
}

// Builtin is the crop layer compiled into the binary. Sources loaded at start-up are
// layered on top of it.
func Builtin() Overlay {
	return Overlay{
		Name:  "builtin",
		Crops: append([]string(nil), builtinCrops...),
		Profiles: map[string]entities.ProfileOverride{
			"rice":      {MoistureMin: f64(60), NitrogenMin: f64(280), PotassiumMin: f64(140), PHMin: f64(5.5), PHMax: f64(7.0)},
			"sugarcane": {MoistureMin: f64(50), NitrogenMin: f64(275), PotassiumMin: f64(150), PHMin: f64(6.0), PHMax: f64(7.5)},
			"potato": {
				MoistureMin:                 f64(45),
				NitrogenMin:                 f64(240),
				NitrogenRecommendation:      str("Apply 40kg urea per acre in split doses"),
				NitrogenRecommendationHindi: str("यूरिया 40 किलो/एकड़ किस्तों में डालें"),
				PotassiumMin:                f64(180),
				PHMin:                       f64(5.0),
				PHMax:                       f64(6.5),
			},
		},
	}
}

func f64(v float64) *float64 { return &v }
func str(v string) *string    { return &v }
