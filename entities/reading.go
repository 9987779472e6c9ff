package entities

import "time"

// SoilReading is one full set of measured soil/environment values submitted for analysis.
// Build it with NewSoilReading so the timestamp is stamped once, at creation.
type SoilReading struct {
	Moisture               float64   `json:"moisture"`                // %
	Nitrogen               float64   `json:"nitrogen"`                // mg/kg
	Phosphorus             float64   `json:"phosphorus"`              // mg/kg
	Potassium              float64   `json:"potassium"`               // mg/kg
	PH                     float64   `json:"ph"`                      // 0-14, not range checked
	Temperature            float64   `json:"temperature"`             // °C
	ElectricalConductivity float64   `json:"electrical_conductivity"` // dS/m
	OrganicCarbon          float64   `json:"organic_carbon"`          // %
	Location               string    `json:"location"`
	CropType               string    `json:"crop_type"`
	Timestamp              time.Time `json:"timestamp"`
}

// ReadingInput carries the measured values of a reading before it is stamped.
type ReadingInput struct {
	Moisture               float64 `json:"moisture"`
	Nitrogen               float64 `json:"nitrogen"`
	Phosphorus             float64 `json:"phosphorus"`
	Potassium              float64 `json:"potassium"`
	PH                     float64 `json:"ph"`
	Temperature            float64 `json:"temperature"`
	ElectricalConductivity float64 `json:"electrical_conductivity"`
	OrganicCarbon          float64 `json:"organic_carbon"`
	Location               string  `json:"location"`
	CropType               string  `json:"crop_type"`
}

func NewSoilReading(in ReadingInput) SoilReading {
	return SoilReading{
		Moisture:               in.Moisture,
		Nitrogen:               in.Nitrogen,
		Phosphorus:             in.Phosphorus,
		Potassium:              in.Potassium,
		PH:                     in.PH,
		Temperature:            in.Temperature,
		ElectricalConductivity: in.ElectricalConductivity,
		OrganicCarbon:          in.OrganicCarbon,
		Location:               in.Location,
		CropType:               in.CropType,
		Timestamp:              time.Now(),
	}
}
