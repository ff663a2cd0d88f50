package aicache

// RoofAnalysis is the result of analysing a roof for a PV installation.
type RoofAnalysis struct {
	Address        string  `json:"address"`
	UsableAreaM2   float64 `json:"usable_area_m2"`
	Orientation    string  `json:"orientation"`
	TiltDegrees    float64 `json:"tilt_degrees"`
	SuggestedKWp   float64 `json:"suggested_kwp"`
	AnnualYieldKWh float64 `json:"annual_yield_kwh"`
}

// Comparison is an AI-written comparison of a set of products.
type Comparison struct {
	ProductIDs []string `json:"product_ids"`
	Summary    string   `json:"summary"`
	Winner     string   `json:"winner,omitempty"`
}
