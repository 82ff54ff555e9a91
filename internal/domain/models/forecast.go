package models

// QuarterlyPoint is one aggregated quarter. Derived from TradeRecords, never
// persisted.
type QuarterlyPoint struct {
	Period  string  `json:"period"`
	Value   float64 `json:"value"`
	Records int     `json:"records,omitempty"`
}

// PredictionPoint is a single forecasted quarter.
type PredictionPoint struct {
	Period     string  `json:"period"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// ForecastMetadata describes how a forecast was produced.
type ForecastMetadata struct {
	DataPoints          int    `json:"data_points"`
	PredictionMethod    string `json:"prediction_method"`
	ForecastHorizon     int    `json:"forecast_horizon"`
	EnsembleDescription string `json:"ensemble_description,omitempty"`
}

// ForecastResult is the output of a forecast method. Ensemble results carry
// the per-method series and the blend weights for transparency.
type ForecastResult struct {
	Method         string                       `json:"method"`
	Confidence     float64                      `json:"confidence"`
	HistoricalData []QuarterlyPoint             `json:"historicalData"`
	Predictions    []PredictionPoint            `json:"predictions"`
	Metadata       ForecastMetadata             `json:"metadata"`
	Weights        map[string]float64           `json:"weights,omitempty"`
	Individual     map[string][]PredictionPoint `json:"individual,omitempty"`
}
