package models

// Transport shapes for the prediction endpoint family. These mirror what the
// dashboard consumes, so field names stay as-is.

// HistoricalPoint is one observed quarter in a prediction response.
type HistoricalPoint struct {
	Period  string  `json:"period"`
	Exports float64 `json:"exports"`
}

// PredictionDTO is one forecasted quarter in a prediction response.
type PredictionDTO struct {
	Period     string  `json:"period"`
	Exports    float64 `json:"exports"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// PredictionMetadata describes the forecast in a prediction response.
type PredictionMetadata struct {
	DataPoints          int    `json:"data_points"`
	PredictionMethod    string `json:"prediction_method"`
	ForecastHorizon     int    `json:"forecast_horizon"`
	EnsembleDescription string `json:"ensemble_description,omitempty"`
}

// PredictionResponse is the body served by /api/predictions/*.
type PredictionResponse struct {
	Method                string                     `json:"method"`
	Confidence            float64                    `json:"confidence"`
	LastUpdated           string                     `json:"last_updated"`
	HistoricalData        []HistoricalPoint          `json:"historical_data"`
	Predictions           []PredictionDTO            `json:"predictions"`
	Metadata              PredictionMetadata         `json:"metadata"`
	EnsembleWeights       map[string]float64         `json:"ensemble_weights,omitempty"`
	IndividualPredictions map[string][]PredictionDTO `json:"individual_predictions,omitempty"`
}

// PredictionError is the 500 body for the prediction family; it always
// carries a usable fallback payload.
type PredictionError struct {
	Error    string              `json:"error"`
	Fallback *PredictionResponse `json:"fallback"`
}

// --- Statistics endpoint shapes ---

// QuarterlyStat is one aggregated quarter with its contributing record count.
type QuarterlyStat struct {
	Quarter string  `json:"quarter"`
	Value   float64 `json:"value"`
	Records int     `json:"records"`
}

// GrowthStat is one quarter's value with quarter-over-quarter growth.
type GrowthStat struct {
	Quarter          string  `json:"quarter"`
	Value            float64 `json:"value"`
	GrowthRate       float64 `json:"growth_rate"`
	GrowthAmount     float64 `json:"growth_amount"`
	IsPositiveGrowth bool    `json:"is_positive_growth"`
}

// BalanceStat is one quarter's exports, imports, and trade balance.
type BalanceStat struct {
	Quarter string  `json:"quarter"`
	Exports float64 `json:"exports"`
	Imports float64 `json:"imports"`
	Balance float64 `json:"balance"`
}

// CountryStat is one partner country's aggregated value and share.
type CountryStat struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
	Share   float64 `json:"share"`
	Records int     `json:"records"`
}

// HealthStatus reports data source readiness and record counts.
type HealthStatus struct {
	Status        string `json:"status"`
	Backend       string `json:"backend"`
	ExportRecords int    `json:"export_records"`
	ImportRecords int    `json:"import_records"`
}

// Insight is the AI commentary payload.
type Insight struct {
	Focus       string `json:"focus"`
	Summary     string `json:"summary"`
	Model       string `json:"model"`
	GeneratedAt string `json:"generated_at"`
}
