package forecast

import (
	"TradePulse/internal/domain/models"
	"TradePulse/pkg/util"
)

const (
	fallbackBaseValue   = 700.0
	fallbackIncrement   = 50.0
	fallbackStartPeriod = "2025Q1"

	// Per-point confidence is 0.5 on the 0-100 scale, overall 50. Both
	// values are kept literally for compatibility with prior consumers.
	fallbackPointConfidence   = 0.5
	fallbackOverallConfidence = 50.0
)

// Fallback produces a deterministic synthetic prediction series. It exists
// so the prediction endpoints always return a well-formed body: insufficient
// history or an internal error degrades here rather than failing the call.
func Fallback(horizon int) models.ForecastResult {
	if horizon <= 0 {
		horizon = 4
	}

	result := models.ForecastResult{
		Method:         MethodFallback,
		Confidence:     fallbackOverallConfidence,
		HistoricalData: []models.QuarterlyPoint{},
		Predictions:    make([]models.PredictionPoint, 0, horizon),
		Metadata: models.ForecastMetadata{
			DataPoints:       0,
			PredictionMethod: MethodFallback,
			ForecastHorizon:  horizon,
		},
	}

	for step := 0; step < horizon; step++ {
		result.Predictions = append(result.Predictions, models.PredictionPoint{
			Period:     util.NextQuarter(fallbackStartPeriod, step),
			Value:      fallbackBaseValue + fallbackIncrement*float64(step),
			Confidence: fallbackPointConfidence,
			Method:     MethodFallback,
		})
	}
	return result
}
