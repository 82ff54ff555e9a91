package forecast

import (
	"math"

	"TradePulse/internal/domain/models"
	"TradePulse/pkg/util"
)

const (
	smoothingMinPoints = 6
	smoothingAlpha     = 0.3
	smoothingStepDecay = 0.92
	smoothingBaseConf  = 75
)

// Smoothing is the "ml" method: single exponential smoothing for the level
// plus a first-to-last trend line. Degrades to the linear fit below six
// points of history.
type Smoothing struct {
	Linear *Linear
}

func (*Smoothing) Name() string { return MethodML }

func (s *Smoothing) Forecast(history []models.QuarterlyPoint, horizon int) models.ForecastResult {
	n := len(history)
	if n < smoothingMinPoints {
		return s.Linear.Forecast(history, horizon)
	}

	level := history[0].Value
	for i := 1; i < n; i++ {
		level = smoothingAlpha*history[i].Value + (1-smoothingAlpha)*level
	}
	trend := (history[n-1].Value - history[0].Value) / float64(n-1)

	result := models.ForecastResult{
		Method:         MethodML,
		Confidence:     smoothingBaseConf,
		HistoricalData: history,
		Predictions:    []models.PredictionPoint{},
		Metadata: models.ForecastMetadata{
			DataPoints:       n,
			PredictionMethod: "exponential_smoothing",
			ForecastHorizon:  horizon,
		},
	}

	lastPeriod := history[n-1].Period
	for step := 1; step <= horizon; step++ {
		value := level + trend*float64(step)
		if value < 0 {
			value = 0
		}
		result.Predictions = append(result.Predictions, models.PredictionPoint{
			Period:     util.NextQuarter(lastPeriod, step),
			Value:      round2(value),
			Confidence: round2(smoothingBaseConf * math.Pow(smoothingStepDecay, float64(step))),
			Method:     MethodML,
		})
	}
	return result
}
