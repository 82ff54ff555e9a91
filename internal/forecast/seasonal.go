package forecast

import (
	"math"

	"TradePulse/internal/domain/models"
	"TradePulse/pkg/util"
)

const (
	// Two full years of quarters are needed for year-over-year ratios.
	seasonalMinPoints = 8
	seasonalLag       = 4
	seasonalStepDecay = 0.95

	// Confidence band is 100 - 2×samples clamped to [60, 85]. The formula is
	// a policy constant carried over from the original dashboard.
	seasonalConfFloor = 60
	seasonalConfCeil  = 85
)

// Seasonal forecasts by compounding the average year-over-year quarterly
// growth rate. With fewer than two years of history it degrades to the
// linear fit.
type Seasonal struct {
	Linear *Linear
}

func (*Seasonal) Name() string { return MethodSeasonal }

func (s *Seasonal) Forecast(history []models.QuarterlyPoint, horizon int) models.ForecastResult {
	n := len(history)
	if n < seasonalMinPoints {
		return s.Linear.Forecast(history, horizon)
	}

	var (
		growthSum float64
		samples   int
	)
	for i := seasonalLag; i < n; i++ {
		prev := history[i-seasonalLag].Value
		if prev == 0 {
			continue
		}
		growthSum += (history[i].Value - prev) / prev
		samples++
	}
	if samples == 0 {
		return s.Linear.Forecast(history, horizon)
	}
	avgGrowth := growthSum / float64(samples)
	confidence := clamp(100-2*float64(samples), seasonalConfFloor, seasonalConfCeil)

	result := models.ForecastResult{
		Method:         MethodSeasonal,
		Confidence:     round2(confidence),
		HistoricalData: history,
		Predictions:    []models.PredictionPoint{},
		Metadata: models.ForecastMetadata{
			DataPoints:       n,
			PredictionMethod: "seasonal_decomposition",
			ForecastHorizon:  horizon,
		},
	}

	lastPeriod := history[n-1].Period
	value := history[n-1].Value
	for step := 1; step <= horizon; step++ {
		value *= 1 + avgGrowth
		if value < 0 {
			value = 0
		}
		result.Predictions = append(result.Predictions, models.PredictionPoint{
			Period:     util.NextQuarter(lastPeriod, step),
			Value:      round2(value),
			Confidence: round2(confidence * math.Pow(seasonalStepDecay, float64(step))),
			Method:     MethodSeasonal,
		})
	}
	return result
}
