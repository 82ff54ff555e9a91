package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"TradePulse/internal/domain/models"
	"TradePulse/pkg/util"
)

// linearMinPoints is the smallest window an OLS fit is attempted on.
const linearMinPoints = 3

// linearStepDecay is applied once to every prediction point's confidence.
// It is deliberately NOT compounded per step; the other methods compound
// theirs, and the asymmetry is kept for output compatibility with the
// dashboard this data feeds.
const linearStepDecay = 0.9

// Linear forecasts by ordinary least-squares regression of value against a
// zero-based time index.
type Linear struct{}

func (*Linear) Name() string { return MethodLinear }

func (l *Linear) Forecast(history []models.QuarterlyPoint, horizon int) models.ForecastResult {
	n := len(history)
	result := models.ForecastResult{
		Method:         MethodLinear,
		HistoricalData: history,
		Predictions:    []models.PredictionPoint{},
		Metadata: models.ForecastMetadata{
			DataPoints:       n,
			PredictionMethod: "linear_regression",
			ForecastHorizon:  horizon,
		},
	}
	if n < linearMinPoints || horizon <= 0 {
		return result
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, point := range history {
		xs[i] = float64(i)
		ys[i] = point.Value
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// Constant series: the fit is exact but R² is undefined.
		r2 = 1
	}
	confidence := clamp(r2*100, 0, 100)
	result.Confidence = round2(confidence)

	lastPeriod := history[n-1].Period
	for step := 1; step <= horizon; step++ {
		value := intercept + slope*float64(n-1+step)
		if value < 0 {
			value = 0
		}
		result.Predictions = append(result.Predictions, models.PredictionPoint{
			Period:     util.NextQuarter(lastPeriod, step),
			Value:      round2(value),
			Confidence: round2(confidence * linearStepDecay),
			Method:     MethodLinear,
		})
	}
	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
