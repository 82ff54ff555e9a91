package forecast

import (
	"fmt"

	"TradePulse/internal/domain/models"
	"TradePulse/pkg/util"
)

// Weights are the fixed blend weights for the ensemble. The 0.3/0.4/0.3
// split is a policy constant carried over from the original dashboard.
type Weights struct {
	Linear   float64
	Seasonal float64
	ML       float64
}

// DefaultWeights returns the dashboard-compatible blend.
func DefaultWeights() Weights {
	return Weights{Linear: 0.3, Seasonal: 0.4, ML: 0.3}
}

// Map renders the weights keyed by method name.
func (w Weights) Map() map[string]float64 {
	return map[string]float64{
		MethodLinear:   w.Linear,
		MethodSeasonal: w.Seasonal,
		MethodML:       w.ML,
	}
}

// Ensemble runs the three base methods with an identical horizon and blends
// their outputs with fixed weights. A period absent from a method's output
// contributes zero to that weighted term; this is a known simplification,
// not a bug.
type Ensemble struct {
	Linear   Method
	Seasonal Method
	ML       Method
	Weights  Weights
}

func (*Ensemble) Name() string { return MethodEnsemble }

func (e *Ensemble) Forecast(history []models.QuarterlyPoint, horizon int) models.ForecastResult {
	lin := e.Linear.Forecast(history, horizon)
	seas := e.Seasonal.Forecast(history, horizon)
	ml := e.ML.Forecast(history, horizon)

	byPeriod := func(r models.ForecastResult) map[string]models.PredictionPoint {
		m := make(map[string]models.PredictionPoint, len(r.Predictions))
		for _, p := range r.Predictions {
			m[p.Period] = p
		}
		return m
	}
	linByPeriod := byPeriod(lin)
	seasByPeriod := byPeriod(seas)
	mlByPeriod := byPeriod(ml)

	result := models.ForecastResult{
		Method:         MethodEnsemble,
		Confidence:     round2(e.Weights.Linear*lin.Confidence + e.Weights.Seasonal*seas.Confidence + e.Weights.ML*ml.Confidence),
		HistoricalData: history,
		Predictions:    []models.PredictionPoint{},
		Weights:        e.Weights.Map(),
		Individual: map[string][]models.PredictionPoint{
			MethodLinear:   lin.Predictions,
			MethodSeasonal: seas.Predictions,
			MethodML:       ml.Predictions,
		},
		Metadata: models.ForecastMetadata{
			DataPoints:       len(history),
			PredictionMethod: "ensemble",
			ForecastHorizon:  horizon,
			EnsembleDescription: fmt.Sprintf(
				"Weighted blend of linear (%.1f), seasonal (%.1f), and exponential smoothing (%.1f) forecasts",
				e.Weights.Linear, e.Weights.Seasonal, e.Weights.ML,
			),
		},
	}

	if len(history) == 0 || horizon <= 0 {
		return result
	}

	lastPeriod := history[len(history)-1].Period
	for step := 1; step <= horizon; step++ {
		period := util.NextQuarter(lastPeriod, step)

		var value, confidence float64
		if p, ok := linByPeriod[period]; ok {
			value += e.Weights.Linear * p.Value
			confidence += e.Weights.Linear * p.Confidence
		}
		if p, ok := seasByPeriod[period]; ok {
			value += e.Weights.Seasonal * p.Value
			confidence += e.Weights.Seasonal * p.Confidence
		}
		if p, ok := mlByPeriod[period]; ok {
			value += e.Weights.ML * p.Value
			confidence += e.Weights.ML * p.Confidence
		}

		result.Predictions = append(result.Predictions, models.PredictionPoint{
			Period:     period,
			Value:      round2(value),
			Confidence: round2(confidence),
			Method:     MethodEnsemble,
		})
	}
	return result
}
