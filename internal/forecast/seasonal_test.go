package forecast

import (
	"math"
	"testing"
)

func newSeasonal() *Seasonal {
	return &Seasonal{Linear: &Linear{}}
}

func TestSeasonalRepeatingPattern(t *testing.T) {
	// A strictly repeating 4-quarter pattern has zero year-over-year growth,
	// so every prediction equals the last observed value.
	history := series(quarters("2023Q1", 8), []float64{10, 20, 30, 40, 10, 20, 30, 40})

	result := newSeasonal().Forecast(history, 4)
	if result.Method != MethodSeasonal {
		t.Fatalf("expected seasonal method, got %s", result.Method)
	}
	for _, p := range result.Predictions {
		if math.Abs(p.Value-40) > 1e-9 {
			t.Fatalf("expected flat predictions at 40, got %+v", p)
		}
	}

	// 4 growth samples: clamp(100-8, 60, 85) = 85
	if result.Confidence != 85 {
		t.Fatalf("expected confidence 85, got %v", result.Confidence)
	}
}

func TestSeasonalConfidenceDecayCompounds(t *testing.T) {
	history := series(quarters("2023Q1", 8), []float64{10, 20, 30, 40, 12, 22, 33, 44})

	result := newSeasonal().Forecast(history, 3)
	base := result.Confidence
	for i, p := range result.Predictions {
		want := round2(base * math.Pow(0.95, float64(i+1)))
		if math.Abs(p.Confidence-want) > 0.01 {
			t.Fatalf("step %d confidence: got %v want %v", i+1, p.Confidence, want)
		}
	}
}

func TestSeasonalFallsBackToLinear(t *testing.T) {
	history := series(quarters("2023Q1", 7), []float64{10, 20, 30, 40, 10, 20, 30})

	result := newSeasonal().Forecast(history, 4)
	if result.Method != MethodLinear {
		t.Fatalf("expected linear fallback below 8 points, got %s", result.Method)
	}
}

func TestSeasonalZeroBaselinesSkipped(t *testing.T) {
	// Zero values a year earlier would divide by zero; those samples are
	// skipped rather than poisoning the average.
	history := series(quarters("2023Q1", 8), []float64{0, 0, 0, 0, 10, 20, 30, 40})

	result := newSeasonal().Forecast(history, 2)
	if result.Method != MethodLinear {
		t.Fatalf("expected linear fallback when no usable growth samples, got %s", result.Method)
	}
}

func TestSeasonalGrowthCompounds(t *testing.T) {
	// 10% year-over-year growth in every quarter.
	history := series(quarters("2023Q1", 8), []float64{100, 200, 300, 400, 110, 220, 330, 440})

	result := newSeasonal().Forecast(history, 2)
	want1 := 440 * 1.1
	want2 := want1 * 1.1
	if math.Abs(result.Predictions[0].Value-round2(want1)) > 0.01 {
		t.Fatalf("step 1: got %v want %v", result.Predictions[0].Value, want1)
	}
	if math.Abs(result.Predictions[1].Value-round2(want2)) > 0.02 {
		t.Fatalf("step 2: got %v want %v", result.Predictions[1].Value, want2)
	}
}
