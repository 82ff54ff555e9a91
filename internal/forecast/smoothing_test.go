package forecast

import (
	"math"
	"testing"
)

func newSmoothing() *Smoothing {
	return &Smoothing{Linear: &Linear{}}
}

func TestSmoothingLevelAndTrend(t *testing.T) {
	values := []float64{100, 110, 120, 130, 140, 150}
	history := series(quarters("2023Q3", 6), values)

	// Recompute the smoothed level the same way the method does.
	level := values[0]
	for _, v := range values[1:] {
		level = 0.3*v + 0.7*level
	}
	trend := (values[5] - values[0]) / 5

	result := newSmoothing().Forecast(history, 3)
	if result.Method != MethodML {
		t.Fatalf("expected ml method, got %s", result.Method)
	}
	if result.Confidence != 75 {
		t.Fatalf("expected confidence 75, got %v", result.Confidence)
	}
	for i, p := range result.Predictions {
		step := float64(i + 1)
		wantValue := round2(level + trend*step)
		wantConf := round2(75 * math.Pow(0.92, step))
		if math.Abs(p.Value-wantValue) > 1e-9 {
			t.Fatalf("step %d value: got %v want %v", i+1, p.Value, wantValue)
		}
		if math.Abs(p.Confidence-wantConf) > 1e-9 {
			t.Fatalf("step %d confidence: got %v want %v", i+1, p.Confidence, wantConf)
		}
	}
	if result.Predictions[0].Period != "2025Q1" {
		t.Fatalf("expected first prediction in 2025Q1, got %s", result.Predictions[0].Period)
	}
}

func TestSmoothingShortHistoryUsesLinear(t *testing.T) {
	history := series(quarters("2024Q1", 5), []float64{10, 20, 30, 40, 50})

	result := newSmoothing().Forecast(history, 2)
	if result.Method != MethodLinear {
		t.Fatalf("expected linear fallback below 6 points, got %s", result.Method)
	}
}

func TestSmoothingNegativeClamped(t *testing.T) {
	history := series(quarters("2023Q1", 6), []float64{500, 400, 300, 200, 100, 0})

	result := newSmoothing().Forecast(history, 6)
	for _, p := range result.Predictions {
		if p.Value < 0 {
			t.Fatalf("prediction below zero: %+v", p)
		}
	}
}
