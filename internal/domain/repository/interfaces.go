package repository

import (
	"context"
	"encoding/json"

	"TradePulse/internal/domain/models"
)

// TradeStore provides read access to the pre-processed trade data.
// Implementations never mutate records; each call returns a fresh slice.
type TradeStore interface {
	// Records returns all trade records for the given flow. A missing or
	// unreadable source yields an empty slice, not an error.
	Records(ctx context.Context, flow models.Flow) ([]models.TradeRecord, error)

	// StaticPredictions returns the pre-computed predictions document when
	// the data source carries one. ok is false when absent.
	StaticPredictions(ctx context.Context) (json.RawMessage, bool, error)

	// Name identifies the backing store for health reporting.
	Name() string

	Close() error
}

// Metrics records domain-level observations.
type Metrics interface {
	RecordForecast(method string, seconds float64)
	RecordFallback(reason string)
	RecordError(kind string)
	RecordDatasetSize(flow string, n int)
	RecordInsight(outcome string)
}

// NopMetrics discards all observations; used in tests.
type NopMetrics struct{}

func (NopMetrics) RecordForecast(string, float64) {}
func (NopMetrics) RecordFallback(string)          {}
func (NopMetrics) RecordError(string)             {}
func (NopMetrics) RecordDatasetSize(string, int)  {}
func (NopMetrics) RecordInsight(string)           {}
