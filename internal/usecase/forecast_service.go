package usecase

import (
	"context"
	"encoding/json"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"
	"TradePulse/internal/forecast"
	"TradePulse/pkg/cache"
	"TradePulse/pkg/logger"
)

// ForecastService turns stored trade records into prediction responses. All
// entry points degrade to the synthetic fallback series instead of failing,
// so callers always receive a renderable payload.
type ForecastService struct {
	store    repository.TradeStore
	cache    cache.Service
	metrics  repository.Metrics
	log      *logger.Logger
	registry *forecast.Registry

	window   int
	cacheTTL time.Duration
}

func NewForecastService(
	store repository.TradeStore,
	cacheSvc cache.Service,
	metrics repository.Metrics,
	log *logger.Logger,
	registry *forecast.Registry,
	window int,
	cacheTTL time.Duration,
) *ForecastService {
	if window <= 0 {
		window = 8
	}
	return &ForecastService{
		store:    store,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		registry: registry,
		window:   window,
		cacheTTL: cacheTTL,
	}
}

// StaticPredictions returns the pre-computed predictions document when the
// data source carries one.
func (s *ForecastService) StaticPredictions(ctx context.Context) (json.RawMessage, bool) {
	raw, ok, err := s.store.StaticPredictions(ctx)
	if err != nil {
		s.log.Warn("static predictions unavailable", logger.Error(err))
		s.metrics.RecordError("static_predictions")
		return nil, false
	}
	return raw, ok
}

// Predict computes a live forecast using the named method over the last
// window of quarterly export totals. A store failure returns the fallback
// payload alongside the error; insufficient history returns the fallback
// payload with a nil error.
func (s *ForecastService) Predict(ctx context.Context, method string, horizon int) (*models.PredictionResponse, error) {
	key := cache.GenerateKeyWithParams("predictions", method, horizon)
	var cached models.PredictionResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	records, err := s.store.Records(ctx, models.FlowExport)
	if err != nil {
		s.log.Error("loading export records failed", logger.Error(err), logger.String("method", method))
		s.metrics.RecordError("store_read")
		s.metrics.RecordFallback("store_error")
		return s.fallback(horizon), err
	}
	s.metrics.RecordDatasetSize(string(models.FlowExport), len(records))

	history := forecast.Window(forecast.QuarterlyTotals(records, models.FlowExport), s.window)
	if len(history) == 0 {
		s.log.Warn("no quarterly history, serving fallback", logger.String("method", method))
		s.metrics.RecordFallback("no_history")
		return s.fallback(horizon), nil
	}

	m, ok := s.registry.Get(method)
	if !ok {
		s.metrics.RecordFallback("unknown_method")
		return s.fallback(horizon), nil
	}

	start := time.Now()
	result := m.Forecast(history, horizon)
	s.metrics.RecordForecast(result.Method, time.Since(start).Seconds())

	resp := buildPredictionResponse(result)
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		s.log.Debug("prediction cache write failed", logger.Error(err))
	}
	return resp, nil
}

func (s *ForecastService) fallback(horizon int) *models.PredictionResponse {
	return buildPredictionResponse(forecast.Fallback(horizon))
}

// buildPredictionResponse flattens a forecast result into the transport
// shape the dashboard consumes.
func buildPredictionResponse(result models.ForecastResult) *models.PredictionResponse {
	resp := &models.PredictionResponse{
		Method:         result.Method,
		Confidence:     result.Confidence,
		LastUpdated:    time.Now().UTC().Format(time.RFC3339),
		HistoricalData: make([]models.HistoricalPoint, 0, len(result.HistoricalData)),
		Predictions:    toPredictionDTOs(result.Predictions),
		Metadata: models.PredictionMetadata{
			DataPoints:          result.Metadata.DataPoints,
			PredictionMethod:    result.Metadata.PredictionMethod,
			ForecastHorizon:     result.Metadata.ForecastHorizon,
			EnsembleDescription: result.Metadata.EnsembleDescription,
		},
	}
	for _, p := range result.HistoricalData {
		resp.HistoricalData = append(resp.HistoricalData, models.HistoricalPoint{Period: p.Period, Exports: p.Value})
	}
	if len(result.Weights) > 0 {
		resp.EnsembleWeights = result.Weights
	}
	if len(result.Individual) > 0 {
		resp.IndividualPredictions = make(map[string][]models.PredictionDTO, len(result.Individual))
		for name, preds := range result.Individual {
			resp.IndividualPredictions[name] = toPredictionDTOs(preds)
		}
	}
	return resp
}

func toPredictionDTOs(points []models.PredictionPoint) []models.PredictionDTO {
	out := make([]models.PredictionDTO, 0, len(points))
	for _, p := range points {
		out = append(out, models.PredictionDTO{
			Period:     p.Period,
			Exports:    p.Value,
			Confidence: p.Confidence,
			Method:     p.Method,
		})
	}
	return out
}
