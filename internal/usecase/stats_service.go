package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"
	"TradePulse/internal/forecast"
	"TradePulse/pkg/cache"
	"TradePulse/pkg/logger"
	"TradePulse/pkg/util"
)

// StatsService serves the aggregated statistics endpoints.
type StatsService struct {
	store   repository.TradeStore
	cache   cache.Service
	metrics repository.Metrics
	log     *logger.Logger

	cacheTTL time.Duration
}

func NewStatsService(
	store repository.TradeStore,
	cacheSvc cache.Service,
	metrics repository.Metrics,
	log *logger.Logger,
	cacheTTL time.Duration,
) *StatsService {
	return &StatsService{
		store:    store,
		cache:    cacheSvc,
		metrics:  metrics,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

func (s *StatsService) totals(ctx context.Context, flow models.Flow) ([]models.QuarterlyPoint, error) {
	records, err := s.store.Records(ctx, flow)
	if err != nil {
		s.metrics.RecordError("store_read")
		return nil, err
	}
	s.metrics.RecordDatasetSize(string(flow), len(records))
	return forecast.QuarterlyTotals(records, flow), nil
}

// Quarterly returns per-quarter totals with contributing record counts.
func (s *StatsService) Quarterly(ctx context.Context, flow models.Flow) ([]models.QuarterlyStat, error) {
	key := cache.GenerateKeyWithParams("stats:quarterly", flow)
	var cached []models.QuarterlyStat
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	points, err := s.totals(ctx, flow)
	if err != nil {
		return nil, err
	}
	stats := make([]models.QuarterlyStat, 0, len(points))
	for _, p := range points {
		stats = append(stats, models.QuarterlyStat{
			Quarter: p.Period,
			Value:   round2(p.Value),
			Records: p.Records,
		})
	}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// Growth returns quarter-over-quarter growth. The first quarter has no
// predecessor and reports zero growth; a zero predecessor reports a zero
// rate with the full value as the amount.
func (s *StatsService) Growth(ctx context.Context, flow models.Flow) ([]models.GrowthStat, error) {
	key := cache.GenerateKeyWithParams("stats:growth", flow)
	var cached []models.GrowthStat
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	points, err := s.totals(ctx, flow)
	if err != nil {
		return nil, err
	}
	stats := make([]models.GrowthStat, 0, len(points))
	for i, p := range points {
		stat := models.GrowthStat{Quarter: p.Period, Value: round2(p.Value)}
		if i > 0 {
			prev := points[i-1].Value
			stat.GrowthAmount = round2(p.Value - prev)
			if prev != 0 {
				stat.GrowthRate = round2((p.Value - prev) / prev * 100)
			}
		}
		// A flat quarter counts as positive, including the first one and
		// quarters following a zero baseline (both report rate 0).
		stat.IsPositiveGrowth = stat.GrowthRate >= 0
		stats = append(stats, stat)
	}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// Balance joins export and import totals per quarter. Quarters present in
// only one flow contribute zero for the other.
func (s *StatsService) Balance(ctx context.Context) ([]models.BalanceStat, error) {
	key := cache.GenerateKey("stats", "balance")
	var cached []models.BalanceStat
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	exports, err := s.totals(ctx, models.FlowExport)
	if err != nil {
		return nil, err
	}
	imports, err := s.totals(ctx, models.FlowImport)
	if err != nil {
		return nil, err
	}

	byQuarter := make(map[string]*models.BalanceStat)
	for _, p := range exports {
		byQuarter[p.Period] = &models.BalanceStat{Quarter: p.Period, Exports: round2(p.Value)}
	}
	for _, p := range imports {
		stat, ok := byQuarter[p.Period]
		if !ok {
			stat = &models.BalanceStat{Quarter: p.Period}
			byQuarter[p.Period] = stat
		}
		stat.Imports = round2(p.Value)
	}

	stats := make([]models.BalanceStat, 0, len(byQuarter))
	for _, stat := range byQuarter {
		stat.Balance = round2(stat.Exports - stat.Imports)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return util.CompareQuarters(stats[i].Quarter, stats[j].Quarter) < 0
	})
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// Countries returns the top trading partners for the flow, ordered by value
// descending, with each partner's share of the flow total.
func (s *StatsService) Countries(ctx context.Context, flow models.Flow, limit int) ([]models.CountryStat, error) {
	if limit <= 0 {
		limit = 10
	}
	key := cache.GenerateKeyWithParams("stats:countries", flow, limit)
	var cached []models.CountryStat
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	records, err := s.store.Records(ctx, flow)
	if err != nil {
		s.metrics.RecordError("store_read")
		return nil, err
	}

	type agg struct {
		value   float64
		records int
	}
	byCountry := make(map[string]*agg)
	var total float64
	for _, rec := range records {
		partner := rec.Partner()
		a, ok := byCountry[partner]
		if !ok {
			a = &agg{}
			byCountry[partner] = a
		}
		v := rec.Value(flow)
		a.value += v
		a.records++
		total += v
	}

	stats := make([]models.CountryStat, 0, len(byCountry))
	for country, a := range byCountry {
		stat := models.CountryStat{
			Country: country,
			Value:   round2(a.value),
			Records: a.records,
		}
		if total > 0 {
			stat.Share = round2(a.value / total * 100)
		}
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Value != stats[j].Value {
			return stats[i].Value > stats[j].Value
		}
		return stats[i].Country < stats[j].Country
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	s.cacheSet(ctx, key, stats)
	return stats, nil
}

// Health reports the backing store and its record counts. The store contract
// maps unreadable sources to empty slices, so a zero count marks the service
// degraded rather than down.
func (s *StatsService) Health(ctx context.Context) models.HealthStatus {
	status := models.HealthStatus{Status: "ok", Backend: s.store.Name()}

	if exports, err := s.store.Records(ctx, models.FlowExport); err == nil {
		status.ExportRecords = len(exports)
	} else {
		status.Status = "degraded"
	}
	if imports, err := s.store.Records(ctx, models.FlowImport); err == nil {
		status.ImportRecords = len(imports)
	} else {
		status.Status = "degraded"
	}
	if status.Status == "ok" && status.ExportRecords == 0 && status.ImportRecords == 0 {
		status.Status = "degraded"
	}
	return status
}

func (s *StatsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.log.Debug("stats cache write failed", logger.Error(err), logger.String("key", key))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
