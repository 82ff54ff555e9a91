package di

import (
	"fmt"

	"TradePulse/internal/domain/repository"
	"TradePulse/internal/forecast"
	"TradePulse/internal/handler/api"
	internalrepo "TradePulse/internal/repository"
	"TradePulse/internal/service/insights"
	"TradePulse/internal/usecase"
	"TradePulse/pkg/cache"
	"TradePulse/pkg/config"
	xhttp "TradePulse/pkg/http"
	applogger "TradePulse/pkg/logger"
	"TradePulse/pkg/metrics"
	"TradePulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTradeStore creates the configured data backend.
func ProvideTradeStore(cfg *config.Config, log *applogger.Logger) (repository.TradeStore, error) {
	switch cfg.Data.Backend {
	case "file":
		return internalrepo.NewFileStore(cfg.Data.Dir, log), nil
	case "sqlite":
		store, err := internalrepo.NewSQLiteStore(cfg.Data.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Data.Backend)
	}
}

// ProvideCache creates the configured cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return newRedisCache(cfg)
	case "layered":
		redisCache, err := newRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(redisCache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func newRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	c, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideForecastRegistry wires the forecast methods with the configured
// ensemble weights.
func ProvideForecastRegistry(cfg *config.Config) *forecast.Registry {
	return forecast.DefaultRegistry(forecast.Weights{
		Linear:   cfg.Forecast.LinearWeight,
		Seasonal: cfg.Forecast.SeasonalWeight,
		ML:       cfg.Forecast.MLWeight,
	})
}

// ProvideForecastService creates the forecast use case.
func ProvideForecastService(
	store repository.TradeStore,
	cacheSvc cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	registry *forecast.Registry,
	cfg *config.Config,
) *usecase.ForecastService {
	return usecase.NewForecastService(store, cacheSvc, m, log, registry, cfg.Forecast.Window, cfg.Cache.TTL)
}

// ProvideStatsService creates the statistics use case.
func ProvideStatsService(
	store repository.TradeStore,
	cacheSvc cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.StatsService {
	return usecase.NewStatsService(store, cacheSvc, m, log, cfg.Cache.TTL)
}

// ProvideInsightsService creates the model commentary client.
func ProvideInsightsService(
	cfg *config.Config,
	cacheSvc cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
) *insights.Service {
	if !cfg.Insights.Enabled {
		return insights.NewService(insights.Config{}, cacheSvc, m, log)
	}
	return insights.NewService(insights.Config{
		BaseURL: cfg.Insights.BaseURL,
		APIKey:  cfg.Insights.APIKey,
		Model:   cfg.Insights.Model,
		Timeout: cfg.Insights.Timeout,
		RPS:     cfg.Insights.RPS,
	}, cacheSvc, m, log)
}

// ProvideHTTPHandler bundles the endpoint handlers.
func ProvideHTTPHandler(
	log *applogger.Logger,
	forecasts *usecase.ForecastService,
	stats *usecase.StatsService,
	insightsSvc *insights.Service,
) xhttp.Handler {
	return api.NewRouter(
		api.NewPredictionsHandler(log, forecasts),
		api.NewStatsHandler(log, stats),
		api.NewInsightsHandler(log, insightsSvc, stats),
	)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(log),
	)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	srv *xhttp.Server,
	store repository.TradeStore,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, log, srv, store, cacheSvc)
}
