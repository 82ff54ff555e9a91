package api

import (
	"net/http"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/usecase"
	xhttp "TradePulse/pkg/http"
	xlogger "TradePulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatsHandler serves the aggregated statistics endpoints and the health
// probe.
type StatsHandler struct {
	logger *xlogger.Logger
	stats  *usecase.StatsService
}

func NewStatsHandler(logger *xlogger.Logger, stats *usecase.StatsService) *StatsHandler {
	return &StatsHandler{logger: logger, stats: stats}
}

func (h *StatsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/stats")
	g.GET("/quarterly", h.Quarterly)
	g.GET("/growth", h.Growth)
	g.GET("/balance", h.Balance)
	g.GET("/countries", h.Countries)

	e.GET("/api/health", h.Health)
}

func (h *StatsHandler) Quarterly(c echo.Context) error {
	req := &models.StatsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	stats, err := h.stats.Quarterly(c.Request().Context(), models.Flow(req.Flow))
	if err != nil {
		h.logger.Error("quarterly stats failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}

func (h *StatsHandler) Growth(c echo.Context) error {
	req := &models.StatsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	stats, err := h.stats.Growth(c.Request().Context(), models.Flow(req.Flow))
	if err != nil {
		h.logger.Error("growth stats failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}

func (h *StatsHandler) Balance(c echo.Context) error {
	stats, err := h.stats.Balance(c.Request().Context())
	if err != nil {
		h.logger.Error("balance stats failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}

func (h *StatsHandler) Countries(c echo.Context) error {
	req := &models.CountriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	stats, err := h.stats.Countries(c.Request().Context(), models.Flow(req.Flow), req.Limit)
	if err != nil {
		h.logger.Error("top countries failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}

// Health reports data readiness with a plain body so probes do not need to
// unwrap the envelope.
func (h *StatsHandler) Health(c echo.Context) error {
	status := h.stats.Health(c.Request().Context())
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
