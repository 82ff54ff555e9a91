package api

import (
	"errors"
	"net/http"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/service/insights"
	"TradePulse/internal/usecase"
	xhttp "TradePulse/pkg/http"
	xlogger "TradePulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InsightsHandler serves AI commentary over the aggregated statistics.
type InsightsHandler struct {
	logger   *xlogger.Logger
	insights *insights.Service
	stats    *usecase.StatsService
}

func NewInsightsHandler(logger *xlogger.Logger, svc *insights.Service, stats *usecase.StatsService) *InsightsHandler {
	return &InsightsHandler{logger: logger, insights: svc, stats: stats}
}

func (h *InsightsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/insights", h.Insights)
}

func (h *InsightsHandler) Insights(c echo.Context) error {
	req := &models.InsightsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.insights.Enabled() {
		return xhttp.ServiceUnavailableResponse(c, "insights are not configured")
	}

	ctx := c.Request().Context()

	flow := models.FlowExport
	if req.Focus == "imports" {
		flow = models.FlowImport
	}
	quarterly, err := h.stats.Quarterly(ctx, flow)
	if err != nil {
		h.logger.Error("insight stats failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	var balance []models.BalanceStat
	if req.Focus == "balance" {
		if balance, err = h.stats.Balance(ctx); err != nil {
			h.logger.Error("insight balance failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
	}

	insight, err := h.insights.Generate(ctx, req.Focus, quarterly, balance)
	switch {
	case errors.Is(err, insights.ErrRateLimited):
		// Real 429 on the wire so clients can back off without unwrapping
		// the envelope.
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited, try again shortly"})
	case errors.Is(err, insights.ErrDisabled):
		return xhttp.ServiceUnavailableResponse(c, "insights are not configured")
	case err != nil:
		h.logger.Error("insight generation failed", xlogger.Error(err), xlogger.String("focus", req.Focus))
		return xhttp.ServiceUnavailableResponse(c, "insight generation failed")
	}
	return xhttp.SuccessResponse(c, insight)
}
