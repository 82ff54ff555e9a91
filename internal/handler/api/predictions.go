package api

import (
	"net/http"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/usecase"
	xhttp "TradePulse/pkg/http"
	xlogger "TradePulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionsHandler serves the forecast endpoint family. Unlike the stats
// endpoints these return their payload bodies directly, without the response
// envelope, because the dashboard charts consume them as-is.
type PredictionsHandler struct {
	logger    *xlogger.Logger
	forecasts *usecase.ForecastService
}

func NewPredictionsHandler(logger *xlogger.Logger, forecasts *usecase.ForecastService) *PredictionsHandler {
	return &PredictionsHandler{logger: logger, forecasts: forecasts}
}

func (h *PredictionsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/predictions")
	g.GET("/next", h.Next)
	g.GET("/live", h.Live)
}

// Next serves the pre-computed predictions document when the data source
// carries one, and falls through to a live computation otherwise.
func (h *PredictionsHandler) Next(c echo.Context) error {
	req := &models.NextPredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if raw, ok := h.forecasts.StaticPredictions(c.Request().Context()); ok {
		return c.JSONBlob(http.StatusOK, raw)
	}
	return h.respond(c, req.Method, req.Quarters)
}

// Live always computes from the current records; it additionally offers the
// ensemble method.
func (h *PredictionsHandler) Live(c echo.Context) error {
	req := &models.LivePredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return h.respond(c, req.Method, req.Quarters)
}

func (h *PredictionsHandler) respond(c echo.Context, method string, quarters int) error {
	resp, err := h.forecasts.Predict(c.Request().Context(), method, quarters)
	if err != nil {
		h.logger.Error("prediction failed", xlogger.Error(err), xlogger.String("method", method))
		return c.JSON(http.StatusInternalServerError, models.PredictionError{
			Error:    "prediction unavailable",
			Fallback: resp,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
