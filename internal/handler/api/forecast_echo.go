package api

import (
	"errors"
	"time"

	models "DemandCast/internal/domain/models"
	fmetrics "DemandCast/internal/service/metrics"
	"DemandCast/internal/service/ratelimit"
	"DemandCast/internal/services/forecast"
	"DemandCast/internal/usecase"
	pkgcache "DemandCast/pkg/cache"
	xhttp "DemandCast/pkg/http"
	xlogger "DemandCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler exposes the forecasting engine over Echo routes.
type ForecastEchoHandler struct {
	logger   *xlogger.Logger
	svc      *usecase.ForecastService
	cache    pkgcache.Service // optional
	cacheTTL time.Duration
	limiter  *ratelimit.Limiter
}

func NewForecastEchoHandler(logger *xlogger.Logger, svc *usecase.ForecastService) *ForecastEchoHandler {
	fmetrics.Register()
	return &ForecastEchoHandler{
		logger:   logger,
		svc:      svc,
		cacheTTL: 15 * time.Minute,
		limiter:  ratelimit.New(),
	}
}

// SetCache wires an optional response cache.
func (h *ForecastEchoHandler) SetCache(c pkgcache.Service, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/forecast", h.Forecast)
	g.GET("/anomalies", h.Anomalies)
	g.GET("/backtest", h.Backtest)
	g.GET("/health", h.Health)
}

func (h *ForecastEchoHandler) Forecast(c echo.Context) error {
	start := time.Now()
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.limiter.Allow("forecast:"+req.ProductID, 10, 2) {
		return xhttp.TooManyRequestsResponse(c, "forecast rate limit exceeded")
	}
	fmetrics.ForecastHorizonDays.WithLabelValues("forecast").Observe(float64(req.Horizon))

	key := pkgcache.GenerateKeyWithParams("forecast", req.ProductID, req.LocationID, req.Horizon, req.Days)
	if h.cache != nil {
		if cached, err := pkgcache.GetTyped[models.ForecastResult](c.Request().Context(), h.cache, key); err == nil {
			return xhttp.SuccessResponse(c, cached)
		}
	}

	res, err := h.svc.Forecast(c.Request().Context(), *req)
	if err != nil {
		fmetrics.ForecastErrors.WithLabelValues("forecast").Inc()
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return h.engineErrorResponse(c, err)
	}

	if h.cache != nil {
		_ = h.cache.Set(c.Request().Context(), key, res, h.cacheTTL)
	}
	fmetrics.ForecastLatency.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Anomalies(c echo.Context) error {
	start := time.Now()
	req := &models.AnomalyScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.limiter.Allow("anomalies:"+req.ProductID, 10, 2) {
		return xhttp.TooManyRequestsResponse(c, "anomaly scan rate limit exceeded")
	}

	res, err := h.svc.Anomalies(c.Request().Context(), *req)
	if err != nil {
		fmetrics.ForecastErrors.WithLabelValues("anomalies").Inc()
		h.logger.Error("anomaly usecase error", xlogger.Error(err))
		return h.engineErrorResponse(c, err)
	}
	fmetrics.ForecastLatency.WithLabelValues("anomalies").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Backtest(c echo.Context) error {
	start := time.Now()
	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	fmetrics.ForecastHorizonDays.WithLabelValues("backtest").Observe(float64(req.Horizon))

	res, err := h.svc.Backtest(c.Request().Context(), *req)
	if err != nil {
		fmetrics.ForecastErrors.WithLabelValues("backtest").Inc()
		h.logger.Error("backtest usecase error", xlogger.Error(err))
		return h.engineErrorResponse(c, err)
	}
	fmetrics.ForecastLatency.WithLabelValues("backtest").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *ForecastEchoHandler) engineErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, forecast.ErrInvalidRange),
		errors.Is(err, forecast.ErrMalformedSeries),
		errors.Is(err, forecast.ErrInsufficientData):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	default:
		return xhttp.AppErrorResponse(c, err)
	}
}
