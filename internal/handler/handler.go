package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skylens/airmarket/internal/models"
	"github.com/skylens/airmarket/internal/service"
)

type Handler struct {
	svc *service.DataService
}

func New(svc *service.DataService) *Handler {
	return &Handler{svc: svc}
}

// Register attaches all routes to the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/flights/search", h.SearchFlights)
	api.DELETE("/flights/cache", h.InvalidateFlights)
	api.GET("/airports", h.ListAirports)
	api.GET("/airports/:code/analytics", h.AirportAnalytics)
	api.GET("/market/:origin/:destination", h.MarketData)
	e.GET("/health", h.Health)
}

type searchMeta struct {
	UsedFallback bool     `json:"used_fallback"`
	Source       string   `json:"source"`
	Warnings     []string `json:"warnings,omitempty"`
	TotalResults int      `json:"total_results"`
	SearchTimeMs int64    `json:"search_time_ms"`
}

type searchResponse struct {
	Data []models.FlightRecord `json:"data"`
	Meta searchMeta            `json:"meta"`
}

// SearchFlights validates input before the pipeline runs; malformed input
// is the only client-visible failure, everything else degrades inside the
// service and is reported through meta.
func (h *Handler) SearchFlights(c echo.Context) error {
	start := time.Now()

	var query models.FlightQuery
	if err := c.Bind(&query); err != nil {
		return badRequest(c, "invalid_request", "failed to parse request body: "+err.Error())
	}
	if err := query.Validate(); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	result, err := h.svc.GetFlightData(c.Request().Context(), &query)
	if err != nil {
		var validation models.ValidationError
		if errors.As(err, &validation) {
			return badRequest(c, "validation_error", validation.Error())
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	return c.JSON(http.StatusOK, searchResponse{
		Data: result.Data,
		Meta: searchMeta{
			UsedFallback: result.Meta.UsedFallback,
			Source:       result.Meta.Source,
			Warnings:     result.Meta.Warnings,
			TotalResults: len(result.Data),
			SearchTimeMs: time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) InvalidateFlights(c echo.Context) error {
	var query models.FlightQuery
	if err := c.Bind(&query); err != nil {
		return badRequest(c, "invalid_request", "failed to parse request body: "+err.Error())
	}
	if err := query.Validate(); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	if err := h.svc.InvalidateFlightData(c.Request().Context(), &query); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "cache_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) ListAirports(c echo.Context) error {
	opts := service.AirportOptions{
		Search:      c.QueryParam("search"),
		Country:     c.QueryParam("country"),
		IATA:        c.QueryParam("iata"),
		UseRealData: c.QueryParam("use_real_data") != "false",
	}

	result, err := h.svc.GetAirports(c.Request().Context(), opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "airports_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) AirportAnalytics(c echo.Context) error {
	code := c.Param("code")
	if len(code) != 3 {
		return badRequest(c, "validation_error", "airport code must be a 3-letter IATA code")
	}
	days := parseDays(c.QueryParam("days"))

	result, err := h.svc.AirportAnalytics(c.Request().Context(), code, days)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) MarketData(c echo.Context) error {
	origin := c.Param("origin")
	destination := c.Param("destination")
	if len(origin) != 3 || len(destination) != 3 {
		return badRequest(c, "validation_error", "origin and destination must be 3-letter IATA codes")
	}
	days := parseDays(c.QueryParam("days"))

	result, err := h.svc.GetMarketData(c.Request().Context(), origin, destination, days)
	if err != nil {
		return badRequest(c, "validation_error", err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Health(c echo.Context) error {
	report, healthy := h.svc.Health(c.Request().Context())

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	return c.JSON(status, map[string]any{
		"status":     overall,
		"components": report,
	})
}

func badRequest(c echo.Context, kind, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

func parseDays(raw string) int {
	if raw == "" {
		return 30
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 || days > 365 {
		return 30
	}
	return days
}
