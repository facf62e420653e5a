package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelsearch/internal/history"
	"github.com/dharmasatrya/travelsearch/internal/models"
	"github.com/dharmasatrya/travelsearch/internal/providers"
)

const defaultHistoryLimit = 20

type Searcher interface {
	SearchFlights(ctx context.Context, req models.FlightSearchRequest) (*models.FlightSearchResponse, error)
	SearchHotels(ctx context.Context, req models.HotelSearchRequest) (*models.HotelSearchResponse, error)
	SearchTrip(ctx context.Context, req models.TripSearchRequest) (*models.TripSearchResponse, error)
	ResolveDates(phrase string) models.ParsedDateRange
	RecentSearches(ctx context.Context, limit int) ([]history.Entry, error)
}

type SearchHandler struct {
	service Searcher
}

func NewSearchHandler(service Searcher) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.POST("/flights/search", h.Flights)
	g.POST("/hotels/search", h.Hotels)
	g.POST("/trips/search", h.Trips)
	g.GET("/dates/resolve", h.ResolveDates)
	g.GET("/history", h.History)
}

func (h *SearchHandler) Flights(c echo.Context) error {
	var req models.FlightSearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return searchError(c, err)
	}

	resp, err := h.service.SearchFlights(c.Request().Context(), req)
	if err != nil {
		return searchError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) Hotels(c echo.Context) error {
	var req models.HotelSearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return searchError(c, err)
	}

	resp, err := h.service.SearchHotels(c.Request().Context(), req)
	if err != nil {
		return searchError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) Trips(c echo.Context) error {
	var req models.TripSearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return searchError(c, err)
	}

	resp, err := h.service.SearchTrip(c.Request().Context(), req)
	if err != nil {
		return searchError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ResolveDates never fails; an empty phrase resolves to the defaults.
func (h *SearchHandler) ResolveDates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ResolveDates(c.QueryParam("phrase")))
}

func (h *SearchHandler) History(c echo.Context) error {
	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "validation_error",
				Message: "limit must be a positive integer",
				Code:    http.StatusBadRequest,
			})
		}
		limit = n
	}

	entries, err := h.service.RecentSearches(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "history_error",
			Message: "Failed to load search history: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"searches": entries,
	})
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Failed to parse request body: " + err.Error(),
		Code:    http.StatusBadRequest,
	})
}

func searchError(c echo.Context, err error) error {
	var (
		validation  models.ValidationError
		providerErr *providers.ProviderError
	)

	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
			Error:   "timeout",
			Message: "Search provider did not answer in time",
			Code:    http.StatusGatewayTimeout,
		})
	case errors.As(err, &providerErr):
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "provider_error",
			Message: "Search provider failed: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	default:
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to search: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
