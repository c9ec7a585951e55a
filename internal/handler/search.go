package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelfront/internal/cache"
	"github.com/dharmasatrya/travelfront/internal/fetcher"
	"github.com/dharmasatrya/travelfront/internal/filter"
	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/searchparams"
	"github.com/dharmasatrya/travelfront/pkg/logger"
	"github.com/dharmasatrya/travelfront/pkg/metrics"
)

type SearchHandler struct {
	dispatchers *fetcher.DispatcherPool
	cache       cache.Cache
	log         logger.Logger
}

func NewSearchHandler(pool *fetcher.DispatcherPool, c cache.Cache, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		dispatchers: pool,
		cache:       c,
		log:         log,
	}
}

// Search resolves the storefront query string, fetches (or reuses) the
// normalized result set, and returns the filtered, sorted view together with
// the bounds the filter state was seeded from.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()
	values := c.QueryParams()

	req := searchparams.Resolve(values)

	if err := req.Validate(); err != nil {
		metrics.SearchesTotal.WithLabelValues(string(req.TripType), "missing_parameters").Inc()
		return c.JSON(http.StatusOK, models.SearchResponse{
			SearchCriteria: req,
			Results:        []models.FlightResult{},
			Error:          "missing_parameters",
		})
	}

	entry, cacheHit := h.cache.Get(ctx, req)
	if !cacheHit {
		result, err := h.dispatchers.Dispatch(ctx, clientKey(c, req), req)
		if err != nil {
			return h.searchError(c, req, err)
		}
		entry = &cache.Entry{Results: result.Results, Bounds: result.Bounds}
		if err := h.cache.Set(ctx, req, *entry); err != nil {
			h.log.Warn("result cache write failed", "error", err)
		}
	} else {
		metrics.CacheHits.Inc()
	}

	state := searchparams.ResolveFilters(values, entry.Bounds)
	filtered := filter.Apply(entry.Results, state)
	filtered = filter.Sort(filtered, c.QueryParam("sort_by"), c.QueryParam("sort_order"))

	metrics.SearchesTotal.WithLabelValues(string(req.TripType), "ok").Inc()
	metrics.SearchDuration.Observe(time.Since(startTime).Seconds())

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: req,
		Metadata: models.SearchMetadata{
			TotalResults: len(filtered),
			FilteredOut:  len(entry.Results) - len(filtered),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			CacheHit:     cacheHit,
		},
		FilterBounds: entry.Bounds,
		Results:      filtered,
	})
}

// clientKey scopes supersession to one storefront session. Only a client's
// own parameter changes may cancel its outstanding search; without an
// identifier the request hash keeps unrelated searches apart.
func clientKey(c echo.Context, req models.SearchRequest) string {
	if id := c.QueryParam("client_id"); id != "" {
		return "client:" + id
	}
	if id := c.Request().Header.Get("X-Client-ID"); id != "" {
		return "client:" + id
	}
	return fetcher.RequestKey(req)
}

func (h *SearchHandler) searchError(c echo.Context, req models.SearchRequest, err error) error {
	if errors.Is(err, fetcher.ErrSuperseded) {
		metrics.SupersededSearches.Inc()
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "superseded",
			Message: "a newer search replaced this one",
			Code:    http.StatusConflict,
		})
	}

	metrics.SearchesTotal.WithLabelValues(string(req.TripType), "fetch_error").Inc()
	metrics.UpstreamFailures.WithLabelValues("flights/search").Inc()
	h.log.Error("flight search failed", "trip_type", req.TripType, "error", err)

	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "fetch_error",
		Message: "Failed to search flights: " + err.Error(),
		Code:    http.StatusBadGateway,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
