package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/ratelimit"
	"github.com/dharmasatrya/travelfront/internal/timeofday"
	"github.com/dharmasatrya/travelfront/pkg/currency"
	"github.com/dharmasatrya/travelfront/pkg/logger"
)

// FetchError is a failure reported by the inventory backend, carrying its
// message when one was present in the payload.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("flight search failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("flight search failed (%d)", e.StatusCode)
}

var ErrMissingParameters = errors.New("missing required search parameters")

// SearchResult is a normalized result set together with the backend-reported
// filter bounds the storefront seeds its filter state from.
type SearchResult struct {
	Results []models.FlightResult `json:"results"`
	Bounds  models.FilterBounds   `json:"bounds"`
}

type Client struct {
	baseURL     string
	hc          *http.Client
	limiter     *ratelimit.EndpointLimiter
	log         logger.Logger
	maxRetries  int
	retryDelays []time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithRateLimiter(rl *ratelimit.EndpointLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

func WithRetry(maxRetries int, delays []time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelays = delays
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// upstream payload shapes

type upstreamResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results struct {
		Itineraries []upstreamItinerary `json:"itineraries"`
	} `json:"results"`
	Search  json.RawMessage `json:"search,omitempty"`
	Filters struct {
		PriceRange models.FilterBounds `json:"priceRange"`
	} `json:"filters"`
}

type upstreamItinerary struct {
	ID       string          `json:"id"`
	Legs     []upstreamLeg   `json:"legs"`
	Price    upstreamPrice   `json:"price"`
	Airlines []string        `json:"airline_codes"`
	Cabin    string          `json:"cabin_class,omitempty"`
	Offer    json.RawMessage `json:"offer,omitempty"`
}

type upstreamLeg struct {
	FromAirport     string `json:"from_airport"`
	FromCity        string `json:"from_city,omitempty"`
	ToAirport       string `json:"to_airport"`
	ToCity          string `json:"to_city,omitempty"`
	DepartureDate   string `json:"departure_date"`
	DepartureTime   string `json:"departure_time"`
	ArrivalDate     string `json:"arrival_date"`
	ArrivalTime     string `json:"arrival_time"`
	Stops           string `json:"stops"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type upstreamPrice struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency,omitempty"`
}

// Search posts the request to the inventory backend and normalizes the
// response. Requests without an origin or a multi-city leg list fail fast
// with ErrMissingParameters before any network call.
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, ErrMissingParameters
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, "flights/search"); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(c.retryDelays) {
				delayIdx = len(c.retryDelays) - 1
			}
			var delay time.Duration
			if delayIdx >= 0 {
				delay = c.retryDelays[delayIdx]
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := c.doSearch(ctx, body)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Backend-reported failures are authoritative; only transport
		// errors are worth retrying.
		var fe *FetchError
		if errors.As(err, &fe) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		if c.log != nil {
			c.log.Warn("flight search attempt failed", "attempt", attempt+1, "error", err)
		}
	}

	return nil, lastErr
}

func (c *Client) doSearch(ctx context.Context, body []byte) (*SearchResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/flights/search/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload upstreamResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &FetchError{StatusCode: resp.StatusCode}
		}
		return nil, decodeErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || payload.Status != "success" {
		return nil, &FetchError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	results := make([]models.FlightResult, 0, len(payload.Results.Itineraries))
	for _, it := range payload.Results.Itineraries {
		results = append(results, normalize(it))
	}

	return &SearchResult{
		Results: results,
		Bounds:  payload.Filters.PriceRange,
	}, nil
}

// normalize maps an upstream itinerary field-for-field. Stop descriptors are
// reduced to integer counts here so nothing downstream matches on free text;
// a missing currency defaults to USD. No conversion happens, formatting is
// display-only.
func normalize(it upstreamItinerary) models.FlightResult {
	segments := make([]models.Segment, len(it.Legs))
	duration := 0
	for i, leg := range it.Legs {
		segments[i] = models.Segment{
			FromAirport:   leg.FromAirport,
			FromCity:      leg.FromCity,
			ToAirport:     leg.ToAirport,
			ToCity:        leg.ToCity,
			DepartureDate: leg.DepartureDate,
			DepartureTime: leg.DepartureTime,
			ArrivalDate:   leg.ArrivalDate,
			ArrivalTime:   leg.ArrivalTime,
			Stops:         timeofday.ParseStops(leg.Stops),
		}
		duration += leg.DurationMinutes
	}

	code := it.Price.Currency
	if code == "" {
		code = "USD"
	}

	return models.FlightResult{
		ID:       it.ID,
		Segments: segments,
		Price: models.Price{
			Amount:    it.Price.Total,
			Currency:  code,
			Formatted: currency.Format(it.Price.Total, code),
		},
		Airlines:        it.Airlines,
		DurationMinutes: duration,
		CabinClass:      it.Cabin,
		Offer:           it.Offer,
	}
}
