// Package booking forwards completed forms to the remote booking and
// application endpoints.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/ratelimit"
)

// SubmissionError is a rejection from a booking endpoint. Field-keyed errors
// from the backend are passed through verbatim so the storefront can render
// them inline.
type SubmissionError struct {
	StatusCode int
	Detail     string
	Fields     map[string]string
}

func (e *SubmissionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("booking rejected (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("booking rejected (%d)", e.StatusCode)
}

type Client struct {
	baseURL string
	token   string
	hc      *http.Client
	limiter *ratelimit.EndpointLimiter
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithRateLimiter(rl *ratelimit.EndpointLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit implements wizard.Submitter.
func (c *Client) Submit(ctx context.Context, b models.BookingSubmission) (*models.BookingConfirmation, error) {
	var confirmation models.BookingConfirmation
	if err := c.post(ctx, "/bookings/", b, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) SubmitHolidayBooking(ctx context.Context, r models.HolidayBookingRequest) (*models.BookingConfirmation, error) {
	var confirmation models.BookingConfirmation
	if err := c.post(ctx, "/holidays/bookings/", r, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) SubmitVisaApplication(ctx context.Context, r models.VisaApplicationRequest) (*models.BookingConfirmation, error) {
	var confirmation models.BookingConfirmation
	if err := c.post(ctx, "/visas/applications/", r, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) SubmitPackageRequest(ctx context.Context, r models.PackageRequest) (*models.BookingConfirmation, error) {
	var confirmation models.BookingConfirmation
	if err := c.post(ctx, "/packages/requests/", r, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, path); err != nil {
			return err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeSubmissionError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeSubmissionError reads either {"detail": "..."} or a field-keyed
// error map from a failure payload.
func decodeSubmissionError(resp *http.Response) error {
	subErr := &SubmissionError{StatusCode: resp.StatusCode}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return subErr
	}

	if detail, ok := raw["detail"]; ok {
		var s string
		if json.Unmarshal(detail, &s) == nil {
			subErr.Detail = s
			return subErr
		}
	}

	fields := make(map[string]string, len(raw))
	for field, msg := range raw {
		var s string
		if json.Unmarshal(msg, &s) == nil {
			fields[field] = s
			continue
		}
		var list []string
		if json.Unmarshal(msg, &list) == nil && len(list) > 0 {
			fields[field] = list[0]
		}
	}
	if len(fields) > 0 {
		subErr.Fields = fields
	}
	return subErr
}
