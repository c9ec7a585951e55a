package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelfront/internal/booking"
	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/pkg/logger"
)

func newBookingEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func postJSON(t *testing.T, e *echo.Echo, handlerFunc echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handlerFunc(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

const validBookingBody = `{
	"flight_id": "fl-1",
	"passenger": {
		"first_name": "Ayesha",
		"last_name": "Rahman",
		"email": "ayesha@example.com",
		"phone": "+8801700000000",
		"passport_number": "BD1234567",
		"nationality": "Bangladeshi",
		"date_of_birth": "1990-04-12",
		"passport_expiry": "2030-04-12"
	},
	"payment": {"cardholder_name": "Ayesha Rahman"}
}`

func TestCreateBooking_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"reference": "TRV-7", "status": "confirmed"}`)
	}))
	defer upstream.Close()

	h := NewBookingHandler(booking.NewClient(upstream.URL, "t"), logger.NewLogger())
	rec := postJSON(t, newBookingEcho(), h.CreateBooking, validBookingBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var confirmation models.BookingConfirmation
	if err := json.Unmarshal(rec.Body.Bytes(), &confirmation); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if confirmation.Reference != "TRV-7" {
		t.Errorf("reference = %q, want TRV-7", confirmation.Reference)
	}
}

func TestCreateBooking_IncompletePassengerBlocked(t *testing.T) {
	upstreamCalled := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	}))
	defer upstream.Close()

	body := strings.Replace(validBookingBody, `"email": "ayesha@example.com",`, `"email": "",`, 1)

	h := NewBookingHandler(booking.NewClient(upstream.URL, "t"), logger.NewLogger())
	rec := postJSON(t, newBookingEcho(), h.CreateBooking, body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}
	if upstreamCalled {
		t.Error("upstream must not be called when passenger details fail validation")
	}

	var resp models.FieldErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Fields) != 1 {
		t.Fatalf("fields = %v, want exactly the email key", resp.Fields)
	}
	if resp.Fields["email"] != "required" {
		t.Errorf("email error = %q, want required", resp.Fields["email"])
	}
}

func TestCreateBooking_UpstreamRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail": "fare no longer available"}`)
	}))
	defer upstream.Close()

	h := NewBookingHandler(booking.NewClient(upstream.URL, "t"), logger.NewLogger())
	rec := postJSON(t, newBookingEcho(), h.CreateBooking, validBookingBody)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body)
	}
}

func TestCreateVisaApplication_ValidatorFieldMap(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called on invalid input")
	}))
	defer upstream.Close()

	h := NewBookingHandler(booking.NewClient(upstream.URL, "t"), logger.NewLogger())
	rec := postJSON(t, newBookingEcho(), h.CreateVisaApplication, `{"country": "AE", "email": "not-an-email"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}

	var resp models.FieldErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Fields["email"] != "invalid email address" {
		t.Errorf("email error = %q", resp.Fields["email"])
	}
	if resp.Fields["visa_type"] != "required" {
		t.Errorf("visa_type error = %q, want required", resp.Fields["visa_type"])
	}
	if _, ok := resp.Fields["country"]; ok {
		t.Error("country was provided, should not be in the error map")
	}
}

func TestCreateHolidayBooking_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/holidays/bookings/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"reference": "HOL-1", "status": "received"}`)
	}))
	defer upstream.Close()

	h := NewBookingHandler(booking.NewClient(upstream.URL, "t"), logger.NewLogger())
	rec := postJSON(t, newBookingEcho(), h.CreateHolidayBooking, `{
		"package_id": "pkg-1",
		"full_name": "Ayesha Rahman",
		"email": "ayesha@example.com",
		"phone": "+8801700000000",
		"travel_date": "2024-09-01",
		"travelers": 2
	}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
}
