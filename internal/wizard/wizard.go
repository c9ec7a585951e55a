// Package wizard drives the booking flow: passenger details, payment,
// confirmation. Navigation is forward-only and gated on validity.
package wizard

import (
	"context"
	"regexp"

	"github.com/dharmasatrya/travelfront/internal/models"
)

type Step string

const (
	StepPassengerDetails Step = "passenger_details"
	StepPayment          Step = "payment"
	StepConfirmation     Step = "confirmation"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Submitter forwards a completed booking to the backend.
type Submitter interface {
	Submit(ctx context.Context, b models.BookingSubmission) (*models.BookingConfirmation, error)
}

type Controller struct {
	submitter Submitter
	flightID  string

	step        Step
	passenger   models.PassengerForm
	fieldErrors map[string]string
	submitError string
}

func NewController(flightID string, submitter Submitter) *Controller {
	return &Controller{
		submitter:   submitter,
		flightID:    flightID,
		step:        StepPassengerDetails,
		fieldErrors: map[string]string{},
	}
}

func (c *Controller) Current() Step {
	return c.step
}

// FieldErrors is the per-field error map from the last failed advance
// attempt. Empty when the last attempt succeeded.
func (c *Controller) FieldErrors() map[string]string {
	return c.fieldErrors
}

func (c *Controller) SubmitError() string {
	return c.submitError
}

// SubmitDetails attempts the transition to the payment step. On missing or
// malformed fields it fills the error map and stays on the current step; it
// never errors out.
func (c *Controller) SubmitDetails(form models.PassengerForm) bool {
	if c.step != StepPassengerDetails {
		return false
	}

	errs := ValidatePassenger(form)
	c.fieldErrors = errs
	if len(errs) > 0 {
		return false
	}

	c.passenger = form
	c.step = StepPayment
	return true
}

// ValidatePassenger checks the first step's required fields and returns a
// per-field error map, empty when the form is complete.
func ValidatePassenger(form models.PassengerForm) map[string]string {
	errs := map[string]string{}

	required := []struct {
		field, value string
	}{
		{"first_name", form.FirstName},
		{"last_name", form.LastName},
		{"email", form.Email},
		{"phone", form.Phone},
		{"passport_number", form.PassportNumber},
		{"nationality", form.Nationality},
		{"date_of_birth", form.DateOfBirth},
		{"passport_expiry", form.PassportExpiry},
	}
	for _, r := range required {
		if r.value == "" {
			errs[r.field] = "required"
		}
	}

	if form.Email != "" && !emailPattern.MatchString(form.Email) {
		errs["email"] = "invalid email address"
	}

	return errs
}

// ConfirmPayment runs the booking submission. Success moves to confirmation
// and destroys the accumulated form state; failure keeps the wizard on the
// payment step with a user-visible message. No automatic retry.
func (c *Controller) ConfirmPayment(ctx context.Context, payment models.PaymentForm) (*models.BookingConfirmation, error) {
	if c.step != StepPayment {
		return nil, nil
	}

	submission := models.BookingSubmission{
		FlightID:  c.flightID,
		Passenger: c.passenger,
		Payment:   payment,
	}

	confirmation, err := c.submitter.Submit(ctx, submission)
	if err != nil {
		c.submitError = err.Error()
		return nil, err
	}

	c.step = StepConfirmation
	c.submitError = ""
	c.passenger = models.PassengerForm{}
	return confirmation, nil
}
