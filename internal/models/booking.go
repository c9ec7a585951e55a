package models

// PassengerForm is the wizard's first-step field set. Every field is required
// before the wizard permits the payment step.
type PassengerForm struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PassportNumber string `json:"passport_number"`
	Nationality    string `json:"nationality"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportExpiry string `json:"passport_expiry"`
}

type PaymentForm struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVV            string `json:"cvv"`
}

// BookingSubmission is the flat payload forwarded to the booking backend.
type BookingSubmission struct {
	FlightID  string        `json:"flight_id"`
	Passenger PassengerForm `json:"passenger"`
	Payment   PaymentForm   `json:"payment"`
}

type BookingConfirmation struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// HolidayBookingRequest and the application requests below are the flat form
// payloads the storefront forwards to the remote application endpoints.
type HolidayBookingRequest struct {
	PackageID  string `json:"package_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	TravelDate string `json:"travel_date" validate:"required"`
	Travelers  int    `json:"travelers" validate:"required,min=1"`
	Notes      string `json:"notes,omitempty"`
}

type VisaApplicationRequest struct {
	Country        string `json:"country" validate:"required"`
	VisaType       string `json:"visa_type" validate:"required"`
	FullName       string `json:"full_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	PassportNumber string `json:"passport_number" validate:"required"`
	TravelDate     string `json:"travel_date" validate:"required"`
}

type PackageRequest struct {
	Destination string `json:"destination" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Budget      string `json:"budget,omitempty"`
	Travelers   int    `json:"travelers" validate:"min=0"`
	Details     string `json:"details,omitempty"`
}
