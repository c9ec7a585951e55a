package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelfront/internal/models"
)

// RequestValidator wires go-playground/validator into Echo. Field names in
// error maps follow the json tags so the storefront can key inline messages
// directly off them.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// validationFailed converts validator errors into the same field-keyed map
// the wizard produces, so the storefront renders both the same way.
func validationFailed(c echo.Context, err error) error {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = tagMessage(fe)
		}
	}

	return c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{
		Error:  "validation_error",
		Fields: fields,
	})
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid email address"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "invalid value"
	}
}
