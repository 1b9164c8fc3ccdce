package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"lumiere/pkg/logger"
	"lumiere/pkg/model"
	"lumiere/pkg/quota"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ClientValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClientValidator(log *logger.Logger) *ClientValidator {
	v := validator.New()

	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		log.Fatal("Failed to register 'isodate' validator",
			"error", err,
		)
	}

	log.Info("Client validator initialized successfully")

	return &ClientValidator{
		validate: v,
		logger:   log,
	}
}

// validateISODate accepts calendar dates in YYYY-MM-DD form. Zero-padded
// strings are required: lexicographic ordering on these values must match
// chronological ordering. The regex alone would admit impossible days
// like 2025-02-30, and time.Parse alone would admit unpadded strings,
// so both run.
func validateISODate(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	if !isoDateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(quota.DayLayout, value)
	return err == nil
}

func (v *ClientValidator) Validate(client *model.Client) error {
	if err := v.validate.Struct(client); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := validateReservationRanges(client.Reservations); err != nil {
		return err
	}

	if err := validateReservationIDsUnique(client.Reservations); err != nil {
		return err
	}

	return nil
}

func (v *ClientValidator) ValidateUpdate(update *model.ClientUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.Reservations != nil {
		if err := validateReservationRanges(*update.Reservations); err != nil {
			return err
		}
		if err := validateReservationIDsUnique(*update.Reservations); err != nil {
			return err
		}
	}

	return nil
}

func (v *ClientValidator) ValidateReservation(reservation *model.Reservation) error {
	if err := v.validate.Struct(reservation); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return validateReservationRanges([]model.Reservation{*reservation})
}

func (v *ClientValidator) ValidateReservations(reservations []model.Reservation) error {
	for i := range reservations {
		if err := v.ValidateReservation(&reservations[i]); err != nil {
			return err
		}
	}
	return validateReservationIDsUnique(reservations)
}

// validateReservationRanges rejects inverted date ranges. Plain string
// comparison is enough here because both bounds have already passed the
// isodate check, and zero-padded ISO dates sort lexicographically in
// chronological order.
func validateReservationRanges(reservations []model.Reservation) error {
	for _, r := range reservations {
		if r.End < r.Start {
			return ValidationErrors{
				ValidationError{
					Field:   "End",
					Message: fmt.Sprintf("End must not be before Start (got %s > %s)", r.Start, r.End),
				},
			}
		}
	}
	return nil
}

func validateReservationIDsUnique(reservations []model.Reservation) error {
	seen := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		if seen[r.ID] {
			return ValidationErrors{
				ValidationError{
					Field:   "Reservations",
					Message: fmt.Sprintf("duplicate reservation ID: %s", r.ID),
				},
			}
		}
		seen[r.ID] = true
	}
	return nil
}

func (v *ClientValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +33612345678)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "isodate":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
