package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	val "github.com/go-playground/validator/v10"

	"homestay/shared/constant"
	"homestay/shared/failure"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("calendardate", func(fl val.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		_, parseErr := ParseCalendarDate(value)

		return parseErr == nil
	})
	if err != nil {
		panic(err)
	}
}

// ParseCalendarDate parses a calendar date in YYYY-MM-DD form.
func ParseCalendarDate(value string) (time.Time, error) {
	parsed, err := time.Parse(constant.CalendarDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}

	return parsed, nil
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
