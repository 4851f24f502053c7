package inquire

import (
	"fmt"
	"time"
)

// Validation is the outcome of checking a candidate answer.
//
// A zero Validation is invalid with an empty message; use Valid and Invalid
// to construct outcomes.
type Validation struct {
	Valid   bool
	Message string // User-facing message, set when Valid is false
}

// Valid returns a passing validation outcome.
func Valid() Validation {
	return Validation{Valid: true}
}

// Invalid returns a failing validation outcome with a user-facing message.
// The message is displayed as an inline error and the prompt session
// continues.
func Invalid(message string) Validation {
	return Validation{Message: message}
}

// Validator checks a candidate answer of type T.
//
// Returning an Invalid outcome is recoverable: the message is shown to the
// user and the prompt keeps running. Returning a non-nil error is not: it
// aborts the whole prompt session immediately and propagates to the caller.
//
// Validators are plain function values so they stay composable and easy to
// test:
//
//	noSundays := func(d time.Time) (inquire.Validation, error) {
//		if d.Weekday() == time.Sunday {
//			return inquire.Invalid("sundays are not allowed"), nil
//		}
//		return inquire.Valid(), nil
//	}
type Validator[T any] func(value T) (Validation, error)

// DateValidator checks a candidate calendar date.
type DateValidator = Validator[time.Time]

// runValidators runs the chain in caller-specified order. The first Invalid
// outcome short-circuits the chain; later validators are not run. A validator
// error aborts the chain with the original error preserved.
func runValidators[T any](value T, validators []Validator[T]) (Validation, error) {
	for _, validate := range validators {
		result, err := validate(value)
		if err != nil {
			return Validation{}, fmt.Errorf("validator failed: %w", err)
		}
		if !result.Valid {
			return result, nil
		}
	}
	return Valid(), nil
}
