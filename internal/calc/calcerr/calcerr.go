// Package calcerr holds the error taxonomy shared by the calculation packages.
//
// Every failure returned by a calc package wraps exactly one of the sentinels
// below, so callers classify with errors.Is and never inspect messages.
package calcerr

import (
	"errors"
	"fmt"
	"math"
	"net/http"
)

var (
	// ErrInvalidInput marks inputs rejected at the boundary: non-positive
	// rates or pressures, negative bubble point, malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDomain marks inputs that are well formed but outside the range
	// where a formula is defined: zero denominators, negative square roots,
	// query points outside [0, pr] or [0, 1.0125·AOF].
	ErrDomain = errors.New("domain error")

	// ErrUnsupportedRegime marks (ef, ef2) pairs outside the enumerated
	// efficiency regimes.
	ErrUnsupportedRegime = errors.New("unsupported efficiency combination")
)

// Invalid returns an error wrapping ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return wrap(ErrInvalidInput, format, args...)
}

// Domain returns an error wrapping ErrDomain.
func Domain(format string, args ...any) error {
	return wrap(ErrDomain, format, args...)
}

// Unsupported returns an error wrapping ErrUnsupportedRegime.
func Unsupported(format string, args ...any) error {
	return wrap(ErrUnsupportedRegime, format, args...)
}

// Finite rejects NaN and infinite values of the named field as invalid input.
// The range checks that follow it cannot catch them: every comparison with
// NaN is false.
func Finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid("%s must be a finite number, got %g", name, v)
	}
	return nil
}

func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// Kind returns a short label for err, used as a metrics label.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDomain):
		return "domain"
	case errors.Is(err, ErrUnsupportedRegime):
		return "unsupported_regime"
	default:
		return "internal"
	}
}

// HTTPStatus maps err onto the status code handlers answer with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "none":
		return http.StatusOK
	case "invalid_input":
		return http.StatusBadRequest
	case "domain", "unsupported_regime":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
