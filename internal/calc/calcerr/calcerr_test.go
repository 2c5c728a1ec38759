package calcerr

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, Invalid("q_test must be positive, got %g", -1.0), ErrInvalidInput)
	assert.ErrorIs(t, Domain("pr equals pwf_test"), ErrDomain)
	assert.ErrorIs(t, Unsupported("ef=%g ef2=%g", 1.0, 1.5), ErrUnsupportedRegime)

	err := Domain("sqrt of %g", -3.0)
	assert.Equal(t, "domain error: sqrt of -3", err.Error())
}

func TestFinite(t *testing.T) {
	assert.NoError(t, Finite("pwf", 0))
	assert.NoError(t, Finite("pwf", -12.5))
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Finite("pwf", v)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "pwf must be a finite number")
	}
}

func TestKindAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   string
		status int
	}{
		{nil, "none", http.StatusOK},
		{Invalid("x"), "invalid_input", http.StatusBadRequest},
		{fmt.Errorf("row 3: %w", Domain("x")), "domain", http.StatusUnprocessableEntity},
		{Unsupported("x"), "unsupported_regime", http.StatusUnprocessableEntity},
		{errors.New("boom"), "internal", http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, Kind(c.err))
		assert.Equal(t, c.status, HTTPStatus(c.err))
	}
}
