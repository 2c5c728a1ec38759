package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Nodal/internal/calc/calcerr"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, calcerr.Unsupported("ef=1 with ef2=1.5"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"unsupported efficiency combination: ef=1 with ef2=1.5"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Error(rec, errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Calculation error"}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	var v struct {
		Pr float64 `json:"pr"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"pr": 3000}`))
	require.NoError(t, Decode(r, &v))
	assert.Equal(t, 3000.0, v.Pr)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"pressure": 3000}`))
	assert.ErrorIs(t, Decode(r, &v), calcerr.ErrInvalidInput)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.ErrorIs(t, Decode(r, &v), calcerr.ErrInvalidInput)
}
