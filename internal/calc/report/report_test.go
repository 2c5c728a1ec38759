package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Nodal/internal/calc/calcerr"
	"Nodal/internal/calc/ipr"
)

func TestRender(t *testing.T) {
	in := Input{
		CurveInput: ipr.CurveInput{
			WellInput: ipr.WellInput{TestPoint: ipr.TestPoint{QTest: 1000, PwfTest: 2000, Pr: 3000, Pb: 1500}},
			Points:    5,
			Methods:   []string{"auto", "vogel"},
		},
		Well:  "X-12",
		Notes: "Test after workover.",
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, in, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderRejectsBadWell(t *testing.T) {
	in := Input{CurveInput: ipr.CurveInput{WellInput: ipr.WellInput{TestPoint: ipr.TestPoint{Pr: 3000}}}}
	err := Render(&bytes.Buffer{}, in, time.Now())
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestHandlerGenerate(t *testing.T) {
	h := &Handler{Now: func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }}

	body := `{"q_test":1000,"pwf_test":1500,"pr":2500,"pb":3000,"well":"X-12"}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	body = `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"ef":1,"ef2":1.5}`
	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
