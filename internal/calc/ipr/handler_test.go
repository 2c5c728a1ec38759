package ipr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestHandlerCapacity(t *testing.T) {
	h := &Handler{}
	rec := post(t, h.Capacity, `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		State  string  `json:"state"`
		Regime string  `json:"regime"`
		J      float64 `json:"j"`
		Qb     float64 `json:"qb"`
		AOF    float64 `json:"aof"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "undersaturated", got.State)
	assert.Equal(t, "baseline", got.Regime)
	assert.InDelta(t, 1000.0/1220.0, got.J, tol)
	assert.InDelta(t, 1047.35883424408, got.AOF, tol)
}

func TestHandlerProductivity(t *testing.T) {
	h := &Handler{}
	rec := post(t, h.Productivity, `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"ef":0.8,"ef2":1.2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got ProductivityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 1.2135922330097086, got.J, tol)
}

func TestHandlerRate(t *testing.T) {
	h := &Handler{}
	rec := post(t, h.Rate, `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"pwf":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got RateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, MethodComposite, got.Method)
	assert.InDelta(t, 1925.9259259259259, got.Q, tol)

	rec = post(t, h.Rate, `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"pwf":1000,"method":"darcy"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, MethodDarcy, got.Method)
	assert.InDelta(t, 2000, got.Q, tol)
}

func TestHandlerPressure(t *testing.T) {
	h := &Handler{}
	rec := post(t, h.Pressure, `{"q_test":1000,"pwf_test":1500,"pr":2500,"pb":3000,"q":800,"method":"vogel"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got PressureResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 1739.3665283102603, got.Pwf, tol)

	rec = post(t, h.Pressure, `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"q":1600,"method":"darcy"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = post(t, h.Pressure, `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"q":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCurve(t *testing.T) {
	h := &Handler{}
	rec := post(t, h.Curve, `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"points":7,"methods":["auto","darcy"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got CurveResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Curves, 2)
	assert.Equal(t, MethodAuto, got.Curves[0].Method)
	assert.Equal(t, MethodDarcy, got.Curves[1].Method)
	assert.Len(t, got.Curves[0].Pwf, 7)
	assert.InDelta(t, 1925.9259259259259, got.Curves[0].Q[4], tol)
	assert.InDelta(t, 2000, got.Curves[1].Q[4], tol)
	require.NotNil(t, got.BubblePoint)
	assert.InDelta(t, 1500, got.BubblePoint.Q, tol)
}

func TestHandlerCurveDefaults(t *testing.T) {
	res, err := EvaluateCurves(CurveInput{WellInput: WellInput{TestPoint: saturated}})
	require.NoError(t, err)
	require.Len(t, res.Curves, 1)
	assert.Len(t, res.Curves[0].Q, DefaultCurvePoints)
	assert.Nil(t, res.BubblePoint)
}

func TestHandlerErrors(t *testing.T) {
	h := &Handler{}
	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"q_test":`, http.StatusBadRequest},
		{"unknown field", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"extra":1}`, http.StatusBadRequest},
		{"bad test point", `{"q_test":0,"pwf_test":200,"pr":1500,"pb":500}`, http.StatusBadRequest},
		{"explicit zero ef", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"ef":0}`, http.StatusBadRequest},
		{"unsupported regime", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"ef":1,"ef2":1.5}`, http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := post(t, h.Capacity, c.body)
			assert.Equal(t, c.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
