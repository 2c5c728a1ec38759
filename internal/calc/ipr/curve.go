package ipr

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"Nodal/internal/calc/calcerr"
)

// MinGridPoints is the smallest grid PressureGrid and RateGrid build.
const MinGridPoints = 2

// Point is one (rate, pressure) pair on an inflow curve.
type Point struct {
	Q   float64 `json:"q"`
	Pwf float64 `json:"pwf"`
}

// Curve is a rate curve sampled at caller-supplied pressures.
type Curve struct {
	Method Method    `json:"method"`
	Pwf    []float64 `json:"pwf"`
	Q      []float64 `json:"q"`
}

// RateCurve evaluates RateAtPressure at every pressure in order. The result
// has the same length; the first failing element aborts the call.
func RateCurve(tp TestPoint, eff Efficiency, pwfs []float64, method Method) ([]float64, error) {
	out := make([]float64, len(pwfs))
	for i, pwf := range pwfs {
		q, err := RateAtPressure(tp, eff, pwf, method)
		if err != nil {
			return nil, fmt.Errorf("pwf[%d]=%g: %w", i, pwf, err)
		}
		out[i] = q
	}
	return out, nil
}

// PressureCurve evaluates PressureAtRate at every rate in order.
func PressureCurve(tp TestPoint, qs []float64, method Method) ([]float64, error) {
	out := make([]float64, len(qs))
	for i, q := range qs {
		pwf, err := PressureAtRate(tp, q, method)
		if err != nil {
			return nil, fmt.Errorf("q[%d]=%g: %w", i, q, err)
		}
		out[i] = pwf
	}
	return out, nil
}

// BuildCurve samples one method and keeps the pressures next to the rates.
func BuildCurve(tp TestPoint, eff Efficiency, pwfs []float64, method Method) (Curve, error) {
	if method == "" {
		method = MethodAuto
	}
	qs, err := RateCurve(tp, eff, pwfs, method)
	if err != nil {
		return Curve{}, err
	}
	return Curve{
		Method: method,
		Pwf:    append([]float64(nil), pwfs...),
		Q:      qs,
	}, nil
}

// BubblePoint returns the (Qb, pb) marker of the curve, or nil when the
// reservoir is saturated.
func BubblePoint(tp TestPoint, eff Efficiency) (*Point, error) {
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	if tp.State() == Saturated {
		return nil, nil
	}
	qb, err := FlowAtBubblePoint(tp, eff)
	if err != nil {
		return nil, err
	}
	return &Point{Q: qb, Pwf: tp.Pb}, nil
}

// PressureGrid returns n pressures from pr down to zero, both ends included.
func PressureGrid(pr float64, n int) ([]float64, error) {
	if pr <= 0 {
		return nil, calcerr.Invalid("pr must be positive, got %g", pr)
	}
	if n < MinGridPoints {
		return nil, calcerr.Invalid("grid needs at least %d points, got %d", MinGridPoints, n)
	}
	return floats.Span(make([]float64, n), pr, 0), nil
}

// RateGrid returns n rates from zero up to qmax, both ends included.
func RateGrid(qmax float64, n int) ([]float64, error) {
	if err := calcerr.Finite("rate ceiling", qmax); err != nil {
		return nil, err
	}
	if qmax <= 0 {
		return nil, calcerr.Invalid("rate ceiling must be positive, got %g", qmax)
	}
	if n < MinGridPoints {
		return nil, calcerr.Invalid("grid needs at least %d points, got %d", MinGridPoints, n)
	}
	return floats.Span(make([]float64, n), 0, qmax), nil
}
