package ipr

import (
	"math"

	"Nodal/internal/calc/calcerr"
)

// vogelRateCeiling is the largest q/AOF with a real Vogel inverse.
const vogelRateCeiling = 81.0 / 80.0

// PressureAtRate computes the flowing bottom-hole pressure (psi) that yields
// rate q. The caller picks the branch: MethodDarcy inverts the straight line
// and fails once the implied pressure drops below pb, MethodVogel inverts the
// Vogel curve. Both use the unadjusted efficiency.
func PressureAtRate(tp TestPoint, q float64, method Method) (float64, error) {
	if err := tp.Validate(); err != nil {
		return 0, err
	}
	if err := calcerr.Finite("q", q); err != nil {
		return 0, err
	}
	if q < 0 {
		return 0, calcerr.Domain("rate %g is negative", q)
	}

	switch method {
	case MethodDarcy:
		return darcyPressure(tp, q)
	case MethodVogel:
		return vogelPressure(tp, q)
	}
	return 0, calcerr.Invalid("pressure inverse supports darcy and vogel, got %q", method)
}

func darcyPressure(tp TestPoint, q float64) (float64, error) {
	j, err := productivityIndex(tp, Baseline)
	if err != nil {
		return 0, err
	}
	pwf := tp.Pr - q/j
	if pwf < tp.Pb {
		return 0, calcerr.Domain("rate %g implies pwf %g below pb %g, outside the darcy branch", q, pwf, tp.Pb)
	}
	return pwf, nil
}

func vogelPressure(tp TestPoint, q float64) (float64, error) {
	aof, err := absoluteOpenFlow(tp, Baseline, RegimeBaseline)
	if err != nil {
		return 0, err
	}
	if q > vogelRateCeiling*aof {
		return 0, calcerr.Domain("rate %g exceeds 1.0125·AOF (%g)", q, vogelRateCeiling*aof)
	}
	disc := 81 - 80*q/aof
	if disc < 0 {
		disc = 0
	}
	return 0.125 * tp.Pr * (-1 + math.Sqrt(disc)), nil
}
