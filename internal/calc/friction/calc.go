// Package friction implements the Hazen-Williams form of the Darcy-Weisbach
// friction factor used for tubing losses.
package friction

import (
	"math"

	"Nodal/internal/calc/calcerr"
)

// DefaultRoughness is the Hazen-Williams C of new steel pipe.
const DefaultRoughness = 120.0

type Input struct {
	Rate          float64 `json:"q_bpd"`
	InnerDiameter float64 `json:"id_in"`
	Roughness     float64 `json:"c"`
}

type Result struct {
	Factor    float64 `json:"f"`
	Roughness float64 `json:"c"`
}

// Factor returns the friction loss factor for rate q (bpd) through pipe of
// inner diameter id (in) with roughness coefficient c.
func Factor(q, id, c float64) (float64, error) {
	for _, v := range []float64{q, id, c} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, calcerr.Invalid("rate, diameter and roughness must be finite, got %g", v)
		}
	}
	if q < 0 {
		return 0, calcerr.Invalid("rate must not be negative, got %g", q)
	}
	if id <= 0 {
		return 0, calcerr.Invalid("inner diameter must be positive, got %g", id)
	}
	if c <= 0 {
		return 0, calcerr.Invalid("roughness coefficient must be positive, got %g", c)
	}
	return 2.083 * (math.Pow(100*q/(34.3*c), 1.85) * math.Pow(1/id, 4.8655)) / 1000, nil
}

func Calculate(in Input) (Result, error) {
	if in.Roughness == 0 {
		in.Roughness = DefaultRoughness
	}
	f, err := Factor(in.Rate, in.InnerDiameter, in.Roughness)
	if err != nil {
		return Result{}, err
	}
	return Result{Factor: f, Roughness: in.Roughness}, nil
}
