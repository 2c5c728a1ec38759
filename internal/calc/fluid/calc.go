// Package fluid computes the gravity and pressure gradient of the produced
// oil-water mixture.
package fluid

import "Nodal/internal/calc/calcerr"

// FreshWaterGradient is the hydrostatic gradient of fresh water, psi/ft.
const FreshWaterGradient = 0.433

type Input struct {
	API      float64 `json:"api"`
	WaterCut float64 `json:"wc"`       // fraction, 0..1
	SGWater  float64 `json:"sg_water"` // defaults to 1.0
}

type Result struct {
	SGOil    float64 `json:"sg_oil"`
	SGMix    float64 `json:"sg_mix"`
	Gradient float64 `json:"gradient_psi_ft"`
}

// SpecificGravityOil converts API gravity to specific gravity.
func SpecificGravityOil(api float64) (float64, error) {
	if err := calcerr.Finite("api", api); err != nil {
		return 0, err
	}
	if api <= -131.5 {
		return 0, calcerr.Domain("api %g gives a non-positive specific gravity", api)
	}
	return 141.5 / (131.5 + api), nil
}

// MixtureGravity weights oil and water gravity by water cut.
func MixtureGravity(api, wc, sgWater float64) (float64, error) {
	if err := calcerr.Finite("wc", wc); err != nil {
		return 0, err
	}
	if err := calcerr.Finite("sg_water", sgWater); err != nil {
		return 0, err
	}
	if wc < 0 || wc > 1 {
		return 0, calcerr.Invalid("water cut must be within [0, 1], got %g", wc)
	}
	if sgWater <= 0 {
		return 0, calcerr.Invalid("water specific gravity must be positive, got %g", sgWater)
	}
	sgo, err := SpecificGravityOil(api)
	if err != nil {
		return 0, err
	}
	return wc*sgWater + (1-wc)*sgo, nil
}

// AverageGradient is the mixture gradient in psi/ft.
func AverageGradient(api, wc, sgWater float64) (float64, error) {
	sg, err := MixtureGravity(api, wc, sgWater)
	if err != nil {
		return 0, err
	}
	return sg * FreshWaterGradient, nil
}

func Calculate(in Input) (Result, error) {
	if in.SGWater == 0 {
		in.SGWater = 1.0
	}
	sgo, err := SpecificGravityOil(in.API)
	if err != nil {
		return Result{}, err
	}
	sgm, err := MixtureGravity(in.API, in.WaterCut, in.SGWater)
	if err != nil {
		return Result{}, err
	}
	return Result{
		SGOil:    sgo,
		SGMix:    sgm,
		Gradient: sgm * FreshWaterGradient,
	}, nil
}
