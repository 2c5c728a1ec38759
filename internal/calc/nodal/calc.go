// Package nodal builds the system curve of a producing well: for each rate
// the pressure the reservoir delivers at the sandface against the pressure
// the tubing needs to lift the fluid to surface.
package nodal

import (
	"fmt"

	"Nodal/internal/calc/calcerr"
	"Nodal/internal/calc/fluid"
	"Nodal/internal/calc/friction"
	"Nodal/internal/calc/ipr"
)

type Input struct {
	ipr.TestPoint
	Rates  []float64 `json:"rates"`  // bpd, in the order they are evaluated
	Method string    `json:"method"` // darcy or vogel; empty picks by reservoir state

	THP      float64 `json:"thp"` // psi
	API      float64 `json:"api"`
	WaterCut float64 `json:"wc"`
	SGWater  float64 `json:"sg_water"`

	InnerDiameter float64 `json:"id_in"`
	Roughness     float64 `json:"c"`
	TVD           float64 `json:"tvd_ft"`
	MD            float64 `json:"md_ft"`
	FluidLevel    float64 `json:"fluid_level_ft"`
}

// Row is one rate of the system curve. All pressures are psi.
type Row struct {
	Q              float64 `json:"q"`
	Pwf            float64 `json:"pwf"`
	THP            float64 `json:"thp"`
	PGravity       float64 `json:"p_gravity"`
	FrictionFactor float64 `json:"friction_factor"`
	FrictionHead   float64 `json:"friction_head_ft"`
	PFriction      float64 `json:"p_friction"`
	Po             float64 `json:"po"`
	Psys           float64 `json:"psys"`
}

// OperatingPoint is where the outflow requirement meets the inflow.
type OperatingPoint struct {
	Q   float64 `json:"q"`
	Pwf float64 `json:"pwf"`
}

type Result struct {
	Method    ipr.Method      `json:"method"`
	Gradient  float64         `json:"gradient_psi_ft"`
	Rows      []Row           `json:"rows"`
	Operating *OperatingPoint `json:"operating_point,omitempty"`
}

// InflowMethod resolves the IPR inverse used for Pwf: the requested one, or
// darcy for undersaturated and vogel for saturated reservoirs.
func InflowMethod(tp ipr.TestPoint, requested string) (ipr.Method, error) {
	m, err := ipr.ParseMethod(requested)
	if err != nil {
		return "", err
	}
	if m != ipr.MethodAuto {
		return m, nil
	}
	if tp.State() == ipr.Undersaturated {
		return ipr.MethodDarcy, nil
	}
	return ipr.MethodVogel, nil
}

func (in Input) validate() error {
	if len(in.Rates) == 0 {
		return calcerr.Invalid("rates must not be empty")
	}
	for name, v := range map[string]float64{"thp": in.THP, "tvd_ft": in.TVD, "md_ft": in.MD, "fluid_level_ft": in.FluidLevel} {
		if err := calcerr.Finite(name, v); err != nil {
			return err
		}
	}
	if in.THP < 0 {
		return calcerr.Invalid("thp must not be negative, got %g", in.THP)
	}
	if in.TVD < 0 || in.MD < 0 {
		return calcerr.Invalid("depths must not be negative, got tvd %g md %g", in.TVD, in.MD)
	}
	if in.FluidLevel < 0 || in.FluidLevel > in.TVD {
		return calcerr.Invalid("fluid level %g outside [0, tvd %g]", in.FluidLevel, in.TVD)
	}
	return nil
}

// Calculate evaluates one row per rate. A rate the inflow model cannot
// deliver aborts the call with its index.
func Calculate(in Input) (Result, error) {
	if in.SGWater == 0 {
		in.SGWater = 1.0
	}
	if in.Roughness == 0 {
		in.Roughness = friction.DefaultRoughness
	}
	if err := in.validate(); err != nil {
		return Result{}, err
	}
	method, err := InflowMethod(in.TestPoint, in.Method)
	if err != nil {
		return Result{}, err
	}
	g, err := fluid.AverageGradient(in.API, in.WaterCut, in.SGWater)
	if err != nil {
		return Result{}, err
	}

	pGravity := g * (in.TVD - in.FluidLevel)
	rows := make([]Row, len(in.Rates))
	for i, q := range in.Rates {
		pwf, err := ipr.PressureAtRate(in.TestPoint, q, method)
		if err != nil {
			return Result{}, fmt.Errorf("rates[%d]=%g: %w", i, q, err)
		}
		f, err := friction.Factor(q, in.InnerDiameter, in.Roughness)
		if err != nil {
			return Result{}, fmt.Errorf("rates[%d]=%g: %w", i, q, err)
		}
		head := f * in.MD
		pf := g * head
		po := in.THP + pGravity + pf
		rows[i] = Row{
			Q:              q,
			Pwf:            pwf,
			THP:            in.THP,
			PGravity:       pGravity,
			FrictionFactor: f,
			FrictionHead:   head,
			PFriction:      pf,
			Po:             po,
			Psys:           po - pwf,
		}
	}

	return Result{
		Method:    method,
		Gradient:  g,
		Rows:      rows,
		Operating: FindOperatingPoint(rows),
	}, nil
}

// FindOperatingPoint returns the first crossing of Psys through zero, with q
// and Pwf interpolated linearly inside the bracketing rows. It returns nil
// when Psys never changes sign.
func FindOperatingPoint(rows []Row) *OperatingPoint {
	for i, r := range rows {
		if r.Psys == 0 {
			return &OperatingPoint{Q: r.Q, Pwf: r.Pwf}
		}
		if i == 0 {
			continue
		}
		prev := rows[i-1]
		if (prev.Psys < 0) == (r.Psys < 0) {
			continue
		}
		t := prev.Psys / (prev.Psys - r.Psys)
		return &OperatingPoint{
			Q:   prev.Q + t*(r.Q-prev.Q),
			Pwf: prev.Pwf + t*(r.Pwf-prev.Pwf),
		}
	}
	return nil
}
