package ipr

import (
	"math"

	"Nodal/internal/calc/calcerr"
)

// FlowRegime selects the radial-flow boundary condition of the Darcy index.
type FlowRegime string

const (
	PseudoSteady FlowRegime = "pseudo_steady"
	Steady       FlowRegime = "steady"
)

// ReservoirProperties are the rock and fluid data of a radial drainage area,
// in field units: md, ft, rb/STB, cp and ft.
type ReservoirProperties struct {
	Ko   float64 `json:"ko"`
	H    float64 `json:"h"`
	Bo   float64 `json:"bo"`
	Uo   float64 `json:"uo"`
	Re   float64 `json:"re"`
	Rw   float64 `json:"rw"`
	Skin float64 `json:"s"`
}

func (p ReservoirProperties) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"ko", p.Ko}, {"h", p.H}, {"bo", p.Bo}, {"uo", p.Uo}, {"re", p.Re}, {"rw", p.Rw}, {"s", p.Skin}} {
		if err := calcerr.Finite(f.name, f.v); err != nil {
			return err
		}
		if f.name != "s" && f.v <= 0 {
			return calcerr.Invalid("%s must be positive, got %g", f.name, f.v)
		}
	}
	if p.Re <= p.Rw {
		return calcerr.Invalid("re %g must exceed rw %g", p.Re, p.Rw)
	}
	return nil
}

// DarcyProductivityIndex computes J (bpd/psi) from reservoir properties:
//
//	pseudo-steady  ko·h / (141.2·bo·uo·(ln(re/rw) − 0.75 + s))
//	steady         ko·h / (141.2·bo·uo·(ln(re/rw) + s))
//
// A skin negative enough to flip the log term is a domain error.
func DarcyProductivityIndex(p ReservoirProperties, regime FlowRegime) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	term := math.Log(p.Re/p.Rw) + p.Skin
	switch regime {
	case PseudoSteady:
		term -= 0.75
	case Steady:
	default:
		return 0, calcerr.Invalid("unknown flow regime %q", regime)
	}
	if term <= 0 {
		return 0, calcerr.Domain("ln(re/rw) term %g with skin %g is not positive", term, p.Skin)
	}
	return p.Ko * p.H / (141.2 * p.Bo * p.Uo * term), nil
}

// DarcyInput is the request for the properties-based index. An empty
// flow_regime means pseudo-steady.
type DarcyInput struct {
	ReservoirProperties
	Regime FlowRegime `json:"flow_regime"`
}

func EvaluateDarcyProductivity(in DarcyInput) (ProductivityResult, error) {
	regime := in.Regime
	if regime == "" {
		regime = PseudoSteady
	}
	j, err := DarcyProductivityIndex(in.ReservoirProperties, regime)
	if err != nil {
		return ProductivityResult{}, err
	}
	return ProductivityResult{J: j}, nil
}
