// Package ipr implements the inflow-performance correlations of an oil well:
// productivity index, rate at bubble point, absolute open flow, oil rate at a
// flowing pressure and flowing pressure at a rate.
//
// Every function is a pure computation over a TestPoint and its Efficiency.
package ipr

import (
	"Nodal/internal/calc/calcerr"
)

// TestPoint is the reference well test that fully determines the inflow model.
type TestPoint struct {
	QTest   float64 `json:"q_test"`   // bpd
	PwfTest float64 `json:"pwf_test"` // psi
	Pr      float64 `json:"pr"`       // psi
	Pb      float64 `json:"pb"`       // psi
}

// Validate rejects test points that no correlation accepts.
func (tp TestPoint) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"q_test", tp.QTest}, {"pwf_test", tp.PwfTest}, {"pr", tp.Pr}, {"pb", tp.Pb}} {
		if err := calcerr.Finite(f.name, f.v); err != nil {
			return err
		}
	}
	if tp.QTest <= 0 {
		return calcerr.Invalid("q_test must be positive, got %g", tp.QTest)
	}
	if tp.Pr <= 0 {
		return calcerr.Invalid("pr must be positive, got %g", tp.Pr)
	}
	if tp.PwfTest < 0 {
		return calcerr.Invalid("pwf_test must not be negative, got %g", tp.PwfTest)
	}
	if tp.Pb < 0 {
		return calcerr.Invalid("pb must not be negative, got %g", tp.Pb)
	}
	if tp.PwfTest > tp.Pr {
		return calcerr.Invalid("pwf_test %g exceeds pr %g", tp.PwfTest, tp.Pr)
	}
	return nil
}

// State reports whether the reservoir is saturated or undersaturated.
func (tp TestPoint) State() ReservoirState {
	if tp.Pr > tp.Pb {
		return Undersaturated
	}
	return Saturated
}

// ReservoirState is derived from pr and pb.
type ReservoirState string

const (
	Saturated      ReservoirState = "saturated"      // pr <= pb
	Undersaturated ReservoirState = "undersaturated" // pr > pb
)

// Efficiency carries the flow efficiency of the tested completion (EF) and,
// optionally, of the state the rates are projected to (EF2).
// EF must be positive; request types default an absent ef to 1.
type Efficiency struct {
	EF  float64  `json:"ef"`
	EF2 *float64 `json:"ef2,omitempty"`
}

// Baseline is the unadjusted efficiency (ef = 1, no ef2).
var Baseline = Efficiency{EF: 1}

// WithTransfer returns an Efficiency projecting from ef to ef2.
func WithTransfer(ef, ef2 float64) Efficiency {
	return Efficiency{EF: ef, EF2: &ef2}
}

// second returns ef2, or 1 when it is absent.
func (e Efficiency) second() float64 {
	if e.EF2 == nil {
		return 1
	}
	return *e.EF2
}

func (e Efficiency) normalized() (Efficiency, error) {
	if err := calcerr.Finite("ef", e.EF); err != nil {
		return e, err
	}
	if e.EF <= 0 {
		return e, calcerr.Invalid("ef must be positive, got %g", e.EF)
	}
	if e.EF2 != nil {
		if err := calcerr.Finite("ef2", *e.EF2); err != nil {
			return e, err
		}
		if *e.EF2 <= 0 {
			return e, calcerr.Invalid("ef2 must be positive, got %g", *e.EF2)
		}
	}
	return e, nil
}

// EfficiencyRegime enumerates the supported (ef, ef2) combinations.
type EfficiencyRegime int

const (
	RegimeBaseline     EfficiencyRegime = iota + 1 // ef = 1, ef2 absent
	RegimeStandingLow                              // ef < 1, ef2 absent
	RegimeStandingHigh                             // ef > 1, ef2 absent
	RegimeTransferUp                               // ef < 1, ef2 >= 1
	RegimeTransferDown                             // ef > 1, ef2 <= 1
)

func (r EfficiencyRegime) String() string {
	switch r {
	case RegimeBaseline:
		return "baseline"
	case RegimeStandingLow:
		return "standing_low"
	case RegimeStandingHigh:
		return "standing_high"
	case RegimeTransferUp:
		return "transfer_up"
	case RegimeTransferDown:
		return "transfer_down"
	}
	return "unknown"
}

// MarshalText lets the regime appear by name in JSON results.
func (r EfficiencyRegime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Classify maps an Efficiency onto its regime. Pairs outside the five
// regimes (ef = 1 with ef2, ef < 1 with ef2 < 1, ef > 1 with ef2 > 1)
// are rejected with calcerr.ErrUnsupportedRegime.
func Classify(e Efficiency) (EfficiencyRegime, error) {
	e, err := e.normalized()
	if err != nil {
		return 0, err
	}
	ef := e.EF
	if e.EF2 == nil {
		switch {
		case ef == 1:
			return RegimeBaseline, nil
		case ef < 1:
			return RegimeStandingLow, nil
		default:
			return RegimeStandingHigh, nil
		}
	}
	ef2 := *e.EF2
	switch {
	case ef < 1 && ef2 >= 1:
		return RegimeTransferUp, nil
	case ef > 1 && ef2 <= 1:
		return RegimeTransferDown, nil
	}
	return 0, calcerr.Unsupported("ef=%g with ef2=%g", ef, ef2)
}

// Method names an inflow correlation.
type Method string

const (
	MethodAuto      Method = "auto"
	MethodDarcy     Method = "darcy"
	MethodVogel     Method = "vogel"
	MethodStanding  Method = "standing"
	MethodComposite Method = "composite"
)

// ParseMethod accepts the request spellings of a method; empty means auto.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodAuto:
		return MethodAuto, nil
	case MethodDarcy, MethodVogel, MethodStanding, MethodComposite:
		return Method(s), nil
	}
	return "", calcerr.Invalid("unknown method %q", s)
}
