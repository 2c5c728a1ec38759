package ipr

import "Nodal/internal/calc/calcerr"

// FlowAtBubblePoint computes Qb = J·(pr − pb), the rate at the kink between
// the straight-line and curved segments. Saturated reservoirs (pr < pb)
// have no such point and are rejected.
func FlowAtBubblePoint(tp TestPoint, eff Efficiency) (float64, error) {
	if err := tp.Validate(); err != nil {
		return 0, err
	}
	e, err := eff.normalized()
	if err != nil {
		return 0, err
	}
	if tp.Pr < tp.Pb {
		return 0, calcerr.Domain("pr %g is below pb %g, no bubble-point rate", tp.Pr, tp.Pb)
	}
	return flowAtBubblePoint(tp, e)
}

func flowAtBubblePoint(tp TestPoint, e Efficiency) (float64, error) {
	j, err := productivityIndex(tp, e)
	if err != nil {
		return 0, err
	}
	return j * (tp.Pr - tp.Pb), nil
}

// AbsoluteOpenFlow computes the rate at pwf = 0.
//
// The formula is selected by the efficiency regime and then by the
// reservoir branch: undersaturated with the test above pb (J·pr),
// undersaturated with the test below pb (Qb plus a scaled Vogel segment),
// or saturated (Vogel or Standing in pwf_test/pr).
func AbsoluteOpenFlow(tp TestPoint, eff Efficiency) (float64, error) {
	if err := tp.Validate(); err != nil {
		return 0, err
	}
	regime, err := Classify(eff)
	if err != nil {
		return 0, err
	}
	e, _ := eff.normalized()
	return absoluteOpenFlow(tp, e, regime)
}

func absoluteOpenFlow(tp TestPoint, e Efficiency, regime EfficiencyRegime) (float64, error) {
	if tp.State() == Saturated {
		return saturatedOpenFlow(tp, e, regime)
	}
	j, err := productivityIndex(tp, e)
	if err != nil {
		return 0, err
	}
	if tp.PwfTest >= tp.Pb {
		return j * tp.Pr, nil
	}
	qb := j * (tp.Pr - tp.Pb)
	return qb + j*tp.Pb/1.8*segmentBlend(e, regime), nil
}

// segmentBlend scales the below-pb segment of an undersaturated AOF.
func segmentBlend(e Efficiency, regime EfficiencyRegime) float64 {
	switch regime {
	case RegimeStandingLow:
		return 1.8 - 0.8*e.EF
	case RegimeStandingHigh:
		return 0.624 + 0.376*e.EF
	case RegimeTransferUp:
		return 0.624 + 0.376*e.second()
	case RegimeTransferDown:
		return 1.8 - 0.8*e.second()
	}
	return 1
}

func saturatedOpenFlow(tp TestPoint, e Efficiency, regime EfficiencyRegime) (float64, error) {
	x := tp.PwfTest / tp.Pr
	if regime == RegimeBaseline {
		shape := 1 - 0.2*x - 0.8*x*x
		if shape <= 0 {
			return 0, calcerr.Domain("pwf_test equals pr (%g psi), open flow undefined", tp.Pr)
		}
		return tp.QTest / shape, nil
	}

	ef := e.EF
	shape := 1.8*ef*(1-x) - 0.8*ef*ef*(1-x)*(1-x)
	if shape <= 0 {
		return 0, calcerr.Domain("standing drawdown %g is not positive for ef=%g", shape, ef)
	}
	var scale float64
	switch regime {
	case RegimeStandingHigh:
		scale = 0.624 + 0.376*ef
	case RegimeTransferUp:
		scale = 0.624 + 0.376*e.second()
	default: // RegimeStandingLow, RegimeTransferDown
		scale = 1.8*ef - 0.8*ef*ef
	}
	return tp.QTest / shape * scale, nil
}

// Summary is the capacity of a well derived from one test.
type Summary struct {
	State  ReservoirState   `json:"state"`
	Regime EfficiencyRegime `json:"regime"`
	J      float64          `json:"j"`
	Qb     *float64         `json:"qb,omitempty"` // absent for saturated reservoirs
	AOF    float64          `json:"aof"`
}

// Capacity returns J, Qb and AOF for one test point.
func Capacity(tp TestPoint, eff Efficiency) (Summary, error) {
	if err := tp.Validate(); err != nil {
		return Summary{}, err
	}
	regime, err := Classify(eff)
	if err != nil {
		return Summary{}, err
	}
	e, _ := eff.normalized()

	s := Summary{State: tp.State(), Regime: regime}
	j, err := productivityIndex(tp, e)
	if s.State == Undersaturated {
		if err != nil {
			return Summary{}, err
		}
		qb := j * (tp.Pr - tp.Pb)
		s.Qb = &qb
	}
	// saturated open flow does not go through J, so a saturated J error
	// only leaves J at zero
	if err == nil {
		s.J = j
	}
	if s.AOF, err = absoluteOpenFlow(tp, e, regime); err != nil {
		return Summary{}, err
	}
	return s, nil
}
