package ipr

import "Nodal/internal/calc/calcerr"

// ProductivityIndex computes J (bpd/psi) from the test point.
//
// A test above the bubble point gives the straight-line index. A test below
// it divides by the composite drawdown, Vogel-shaped for ef = 1 and
// Standing-adjusted otherwise. With ef != 1 and ef2 present the result is
// projected to the second efficiency as J/ef·ef2.
func ProductivityIndex(tp TestPoint, eff Efficiency) (float64, error) {
	if err := tp.Validate(); err != nil {
		return 0, err
	}
	e, err := eff.normalized()
	if err != nil {
		return 0, err
	}
	return productivityIndex(tp, e)
}

func productivityIndex(tp TestPoint, e Efficiency) (float64, error) {
	if tp.PwfTest >= tp.Pb {
		drawdown := tp.Pr - tp.PwfTest
		if drawdown == 0 {
			return 0, calcerr.Domain("pr equals pwf_test (%g psi), productivity index undefined", tp.Pr)
		}
		return transfer(tp.QTest/drawdown, e), nil
	}
	if tp.Pb == 0 {
		return 0, calcerr.Domain("pb is zero in the two-phase productivity index")
	}

	x := tp.PwfTest / tp.Pb
	var shape float64
	if e.EF == 1 {
		shape = 1 - 0.2*x - 0.8*x*x
	} else {
		shape = 1.8*(1-x) - 0.8*e.EF*(1-x)*(1-x)
	}
	denom := (tp.Pr - tp.Pb) + tp.Pb/1.8*shape
	if denom <= 0 {
		return 0, calcerr.Domain("two-phase drawdown %g is not positive", denom)
	}
	return transfer(tp.QTest/denom, e), nil
}

// transfer projects an index measured at ef onto ef2.
func transfer(j float64, e Efficiency) float64 {
	if e.EF != 1 && e.EF2 != nil {
		return j / e.EF * e.second()
	}
	return j
}
