package ipr

import "Nodal/internal/calc/calcerr"

// RateAtPressure computes the oil rate (bpd) at flowing pressure pwf with
// the named method, whatever the reservoir state. MethodAuto delegates to
// Rate.
//
// MethodComposite evaluates the whole composite curve: the Darcy line above
// pb and the Vogel-shaped segment below it. It needs an undersaturated
// reservoir.
func RateAtPressure(tp TestPoint, eff Efficiency, pwf float64, method Method) (float64, error) {
	if method == MethodAuto || method == "" {
		q, _, err := Rate(tp, eff, pwf)
		return q, err
	}
	e, err := checkQuery(tp, eff, pwf)
	if err != nil {
		return 0, err
	}

	switch method {
	case MethodDarcy:
		return darcyRate(tp, e, pwf)
	case MethodVogel:
		return vogelRate(tp, pwf)
	case MethodStanding:
		return standingRate(tp, e.EF, pwf)
	case MethodComposite:
		if tp.State() == Saturated {
			return 0, calcerr.Domain("composite curve needs pr %g above pb %g", tp.Pr, tp.Pb)
		}
		if pwf >= tp.Pb {
			return darcyRate(tp, e, pwf)
		}
		return compositeRate(tp, e, pwf)
	}
	return 0, calcerr.Invalid("unknown method %q", method)
}

// Rate selects the correlation from the reservoir state, pwf against pb and
// the efficiency regime, and reports which one it used:
//
//	undersaturated, pwf >= pb  Darcy
//	undersaturated, pwf <  pb  Composite
//	saturated, baseline        Vogel
//	saturated, otherwise       Standing
//
// ef and ef2 flow into the Darcy and Composite branches unchanged.
func Rate(tp TestPoint, eff Efficiency, pwf float64) (float64, Method, error) {
	e, err := checkQuery(tp, eff, pwf)
	if err != nil {
		return 0, "", err
	}
	regime, err := Classify(eff)
	if err != nil {
		return 0, "", err
	}

	var (
		q      float64
		method Method
	)
	switch {
	case tp.State() == Undersaturated && pwf >= tp.Pb:
		method = MethodDarcy
		q, err = darcyRate(tp, e, pwf)
	case tp.State() == Undersaturated:
		method = MethodComposite
		q, err = compositeRate(tp, e, pwf)
	case regime == RegimeBaseline:
		method = MethodVogel
		q, err = vogelRate(tp, pwf)
	default:
		method = MethodStanding
		q, err = standingRate(tp, e.EF, pwf)
	}
	if err != nil {
		return 0, "", err
	}
	return q, method, nil
}

// DarcyRate is J·(pr − pwf), the single-phase straight line.
func DarcyRate(tp TestPoint, eff Efficiency, pwf float64) (float64, error) {
	e, err := checkQuery(tp, eff, pwf)
	if err != nil {
		return 0, err
	}
	return darcyRate(tp, e, pwf)
}

// VogelRate is AOF·(1 − 0.2·pwf/pr − 0.8·(pwf/pr)²) on the unadjusted AOF.
func VogelRate(tp TestPoint, pwf float64) (float64, error) {
	if _, err := checkQuery(tp, Baseline, pwf); err != nil {
		return 0, err
	}
	return vogelRate(tp, pwf)
}

// StandingRate is AOF(ef=1)·[1.8·ef·(1 − pwf/pr) − 0.8·ef²·(1 − pwf/pr)²].
func StandingRate(tp TestPoint, ef, pwf float64) (float64, error) {
	e, err := checkQuery(tp, Efficiency{EF: ef}, pwf)
	if err != nil {
		return 0, err
	}
	return standingRate(tp, e.EF, pwf)
}

// CompositeRate is the two-phase segment of the composite curve,
// Qb + (J·pb/1.8)·shape(pwf/pb). At pwf = pb it equals the Darcy rate.
func CompositeRate(tp TestPoint, eff Efficiency, pwf float64) (float64, error) {
	e, err := checkQuery(tp, eff, pwf)
	if err != nil {
		return 0, err
	}
	if tp.Pr < tp.Pb {
		return 0, calcerr.Domain("composite segment needs pr %g at or above pb %g", tp.Pr, tp.Pb)
	}
	return compositeRate(tp, e, pwf)
}

func checkQuery(tp TestPoint, eff Efficiency, pwf float64) (Efficiency, error) {
	if err := tp.Validate(); err != nil {
		return eff, err
	}
	e, err := eff.normalized()
	if err != nil {
		return e, err
	}
	if err := calcerr.Finite("pwf", pwf); err != nil {
		return e, err
	}
	if pwf < 0 || pwf > tp.Pr {
		return e, calcerr.Domain("pwf %g outside [0, %g]", pwf, tp.Pr)
	}
	return e, nil
}

func darcyRate(tp TestPoint, e Efficiency, pwf float64) (float64, error) {
	j, err := productivityIndex(tp, e)
	if err != nil {
		return 0, err
	}
	return j * (tp.Pr - pwf), nil
}

func vogelRate(tp TestPoint, pwf float64) (float64, error) {
	aof, err := absoluteOpenFlow(tp, Baseline, RegimeBaseline)
	if err != nil {
		return 0, err
	}
	y := pwf / tp.Pr
	return aof * (1 - 0.2*y - 0.8*y*y), nil
}

func standingRate(tp TestPoint, ef, pwf float64) (float64, error) {
	aof, err := absoluteOpenFlow(tp, Baseline, RegimeBaseline)
	if err != nil {
		return 0, err
	}
	d := 1 - pwf/tp.Pr
	return aof * (1.8*ef*d - 0.8*ef*ef*d*d), nil
}

func compositeRate(tp TestPoint, e Efficiency, pwf float64) (float64, error) {
	if tp.Pb == 0 {
		return 0, calcerr.Domain("pb is zero in the composite segment")
	}
	j, err := productivityIndex(tp, e)
	if err != nil {
		return 0, err
	}
	qb := j * (tp.Pr - tp.Pb)

	z := pwf / tp.Pb
	var shape float64
	if e.EF == 1 {
		shape = 1 - 0.2*z - 0.8*z*z
	} else {
		shape = 1.8*(1-z) - 0.8*e.EF*(1-z)*(1-z)
	}
	return qb + j*tp.Pb/1.8*shape, nil
}
