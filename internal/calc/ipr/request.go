package ipr

// DefaultCurvePoints is the grid size used when a curve request carries no
// pressures of its own.
const DefaultCurvePoints = 25

// WellInput is a test point with the efficiencies applied to it. An absent
// ef means 1; an explicit ef must be positive.
type WellInput struct {
	TestPoint
	EF  *float64 `json:"ef,omitempty"`
	EF2 *float64 `json:"ef2,omitempty"`
}

func (in WellInput) Efficiency() Efficiency {
	e := Efficiency{EF: 1, EF2: in.EF2}
	if in.EF != nil {
		e.EF = *in.EF
	}
	return e
}

type ProductivityResult struct {
	J float64 `json:"j"`
}

type RateInput struct {
	WellInput
	Pwf    float64 `json:"pwf"`
	Method string  `json:"method"`
}

type RateResult struct {
	Q      float64 `json:"q"`
	Method Method  `json:"method"`
}

// EvaluateRate runs the named method, or the auto ladder when none is given,
// and reports the formula actually used.
func EvaluateRate(in RateInput) (RateResult, error) {
	m, err := ParseMethod(in.Method)
	if err != nil {
		return RateResult{}, err
	}
	if m == MethodAuto {
		q, used, err := Rate(in.TestPoint, in.Efficiency(), in.Pwf)
		if err != nil {
			return RateResult{}, err
		}
		return RateResult{Q: q, Method: used}, nil
	}
	q, err := RateAtPressure(in.TestPoint, in.Efficiency(), in.Pwf, m)
	if err != nil {
		return RateResult{}, err
	}
	return RateResult{Q: q, Method: m}, nil
}

type PressureInput struct {
	TestPoint
	Q      float64 `json:"q"`
	Method string  `json:"method"`
}

type PressureResult struct {
	Pwf    float64 `json:"pwf"`
	Method Method  `json:"method"`
}

func EvaluatePressure(in PressureInput) (PressureResult, error) {
	m, err := ParseMethod(in.Method)
	if err != nil {
		return PressureResult{}, err
	}
	pwf, err := PressureAtRate(in.TestPoint, in.Q, m)
	if err != nil {
		return PressureResult{}, err
	}
	return PressureResult{Pwf: pwf, Method: m}, nil
}

// CurveInput asks for one curve per method over a shared pressure grid.
// Without Pwf the grid runs from pr to zero in Points steps; without Methods
// the auto ladder is sampled.
type CurveInput struct {
	WellInput
	Pwf     []float64 `json:"pwf"`
	Points  int       `json:"points"`
	Methods []string  `json:"methods"`
}

type CurveResult struct {
	Curves      []Curve `json:"curves"`
	BubblePoint *Point  `json:"bubble_point,omitempty"`
}

func EvaluateCurves(in CurveInput) (CurveResult, error) {
	if err := in.Validate(); err != nil {
		return CurveResult{}, err
	}
	pwfs := in.Pwf
	if len(pwfs) == 0 {
		if in.Points <= 0 {
			in.Points = DefaultCurvePoints
		}
		grid, err := PressureGrid(in.Pr, in.Points)
		if err != nil {
			return CurveResult{}, err
		}
		pwfs = grid
	}
	names := in.Methods
	if len(names) == 0 {
		names = []string{string(MethodAuto)}
	}

	eff := in.Efficiency()
	out := CurveResult{Curves: make([]Curve, 0, len(names))}
	for _, name := range names {
		m, err := ParseMethod(name)
		if err != nil {
			return CurveResult{}, err
		}
		c, err := BuildCurve(in.TestPoint, eff, pwfs, m)
		if err != nil {
			return CurveResult{}, err
		}
		out.Curves = append(out.Curves, c)
	}

	bp, err := BubblePoint(in.TestPoint, eff)
	if err != nil {
		return CurveResult{}, err
	}
	out.BubblePoint = bp
	return out, nil
}
