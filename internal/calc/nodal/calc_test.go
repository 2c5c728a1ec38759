package nodal

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Nodal/internal/calc/calcerr"
	"Nodal/internal/calc/ipr"
)

const tol = 1e-6

func sampleInput() Input {
	return Input{
		TestPoint:     ipr.TestPoint{QTest: 1000, PwfTest: 2000, Pr: 3000, Pb: 1500},
		Rates:         []float64{0, 500, 1000, 1500},
		THP:           100,
		API:           30,
		WaterCut:      0.2,
		SGWater:       1,
		InnerDiameter: 2.992,
		Roughness:     120,
		TVD:           5000,
		MD:            6000,
		FluidLevel:    1000,
	}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, ipr.MethodDarcy, res.Method)
	assert.InDelta(t, 0.3901021671826625, res.Gradient, tol)
	require.Len(t, res.Rows, 4)

	first := res.Rows[0]
	assert.InDelta(t, 3000, first.Pwf, tol)
	assert.Zero(t, first.FrictionFactor)
	assert.InDelta(t, 1660.4086687306499, first.Po, tol)
	assert.InDelta(t, -1339.5913312693501, first.Psys, tol)

	third := res.Rows[2]
	assert.InDelta(t, 2000, third.Pwf, tol)
	assert.InDelta(t, 0.0036822962907593184, third.FrictionFactor, 1e-12)
	assert.InDelta(t, 22.09377774455591, third.FrictionHead, tol)
	assert.InDelta(t, 8.618830579403339, third.PFriction, tol)
	assert.InDelta(t, -330.97250068994686, third.Psys, tol)

	require.NotNil(t, res.Operating)
	assert.InDelta(t, 1324.718902173859, res.Operating.Q, tol)
	assert.InDelta(t, 1675.281097826141, res.Operating.Pwf, tol)
}

func TestCalculateRateBeyondDarcyBranch(t *testing.T) {
	in := sampleInput()
	in.Rates = []float64{500, 1600}
	_, err := Calculate(in)
	require.ErrorIs(t, err, calcerr.ErrDomain)
	assert.Contains(t, err.Error(), "rates[1]")
}

func TestCalculateValidation(t *testing.T) {
	cases := map[string]func(*Input){
		"no rates":        func(in *Input) { in.Rates = nil },
		"fluid above tvd": func(in *Input) { in.FluidLevel = 6000 },
		"negative thp":    func(in *Input) { in.THP = -1 },
		"bad diameter":    func(in *Input) { in.InnerDiameter = 0 },
		"bad method":      func(in *Input) { in.Method = "fetkovich" },
		"nan thp":         func(in *Input) { in.THP = math.NaN() },
		"infinite tvd":    func(in *Input) { in.TVD = math.Inf(1) },
		"nan rate":        func(in *Input) { in.Rates = []float64{0, math.NaN()} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleInput()
			mutate(&in)
			_, err := Calculate(in)
			assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
		})
	}
}

func TestInflowMethod(t *testing.T) {
	m, err := InflowMethod(ipr.TestPoint{Pr: 2500, Pb: 3000}, "")
	require.NoError(t, err)
	assert.Equal(t, ipr.MethodVogel, m)

	m, err = InflowMethod(ipr.TestPoint{Pr: 3000, Pb: 1500}, "vogel")
	require.NoError(t, err)
	assert.Equal(t, ipr.MethodVogel, m)
}

func TestFindOperatingPoint(t *testing.T) {
	assert.Nil(t, FindOperatingPoint([]Row{{Q: 0, Psys: -5}, {Q: 10, Psys: -1}}))
	assert.Nil(t, FindOperatingPoint(nil))

	op := FindOperatingPoint([]Row{{Q: 0, Pwf: 100, Psys: -10}, {Q: 10, Pwf: 80, Psys: 0}})
	require.NotNil(t, op)
	assert.Equal(t, OperatingPoint{Q: 10, Pwf: 80}, *op)

	op = FindOperatingPoint([]Row{{Q: 0, Pwf: 100, Psys: -10}, {Q: 10, Pwf: 80, Psys: 30}})
	require.NotNil(t, op)
	assert.InDelta(t, 2.5, op.Q, tol)
	assert.InDelta(t, 95, op.Pwf, tol)
}

func TestHandlerCalc(t *testing.T) {
	body := `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"rates":[0,500,1000,1500],
		"thp":100,"api":30,"wc":0.2,"id_in":2.992,"tvd_ft":5000,"md_ft":6000,"fluid_level_ft":1000}`
	rec := httptest.NewRecorder()
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"operating_point"`)
	assert.Contains(t, rec.Body.String(), `"method":"darcy"`)
}
