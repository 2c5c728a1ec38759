// Package display renders calculation results for people: three decimals,
// rounded half away from zero, followed by the unit.
package display

import (
	"github.com/shopspring/decimal"
)

const Places = 3

type Unit string

const (
	PSI           Unit = "psi"
	BPD           Unit = "bpd"
	BPDPerPSI     Unit = "bpd/psi"
	PSIPerFoot    Unit = "psi/ft"
	Feet          Unit = "ft"
	Dimensionless Unit = ""
)

// Number formats v with Places decimals.
func Number(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(Places)
}

// Format formats v with its unit, e.g. "769.231 bpd".
func Format(v float64, u Unit) string {
	if u == Dimensionless {
		return Number(v)
	}
	return Number(v) + " " + string(u)
}

// Round returns v rounded to Places decimals.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(Places).Float64()
	return f
}
