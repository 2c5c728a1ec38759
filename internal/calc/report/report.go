// Package report renders a well's inflow capacity and curve as a PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"Nodal/internal/calc/ipr"
	"Nodal/internal/display"
)

const defaultTitle = "Inflow Performance Report"

type Input struct {
	ipr.CurveInput
	Well   string `json:"well"`
	Author string `json:"author"`
	Title  string `json:"title"`
	Notes  string `json:"notes"`
}

// Render writes the report for in to w. The curve section holds one column
// of rates per requested method.
func Render(w io.Writer, in Input, date time.Time) error {
	if in.Title == "" {
		in.Title = defaultTitle
	}
	summary, err := ipr.Capacity(in.TestPoint, in.Efficiency())
	if err != nil {
		return err
	}
	curves, err := ipr.EvaluateCurves(in.CurveInput)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.Cell(60, 6, label)
		pdf.Cell(0, 6, value)
		pdf.Ln(6)
	}
	line("Well:", in.Well)
	line("Author:", in.Author)
	line("Date:", date.Format("2006-01-02"))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Test point")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line("Test rate:", display.Format(in.QTest, display.BPD))
	line("Test flowing pressure:", display.Format(in.PwfTest, display.PSI))
	line("Reservoir pressure:", display.Format(in.Pr, display.PSI))
	line("Bubble point pressure:", display.Format(in.Pb, display.PSI))
	line("Flow efficiency:", efficiencyLabel(in.Efficiency()))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Capacity")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line("Reservoir state:", string(summary.State))
	line("Efficiency regime:", summary.Regime.String())
	line("Productivity index J:", display.Format(summary.J, display.BPDPerPSI))
	if summary.Qb != nil {
		line("Rate at bubble point Qb:", display.Format(*summary.Qb, display.BPD))
	}
	line("Absolute open flow:", display.Format(summary.AOF, display.BPD))
	pdf.Ln(4)

	renderCurves(pdf, curves)

	if in.Notes != "" {
		pdf.Ln(6)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

func renderCurves(pdf *gofpdf.Fpdf, res ipr.CurveResult) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Inflow curve")
	pdf.Ln(8)

	const colW = 35.0
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colW, 7, "Pwf (psi)", "1", 0, "C", false, 0, "")
	for _, c := range res.Curves {
		pdf.CellFormat(colW, 7, fmt.Sprintf("q %s (bpd)", c.Method), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	if len(res.Curves) == 0 {
		return
	}
	for i, pwf := range res.Curves[0].Pwf {
		pdf.CellFormat(colW, 6, display.Number(pwf), "1", 0, "R", false, 0, "")
		for _, c := range res.Curves {
			pdf.CellFormat(colW, 6, display.Number(c.Q[i]), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if bp := res.BubblePoint; bp != nil {
		pdf.Ln(2)
		pdf.Cell(0, 6, fmt.Sprintf("Bubble point: %s at %s",
			display.Format(bp.Q, display.BPD), display.Format(bp.Pwf, display.PSI)))
		pdf.Ln(6)
	}
}

func efficiencyLabel(e ipr.Efficiency) string {
	if e.EF2 == nil {
		return display.Number(e.EF)
	}
	return display.Number(e.EF) + " -> " + display.Number(*e.EF2)
}
