// Package importer reads well data out of uploaded spreadsheets.
package importer

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Nodal/internal/calc/calcerr"
)

// Header names looked up on the first row of the first sheet.
const (
	PressureColumn = "pwf"
	RateColumn     = "oil_rate"
)

// ReadColumn returns the numbers under header col on the first sheet, top to
// bottom. Blank cells are skipped; any other non-numeric or non-finite cell
// fails with its spreadsheet row.
func ReadColumn(r io.Reader, col string) ([]float64, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, calcerr.Invalid("unreadable spreadsheet: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, calcerr.Invalid("sheet %q: %v", sheet, err)
	}
	if len(rows) < 2 {
		return nil, calcerr.Invalid("sheet %q has no data rows", sheet)
	}

	idx := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), col) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, calcerr.Invalid("sheet %q has no %q column", sheet, col)
	}

	var out []float64
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, calcerr.Invalid("row %d: %q is not a number", i+1, cell)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, calcerr.Invalid("column %q is empty", col)
	}
	return out, nil
}
