package importer

import (
	"encoding/json"
	"net/http"

	"Nodal/internal/calc/calcerr"
	"Nodal/internal/calc/ipr"
	"Nodal/internal/calc/nodal"
	"Nodal/internal/respond"
)

const defaultMaxUpload = 10 << 20

// Handler takes a multipart form with the spreadsheet under "file" and the
// remaining well inputs as JSON under "params".
type Handler struct {
	MaxUploadBytes int64
}

func (h *Handler) limit() int64 {
	if h.MaxUploadBytes <= 0 {
		return defaultMaxUpload
	}
	return h.MaxUploadBytes
}

// IPR samples the inflow curve at the pressures of the pwf column.
func (h *Handler) IPR(w http.ResponseWriter, r *http.Request) {
	var params ipr.CurveInput
	pwfs, err := h.read(w, r, PressureColumn, &params)
	if err != nil {
		respond.Error(w, err)
		return
	}
	params.Pwf = pwfs
	res, err := ipr.EvaluateCurves(params)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// Nodal builds the system curve at the rates of the oil_rate column.
func (h *Handler) Nodal(w http.ResponseWriter, r *http.Request) {
	var params nodal.Input
	rates, err := h.read(w, r, RateColumn, &params)
	if err != nil {
		respond.Error(w, err)
		return
	}
	params.Rates = rates
	res, err := nodal.Calculate(params)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) read(w http.ResponseWriter, r *http.Request, col string, params any) ([]float64, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limit())
	if err := r.ParseMultipartForm(h.limit()); err != nil {
		return nil, calcerr.Invalid("multipart form: %v", err)
	}
	if raw := r.FormValue("params"); raw != "" {
		if err := json.Unmarshal([]byte(raw), params); err != nil {
			return nil, calcerr.Invalid("params: %v", err)
		}
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, calcerr.Invalid("file required")
	}
	defer file.Close()
	return ReadColumn(file, col)
}
