package report

import (
	"bytes"
	"net/http"
	"time"

	"Nodal/internal/respond"
)

type Handler struct {
	Now func() time.Time
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	// render fully before writing so calc errors still get a JSON body
	var buf bytes.Buffer
	if err := Render(&buf, input, now()); err != nil {
		respond.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
