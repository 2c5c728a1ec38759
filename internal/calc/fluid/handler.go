package fluid

import (
	"net/http"

	"Nodal/internal/respond"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
