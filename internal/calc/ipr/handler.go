package ipr

import (
	"net/http"

	"Nodal/internal/respond"
)

type Handler struct{}

func (h *Handler) Productivity(w http.ResponseWriter, r *http.Request) {
	var input WellInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	j, err := ProductivityIndex(input.TestPoint, input.Efficiency())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ProductivityResult{J: j})
}

func (h *Handler) DarcyProductivity(w http.ResponseWriter, r *http.Request) {
	var input DarcyInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	res, err := EvaluateDarcyProductivity(input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) Capacity(w http.ResponseWriter, r *http.Request) {
	var input WellInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	res, err := Capacity(input.TestPoint, input.Efficiency())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	var input RateInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	res, err := EvaluateRate(input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) Pressure(w http.ResponseWriter, r *http.Request) {
	var input PressureInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	res, err := EvaluatePressure(input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) Curve(w http.ResponseWriter, r *http.Request) {
	var input CurveInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, err)
		return
	}
	res, err := EvaluateCurves(input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}
