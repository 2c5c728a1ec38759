// Package respond writes JSON bodies and maps calc errors onto HTTP statuses.
package respond

import (
	"encoding/json"
	"net/http"

	"Nodal/internal/calc/calcerr"
	"Nodal/internal/metrics"
)

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error answers with the status calcerr assigns to err. Internal failures
// get a generic message.
func Error(w http.ResponseWriter, err error) {
	metrics.ObserveCalcError(err)
	status := calcerr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Calculation error"
	}
	JSON(w, status, errorBody{Error: msg})
}

// Decode reads a JSON request body into v. Unknown fields are rejected.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return calcerr.Invalid("invalid request payload: %v", err)
	}
	return nil
}
