package handler

import (
	"encoding/json"
	"net/http"

	"github.com/eventhub/eventhub-go/internal/validate"
)

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type validationErrors struct {
	Errors []validate.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) apiError {
	return apiError{Message: msg}
}

// decodeJSON decodes a capped request body into dst, writing the error
// response itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// checkValid runs the validation pipeline and writes the 422 response with
// every failing field when the request is invalid.
func checkValid(w http.ResponseWriter, req interface{}) bool {
	if errs := validate.Struct(req); errs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationErrors{Errors: errs})
		return false
	}
	return true
}
