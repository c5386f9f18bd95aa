package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the usecase error taxonomy onto status codes. Token
// errors share one message and one code on purpose.
func writeError(w http.ResponseWriter, err error) {
	switch usecase.DomainCode(err) {
	case usecase.CodeValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case usecase.CodeNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case usecase.CodeInvalidToken:
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Something went wrong. Please try again."})
	}
}
