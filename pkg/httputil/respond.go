package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code  pkgerrors.Code `json:"code"`
	Error string         `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody] and returns the status used.
// Internal failures are reported without their message.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	body := ErrorBody{Code: pkgerrors.GetCode(err), Error: pkgerrors.UserMessage(err)}
	if status == http.StatusRequestEntityTooLarge {
		body.Code = pkgerrors.ErrCodeInvalidInput
		body.Error = "request body too large"
	}
	if status == http.StatusInternalServerError {
		if body.Code == "" {
			body.Code = pkgerrors.ErrCodeInternal
		}
		body.Error = "internal error"
	}
	WriteJSON(w, status, body)
	return status
}

// StatusFor maps err to an HTTP status code.
func StatusFor(err error) int {
	if mbe := new(http.MaxBytesError); errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	if pkgerrors.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch pkgerrors.GetCode(err) {
	case pkgerrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case pkgerrors.ErrCodeCorrupt:
		return http.StatusUnprocessableEntity
	case pkgerrors.ErrCodeNotFound, pkgerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
