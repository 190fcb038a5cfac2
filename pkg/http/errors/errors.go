package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// ErrorResponse is the body of every failed request. Error repeats the HTTP
// status so clients that only read the body can branch on it.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Field   string `json:"field,omitempty"`
}

// StatusMessage is the fixed human message for a status.
func StatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusMethodNotAllowed:
		return "method not allowed"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	case http.StatusTooManyRequests:
		return "too many requests"
	case http.StatusInternalServerError:
		return "internal server error"
	default:
		return http.StatusText(status)
	}
}

func write(w http.ResponseWriter, status int, resp ErrorResponse) {
	resp.Success = false
	resp.Error = status
	if resp.Message == "" {
		resp.Message = StatusMessage(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, code, detail string) {
	write(w, status, ErrorResponse{Code: code, Detail: detail})
}

// RespondValidationError writes a 400 naming the offending field
func RespondValidationError(w http.ResponseWriter, code, detail, field string) {
	write(w, http.StatusBadRequest, ErrorResponse{Code: code, Detail: detail, Field: field})
}

// RespondFromError maps the trivia error kinds onto statuses. Unknown errors
// are treated as unprocessable, the same as a failed store call.
func RespondFromError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, trivia.ErrNotFound):
		RespondError(w, http.StatusNotFound, ErrCodeNotFound, "")
	case stderrors.Is(err, trivia.ErrInvalidInput):
		RespondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		RespondError(w, http.StatusUnprocessableEntity, ErrCodeUnprocessable, "")
	}
}

// StatusFor reports the status RespondFromError would use for err.
func StatusFor(err error) int {
	switch {
	case stderrors.Is(err, trivia.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, trivia.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter, code string) {
	RespondError(w, http.StatusNotFound, code, "")
}

// RespondBadRequest writes a bad request error response
func RespondBadRequest(w http.ResponseWriter, code, detail string) {
	RespondError(w, http.StatusBadRequest, code, detail)
}

// RespondMethodNotAllowed writes a method not allowed error response
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "")
}

// RespondTooManyRequests writes a rate limit error response
func RespondTooManyRequests(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusTooManyRequests, ErrCodeRateLimited, detail)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter, detail string) {
	RespondError(w, http.StatusInternalServerError, ErrCodeInternalError, detail)
}
