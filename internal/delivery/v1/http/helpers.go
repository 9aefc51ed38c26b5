package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trendbook/search-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrNoDetections):
		return http.StatusBadRequest, e.ErrNoDetections.Error()
	case errors.Is(err, e.ErrUnknownCurrency):
		return http.StatusBadRequest, e.ErrUnknownCurrency.Error()
	case errors.Is(err, e.ErrDetectionNotFound):
		return http.StatusNotFound, e.ErrDetectionNotFound.Error()
	case errors.Is(err, e.ErrSearchNotFound):
		return http.StatusNotFound, e.ErrSearchNotFound.Error()
	case errors.Is(err, e.ErrNoProductEmbedding):
		return http.StatusNotFound, e.ErrNoProductEmbedding.Error()
	case errors.Is(err, e.ErrUnknownLegalDoc):
		return http.StatusNotFound, e.ErrUnknownLegalDoc.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// requireQuery возвращает обязательный query-параметр или e.ErrMissingFields.
func requireQuery(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", e.Wrap(name, e.ErrMissingFields)
	}

	return value, nil
}
