package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError converts err into an API error response. Errors that are not API
// errors are logged and reported as internal without details.
func WriteError(w http.ResponseWriter, logger *logger.Logger, err error) {
	apiErr := apiErrors.FromError(err)
	if apiErr.Kind == apiErrors.KindInternal {
		logger.Error("HTTP handler: request failed",
			"error", err.Error())
	}

	resp := errorResponse{
		Message: apiErr.Message,
		Code:    apiErr.Code,
	}
	if apiErr.Field != "" {
		resp.Errors = map[string]string{apiErr.Field: apiErr.Message}
	}
	WriteJSON(w, apiErr.HTTPStatus, resp)
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched
// so that the service reports the missing fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apiErrors.NewErrInvalidField("body", "request body too large")
		}
		return apiErrors.NewErrInvalidField("body", "request body is not valid JSON")
	}
	return nil
}
