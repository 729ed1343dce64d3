package erpapi

import (
	"errors"
	"net/http"
)

// Error codes the client normalizes responses into. The backend may supply
// its own error_code; when it does not, CodeNetworkError is the default.
const (
	CodeNetworkError     = "NETWORK_ERROR"
	CodeAuthentication   = "AUTHENTICATION_ERROR"
	CodeValidation       = "VALIDATION_ERROR"
	defaultErrorMessage  = "Something went wrong. Please try again."
	authenticationFailed = "Your session has expired. Please log in again."
)

// APIError is the single error shape every backend failure is normalized
// into. Callers never re-wrap it; feature pages only read Message and
// Details to set page error state.
type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"error_code"`
	Details map[string]string `json:"details,omitempty"`
	Status  int               `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAuthentication reports whether the error came from a 401.
func (e *APIError) IsAuthentication() bool {
	return e.Status == http.StatusUnauthorized
}

// IsValidation reports whether the error is a 4xx carrying field-level
// details to surface next to the offending inputs.
func (e *APIError) IsValidation() bool {
	return e.Status >= 400 && e.Status < 500 && e.Status != http.StatusUnauthorized && len(e.Details) > 0
}

// IsNetwork reports whether no usable response was received at all.
func (e *APIError) IsNetwork() bool {
	return e.Status == 0
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
