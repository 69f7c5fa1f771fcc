package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailExists is returned when registering or updating to an email
	// already held by another account.
	ErrEmailExists = errors.New("email already in use")
	// ErrInvalidCredentials is returned for any failed login. The message is
	// deliberately the same for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrClassificationNotFound is returned when a classification is not found
	// or not publicly visible.
	ErrClassificationNotFound = errors.New("classification not found")
	// ErrVehicleNotFound is returned when a vehicle is not found or not
	// publicly visible.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrClassificationInUse is returned when rejecting a classification that
	// still has vehicles referencing it.
	ErrClassificationInUse = errors.New("classification still has vehicles assigned")
	// ErrUnknownItemType is returned for approval actions on anything other
	// than a classification or vehicle.
	ErrUnknownItemType = errors.New("unknown item type")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrEmailExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrAccountNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case ErrClassificationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLASSIFICATION_NOT_FOUND")
	case ErrVehicleNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	case ErrClassificationInUse:
		return NewHTTPError(http.StatusConflict, err.Error(), "CLASSIFICATION_IN_USE")
	case ErrUnknownItemType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_ITEM_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
