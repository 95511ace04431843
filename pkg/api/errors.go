package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeServerError    ErrorType = "server_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeNotFound       ErrorType = "not_found"
)

// APIError represents a structured API error with type, code, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}

// EngineErrorType classifies a dialogue engine failure.
type EngineErrorType string

const (
	// EngineUnreachable covers connection failures and timeouts.
	EngineUnreachable EngineErrorType = "unreachable"
	// EngineBadStatus is a non-2xx HTTP reply.
	EngineBadStatus EngineErrorType = "bad_status"
	// EngineMalformed is a reply that fails schema validation or decoding.
	EngineMalformed EngineErrorType = "malformed"
	// EngineRejected is a well-formed reply carrying a non-zero status.
	EngineRejected EngineErrorType = "rejected"
)

// EngineError is returned by providers when a dialogue engine call fails.
type EngineError struct {
	Type       EngineErrorType
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("engine %s (HTTP %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("engine %s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates an EngineError of the given type.
func NewEngineError(typ EngineErrorType, message string, cause error) *EngineError {
	return &EngineError{Type: typ, Message: message, Err: cause}
}
