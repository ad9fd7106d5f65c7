package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "time", "error": "must be before 24h0m0s" }
type FieldError struct {
	// Field is the field name/key the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the error shape written by the global error handler.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON.
//   - Code: machine-friendly error code (e.g. "SERVICE_UNAVAILABLE").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether clients may show Message as-is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any *HTTPError,
// regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
