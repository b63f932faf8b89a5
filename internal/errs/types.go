package errs

import "strings"

// FieldError represents a single validation issue for a specific field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type every failed request resolves to.
//
// Only Detail and Errors are serialized; the response body is always
//
//	{"detail": "...", "errors": [...]}
//
// with errors omitted when empty. Status and Code are consumed by the
// global error handler and the request logger.
type HTTPError struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`

	Code   string `json:"-"`
	Status int    `json:"-"`
}

// Error satisfies the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Detail
}

// Is reports whether target is also an *HTTPError, so
// errors.Is(err, &HTTPError{}) can be used as a type check.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithDetail returns a copy of the error with Detail replaced.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	return &HTTPError{
		Detail: detail,
		Errors: e.Errors,
		Code:   e.Code,
		Status: e.Status,
	}
}

// MakeUpperCaseWithUnderscores converts HTTP status text into a stable
// machine-readable code, e.g. "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
