package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError. Domain
// conflicts (creating a record whose key already exists) use this
// constructor with a fixed message.
func NewBadRequestError(detail string) *HTTPError {
	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Detail: detail,
		Status: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(detail string) *HTTPError {
	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Detail: detail,
		Status: http.StatusNotFound,
	}
}

// NewUnprocessableEntityError creates a 422 HTTPError carrying
// field-level validation errors. Requests that fail shape validation are
// rejected with this before any domain logic runs.
func NewUnprocessableEntityError(detail string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)),
		Detail: detail,
		Status: http.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// NewInternalServerError creates a generic 500 HTTPError. The detail is
// the bare status text: storage faults and other unclassified errors must
// not leak internals to clients.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Detail: http.StatusText(http.StatusInternalServerError),
		Status: http.StatusInternalServerError,
	}
}
