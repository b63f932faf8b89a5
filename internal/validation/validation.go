// Package validation contains the logic for validating request data.
//
// It uses go-playground/validator to enforce the rules declared in
// struct tags (all record fields are required on create and replace) and
// extracts failures into field-level errors the client can act on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves. Request structs declare validator tags and run
// validator.Struct on themselves in Validate.
type Validatable interface {
	Validate() error
}

// Validator is the shared validator instance; request types use it in
// their Validate methods.
var Validator = validator.New()

// BindAndValidate binds path, query, and body data into payload and
// validates it.
//
// A bind failure (malformed JSON, a string where an int belongs, a
// non-numeric path id) and a validation failure both reject the request
// with a 422 before any domain logic runs. payload must be a pointer so
// echo's binder can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		detail := "Request body could not be parsed"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				detail = msg
			}
		}
		return errs.NewUnprocessableEntityError(detail, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, fieldErrors)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError converts validator failures into per-field
// messages.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Validation failed", []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	for _, fieldErr := range validationErrors {
		field := toSnakeCase(fieldErr.Field())
		var msg string

		switch fieldErr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if fieldErr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fieldErr.Param())
			}

		case "max":
			if fieldErr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fieldErr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fieldErr.Param())
			}

		case "gte":
			msg = fmt.Sprintf("must be at least %s", fieldErr.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fieldErr.Param())

		default:
			if fieldErr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fieldErr.Tag(), fieldErr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fieldErr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// toSnakeCase converts a Go field name into its wire form,
// e.g. "VideoClip" -> "video_clip", "UserID" -> "user_id".
func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (name[i-1] < 'A' || name[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
