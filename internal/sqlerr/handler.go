package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pairloom/profiles/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	sqlite "modernc.org/sqlite"
)

// ErrCode reports the mapped category for a given error.
//
// It normalizes whatever driver error is in the chain; anything that is
// not a recognized constraint failure maps to Other.
func ErrCode(err error) Code {
	if normalized := Convert(err); normalized != nil {
		return normalized.Code
	}
	return Other
}

// Convert normalizes a driver error into *Error, or returns nil when err
// carries no recognizable database error.
func Convert(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return convertPgError(pgErr)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return convertSQLiteError(sqliteErr)
	}

	return nil
}

// convertPgError maps a raw PostgreSQL error into *Error, keeping the
// schema metadata pgx exposes.
func convertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// convertSQLiteError maps a modernc sqlite error into *Error. SQLite does
// not report table/column metadata in its error struct; the message text
// (e.g. "UNIQUE constraint failed: users.user_id") is all there is.
func convertSQLiteError(src *sqlite.Error) *Error {
	return &Error{
		Code:         MapSQLiteCode(src.Code()),
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}
}

// generateErrorCode creates a stable application error code from the
// violated table and category, e.g. users + UniqueViolation ->
// USER_ALREADY_EXISTS. These codes end up in logs, not response bodies.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for a
// constraint failure.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column metadata.
// Columns like "user_id" win over the table name; both fall back to
// "record" when the driver reported nothing.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case,
// e.g. "video_clip" -> "Video Clip".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level database error into an application
// error.
//
//   - *errs.HTTPError passes through unchanged
//   - constraint violations become 400s with a client-safe message
//   - pgx.ErrNoRows / sql.ErrNoRows become a generic 404
//   - anything else becomes an opaque 500
//
// It is the last line of defense in the global error handler; the
// service layer usually classifies domain errors before they get here.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr := Convert(err); sqlErr != nil {
		switch sqlErr.Code {
		case UniqueViolation, ForeignKeyViolation, NotNullViolation, CheckViolation:
			converted := errs.NewBadRequestError(formatUserFriendlyMessage(sqlErr))
			converted.Code = generateErrorCode(sqlErr.TableName, sqlErr.Code)
			return converted
		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found")
	}

	return errs.NewInternalServerError()
}
