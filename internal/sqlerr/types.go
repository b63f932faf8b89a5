package sqlerr

// Code is the driver-independent category of a database error.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
)

// Error is a normalized database error. It keeps the original driver
// error for Unwrap plus whatever schema metadata the driver exposed.
type Error struct {
	Code         Code
	DatabaseCode string
	Message      string

	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE to a category.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// SQLite extended result codes for constraint failures.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// MapSQLiteCode maps a SQLite extended result code to a category. A
// primary-key violation is a unique violation: both mean the key is
// already taken.
func MapSQLiteCode(code int) Code {
	switch code {
	case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
		return UniqueViolation
	case sqliteConstraintForeignKey:
		return ForeignKeyViolation
	case sqliteConstraintNotNull:
		return NotNullViolation
	case sqliteConstraintCheck:
		return CheckViolation
	default:
		return Other
	}
}
