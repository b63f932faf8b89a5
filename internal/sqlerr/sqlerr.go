// Package sqlerr translates database driver errors into application
// errors.
//
// Both supported drivers report constraint failures through their own
// opaque types: pgx surfaces pgconn.PgError with a SQLSTATE, modernc
// sqlite surfaces its extended result codes. This package maps either
// into a common category enum so the rest of the application can ask
// "was that a unique violation?" without knowing which engine answered.
package sqlerr
