// Package errs defines the error types returned to API clients.
//
// Every error that reaches the wire is serialized as a JSON object with a
// "detail" string, optionally accompanied by field-level validation
// errors. The HTTP status and machine-readable code stay internal: they
// drive the response status line and structured logging, never the body.
package errs
