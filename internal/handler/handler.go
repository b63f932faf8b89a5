// Package handler is the HTTP layer: the first entry point for business
// logic after the router.
//
// It binds and validates requests through the validation package, calls
// the appropriate service, and writes the JSON response. Domain errors
// pass through untouched for the global error handler to format.
package handler
