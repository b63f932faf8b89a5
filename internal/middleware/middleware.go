// Package middleware stores global and request-scoped middleware.
//
// These intercept requests to handle cross-cutting concerns: request
// correlation IDs, request-scoped logging, CORS, panic recovery, and the
// global error handler that funnels every failure into the API's error
// shape.
package middleware
