// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from the handler, invokes the repository, and maps
// storage outcomes to the application's domain errors with their fixed
// client-facing messages.
package service
