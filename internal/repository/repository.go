// Package repository handles all interactions with the database.
//
// It contains the raw SQL and the scan/marshal plumbing, abstracting
// storage away from the service layer. Queries are written with `?`
// placeholders and rebound per driver by the database package.
package repository
