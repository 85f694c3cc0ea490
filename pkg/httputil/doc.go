// Package httputil provides HTTP helpers for the graphbin service.
//
// # Overview
//
// This package holds the pieces every handler shares:
//
//   - [WriteJSON] and [WriteError]: response encoding
//   - [StatusFor]: mapping of [errors.Code] values to HTTP status codes
//   - [RequestID]: middleware that tags every request with an id
//
// # Errors
//
// Error bodies are JSON objects with a machine-readable code and the
// user-facing message:
//
//	{"code": "CORRUPT_DATA", "error": "truncated stream reading degree of node 3"}
//
// Validation codes (INVALID_*) and UNSUPPORTED map to 400, CORRUPT_DATA to
// 422, NOT_FOUND and FILE_NOT_FOUND to 404, and an oversized body to 413.
// Everything else is a 500 whose message is not exposed.
//
// # Request IDs
//
// [RequestID] keeps a client-supplied X-Request-ID header and otherwise
// generates a random UUID. The id is echoed on the response and available to
// handlers through [RequestIDFromContext].
//
// [errors.Code]: github.com/matzehuels/graphbin/pkg/errors.Code
package httputil
