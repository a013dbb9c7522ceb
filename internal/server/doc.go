// Package server implements the HTTP transport for the structural
// validation service.
//
// The transport is a thin layer over internal/validate: it binds and checks
// request bodies, applies the default sensitivity, and serializes the
// validation result or a typed failure.
//
// # Endpoints
//
//   - POST /validate-structure: compare two images by URL
//   - GET /health: health check for monitoring
//   - GET /: service metadata (name, version, status)
//
// # Error Contract
//
// Every failure response carries a single "detail" field:
//
//   - 400: the image bytes could not be fetched or decoded
//   - 422: the request body is malformed (missing or non-URL fields)
//   - 500: an unexpected failure inside the pipeline
//
// Absence of detected lines is not a failure; it produces a normal result
// with zero counts.
package server
