package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, and by the geocoding client when a query
// resolves to nothing.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. malformed clock value, unknown intent type).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
