package trip

import "errors"

// ErrValidation is returned when input fails a local business rule before
// any remote call is made. Wrapped with %w so callers can errors.Is it.
var ErrValidation = errors.New("validation error")

// ErrNotFound is returned when the directory service reports that the
// requested resource does not exist. Callers treat it as a fallback signal,
// not a fatal condition.
var ErrNotFound = errors.New("not found")
