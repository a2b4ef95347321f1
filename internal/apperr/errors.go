package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrUnauthorized indicates a missing/invalid token or bad login credentials (HTTP 401).
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates a valid identity with an insufficient role (HTTP 403).
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrInvalidState indicates a rejected no-op status or driver transition.
var ErrInvalidState = errors.New("invalid state transition")
