package services

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// HTTP status codes; anything unrecognized becomes a 500.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrMixedLocations       = errors.New("file contains rows from multiple locations")
	ErrNoLocationDetermined = errors.New("could not determine location from file")
	ErrNoUsableRows         = errors.New("no usable rows in file")
	ErrAlreadyComplete      = errors.New("step already complete")
	ErrInvalidScan          = errors.New("invalid scan value")
)
