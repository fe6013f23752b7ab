package service

import "errors"

// Sentinel errors shared by all services. Handlers map them to transport
// status codes (see handler.writeError); services wrap them with context via
// fmt.Errorf("%w: …") so errors.Is keeps working.
var (
	// ErrNotFound — a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — a malformed or missing required field.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientStock — the source holder lacks enough quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)
