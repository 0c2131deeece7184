package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Catalog and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")

	// Store errors
	ErrSongNotFound = fmt.Errorf("song not found")

	// Room session errors
	ErrAlreadyInRoom = fmt.Errorf("already in a room")
	ErrNotInRoom     = fmt.Errorf("not in a room")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidDelta    = fmt.Errorf("vote delta must be +1 or -1")
)
