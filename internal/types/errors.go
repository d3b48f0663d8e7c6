package types

import "errors"

// Registry lookup errors. Callers test for them with errors.Is.
var (
	ErrInvalidToolID   = errors.New("invalid tool ID format")
	ErrServiceNotFound = errors.New("service not found")
	ErrToolNotFound    = errors.New("unknown tool")
)
