package numeric

import "errors"

// Failure classes carried in Result.Err
var (
	ErrBracketing     = errors.New("function has same sign at both bounds")
	ErrConvergence    = errors.New("iteration budget exhausted without meeting tolerance")
	ErrDomain         = errors.New("function undefined in search interval")
	ErrInvalidRequest = errors.New("invalid analysis request")
)
