package advance

import "errors"

var (
	ErrAdvanceNotFound = errors.New("advance not found")
	ErrNoOpenAdvance   = errors.New("no unsettled advance for employee")
	ErrAlreadySettled  = errors.New("advance already settled")
)
