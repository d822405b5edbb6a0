package ledger

import "errors"

var (
	// ErrNotFound means the addressed market name has no holding.
	ErrNotFound = errors.New("holding not found")

	// ErrInvalidInput means a caller-supplied quantity or price failed a
	// precondition. Nothing is written when it is returned.
	ErrInvalidInput = errors.New("invalid input")
)
