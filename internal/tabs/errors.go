package tabs

import "errors"

var (
	// ErrIndexOutOfRange reports a caller-supplied index outside the valid
	// range for the current collection length.
	ErrIndexOutOfRange = errors.New("tabs: index out of range")

	// ErrEmptyCollection reports an operation that requires at least one tab.
	ErrEmptyCollection = errors.New("tabs: empty collection")
)
