package app

import "errors"

var (
	// ErrNameRequired rejects grouping records created without a name.
	ErrNameRequired = errors.New("name is required")
	// ErrContentRequired rejects questions and answers with empty content.
	ErrContentRequired = errors.New("content is required")
	// ErrParentNotFound indicates the referenced parent record does not exist.
	ErrParentNotFound = errors.New("parent record not found")
	// ErrInvalidDimension indicates an evaluation dimension outside the
	// fixed taxonomy. It is raised before any store call.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrScoreOutOfRange indicates an evaluation score outside 0..10.
	ErrScoreOutOfRange = errors.New("score out of range")
)
