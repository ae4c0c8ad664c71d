package webui

import "errors"

// Common errors returned by View operations.
var (
	// ErrClosed is returned when operations are attempted on a closed view.
	ErrClosed = errors.New("webui: view is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("webui: invalid dimensions")

	// ErrNilManager is returned when a nil lifecycle manager is passed.
	ErrNilManager = errors.New("webui: nil lifecycle manager")
)
