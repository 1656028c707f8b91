package domain

import "errors"

// Domain errors.
var (
	ErrParseLog         = errors.New("Error parsing log file") //nolint:staticcheck // User-facing message kept verbatim
	ErrEmptyInput       = errors.New("missing input file path")
	ErrNodeNotFound     = errors.New("node not found")
	ErrInconsistentTree = errors.New("inconsistent task tree")
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidColorMode = errors.New("invalid color mode")
)
