package terrain

import "errors"

var (
	// ErrOutOfBounds reports a direct cell access outside [0, size) on either
	// axis. Direct access never wraps; only neighbor lookups do.
	ErrOutOfBounds = errors.New("cell index out of bounds")

	// ErrShapeMismatch reports a snapshot destination whose shape differs
	// from the grid's.
	ErrShapeMismatch = errors.New("destination shape mismatch")

	// ErrInvalidConfiguration reports unusable construction parameters: a
	// non-positive size, a density outside [0, 1], a nil random source, or
	// an inconsistent rule.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
