package core

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrLevelDataCorrupt is returned when a level layout cannot be parsed.
	ErrLevelDataCorrupt = errors.New("blockbreak: level data corrupt")
	// ErrInvalidGridSize is returned for grid dimensions outside the supported table.
	ErrInvalidGridSize = errors.New("blockbreak: invalid grid size")
	// ErrAssetMissing is returned when a required sprite is absent from the asset source.
	ErrAssetMissing = errors.New("blockbreak: asset missing")
	// ErrUnknownLevel is returned for a level index that is not in the catalog.
	ErrUnknownLevel = errors.New("blockbreak: unknown level")
)

// LayoutError carries the position of a malformed entry in a level layout.
// It unwraps to ErrLevelDataCorrupt.
type LayoutError struct {
	Line   int // 1-based
	Column int // 1-based field index
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("blockbreak: layout line %d field %d: %s", e.Line, e.Column, e.Reason)
}

func (e *LayoutError) Unwrap() error {
	return ErrLevelDataCorrupt
}
