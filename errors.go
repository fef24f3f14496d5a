package dawmark

import (
	"github.com/simonhull/dawmark/internal/types"
)

// FormatError is an alias to types.FormatError.
// The input is not a valid container for the requested operation.
type FormatError = types.FormatError

// StructureError is an alias to types.StructureError.
// The container is valid but a required chunk is missing or inconsistent.
type StructureError = types.StructureError

// FetchError is an alias to types.FetchError.
type FetchError = types.FetchError

// ConversionError is an alias to types.ConversionError.
type ConversionError = types.ConversionError

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

var (
	// ErrNoConverter reports that a conversion was needed but no Converter
	// was configured. Export degrades to the fallback package instead of
	// returning it.
	ErrNoConverter = types.ErrNoConverter

	// ErrEmptySource is returned when a Request has neither Source.URL nor
	// Source.Data.
	ErrEmptySource = types.ErrEmptySource
)
