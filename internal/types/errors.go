package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConverter is returned by the orchestrator when conversion is
	// needed but no converter was configured.
	ErrNoConverter = errors.New("no conversion service configured")

	// ErrEmptySource is returned when a request carries neither a URL nor bytes.
	ErrEmptySource = errors.New("source has no URL and no data")
)

// OutOfBoundsError is returned when attempting to read beyond buffer bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// FormatError is returned when input is not a valid container for the
// requested operation, e.g. a buffer without a RIFF/WAVE header.
type FormatError struct {
	Format Format
	Reason string
}

func (e *FormatError) Error() string {
	if e.Format == FormatUnknown {
		return fmt.Sprintf("invalid format: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format, e.Reason)
}

// StructureError is returned when a container is superficially valid but a
// required sub-structure is missing or inconsistent.
type StructureError struct {
	Chunk  string
	Reason string
	Offset int64
}

func (e *StructureError) Error() string {
	if e.Chunk != "" {
		return fmt.Sprintf("bad structure at offset %d (%q chunk): %s", e.Offset, e.Chunk, e.Reason)
	}
	return fmt.Sprintf("bad structure at offset %d: %s", e.Offset, e.Reason)
}

// FetchError is returned when source bytes could not be retrieved,
// including timeouts.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ConversionError is returned when the external conversion service failed
// or timed out after all attempts.
type ConversionError struct {
	Attempts int
	Err      error
}

func (e *ConversionError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("conversion failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("conversion failed: %v", e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
