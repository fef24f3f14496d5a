package dawmark

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "format",
			err:      &FormatError{Format: FormatWAV, Reason: "missing RIFF header"},
			contains: []string{"invalid wav", "missing RIFF header"},
		},
		{
			name:     "format unknown",
			err:      &FormatError{Reason: "empty input"},
			contains: []string{"invalid format", "empty input"},
		},
		{
			name:     "structure",
			err:      &StructureError{Chunk: "data", Offset: 36, Reason: "chunk overruns buffer"},
			contains: []string{"offset 36", `"data" chunk`, "overruns"},
		},
		{
			name:     "out of bounds",
			err:      &OutOfBoundsError{Path: "take.wav", What: "chunk header", Offset: 100, Length: 8, Size: 104},
			contains: []string{"take.wav", "read of 8 bytes", "exceed size 104", "chunk header"},
		},
		{
			name:     "fetch",
			err:      &FetchError{URL: "https://cdn/x.wav?REDACTED", Err: context.DeadlineExceeded},
			contains: []string{"fetch https://cdn/x.wav", "deadline exceeded"},
		},
		{
			name:     "conversion single attempt",
			err:      &ConversionError{Attempts: 1, Err: errors.New("HTTP 400")},
			contains: []string{"conversion failed: HTTP 400"},
		},
		{
			name:     "conversion retried",
			err:      &ConversionError{Attempts: 3, Err: errors.New("HTTP 503")},
			contains: []string{"after 3 attempts", "HTTP 503"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	var err error = &FetchError{URL: "u", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("FetchError does not unwrap")
	}

	err = &ConversionError{Attempts: 2, Err: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Error("ConversionError does not unwrap")
	}
}
