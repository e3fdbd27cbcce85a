package parser

import (
	"context"
	"io"
)

// LineSource provides an iterator over raw log lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*Line, error)

	// Close releases any resources held by the source.
	Close() error
}

// RewindableSource is a LineSource that can be repositioned at its first
// line, letting callers make multiple passes over the same input.
type RewindableSource interface {
	LineSource

	// Rewind repositions the source at its first line.
	Rewind() error
}

// Ensure io.EOF is available for callers
var _ = io.EOF

var (
	_ LineSource       = (*FileSource)(nil)
	_ RewindableSource = (*FileSource)(nil)
)
