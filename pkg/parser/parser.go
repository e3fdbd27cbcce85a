package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FileSource implements LineSource for a single log file. Rotated logs that
// were compressed in place (messages.log.1.gz) are decompressed transparently.
type FileSource struct {
	path string

	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	line    int
}

// OpenFile opens path for line-by-line reading.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	s := &FileSource{path: path, file: f}
	if err := s.resetReader(); err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the file path this source reads from.
func (s *FileSource) Path() string {
	return s.path
}

// Next returns the next line of the file, or io.EOF once it is exhausted.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.path, err)
		}
		return nil, io.EOF
	}

	s.line++
	return &Line{
		Text:   s.scanner.Text(),
		Source: s.path,
		Num:    s.line,
	}, nil
}

// Rewind repositions the source at the first line so the same file can be
// scanned again without reopening it.
func (s *FileSource) Rewind() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", s.path, err)
	}
	return s.resetReader()
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.scanner = nil
	return err
}

// resetReader rebuilds the scanner on the current file position. Gzip streams
// cannot seek, so the decompressor is recreated on each rewind.
func (s *FileSource) resetReader() error {
	var r io.Reader = s.file
	if isGzip(s.path) {
		gz, err := gzip.NewReader(s.file)
		if err != nil {
			return fmt.Errorf("reading gzip stream %s: %w", s.path, err)
		}
		s.gz = gz
		r = gz
	}

	s.scanner = bufio.NewScanner(r)
	s.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.line = 0

	return nil
}

func isGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}
