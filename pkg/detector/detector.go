// Package detector inspects log files for compatibility with the election
// history event patterns.
package detector

import (
	"context"
	"io"
	"strings"

	"github.com/clusterops/electionhistory/pkg/event"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// Status classifies how well a file fits the expected log shape.
type Status string

const (
	// StatusOK means the file looks analyzable.
	StatusOK Status = "ok"
	// StatusWarning means the file is readable but looks unlike a cluster
	// messages log: no event lines, or most lines lack a timestamp prefix.
	StatusWarning Status = "warning"
	// StatusError means analyzing the file would abort.
	StatusError Status = "error"
)

// Report holds the result of inspecting one log file.
type Report struct {
	// Path is the inspected file.
	Path string

	// SampledLines is the number of non-blank lines examined.
	SampledLines int

	// TimestampedLines is the number of sampled lines whose timestamp
	// prefix parses.
	TimestampedLines int

	// PatternCounts holds per-pattern match counts in recognition order.
	PatternCounts []PatternCount

	// FirstMalformed is the first event line whose timestamp prefix does
	// not parse, or nil if none was found. Analyzing a file with such a
	// line fails.
	FirstMalformed *MalformedLine

	// Status summarizes the findings.
	Status Status
}

// PatternCount pairs a pattern name with the number of sampled lines it
// matched.
type PatternCount struct {
	Name  string
	Count int
}

// MalformedLine identifies a line that matched an event pattern but carries
// an unparsable timestamp prefix.
type MalformedLine struct {
	Num  int
	Text string
}

// Coverage returns the fraction of sampled lines with a parsable timestamp
// prefix.
func (r *Report) Coverage() float64 {
	if r.SampledLines == 0 {
		return 0
	}
	return float64(r.TimestampedLines) / float64(r.SampledLines)
}

// MatchedLines returns the number of sampled lines matching any event pattern.
func (r *Report) MatchedLines() int {
	total := 0
	for _, pc := range r.PatternCounts {
		total += pc.Count
	}
	return total
}

// Detector samples log files and reports how they fit the event patterns.
type Detector struct {
	patterns   []event.PatternInfo
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample per file (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector over the fixed event patterns.
func New(opts ...Option) *Detector {
	d := &Detector{
		patterns:   event.Patterns(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiagnoseFile samples the head of a log file and reports pattern and
// timestamp coverage. Gzip-compressed files are decompressed transparently.
func (d *Detector) DiagnoseFile(ctx context.Context, path string) (*Report, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DiagnoseLines(path, lines), nil
}

// DiagnoseLines inspects a slice of log lines. Line numbers in the report
// are 1-based indices into lines.
func (d *Detector) DiagnoseLines(path string, lines []string) *Report {
	report := &Report{
		Path:          path,
		PatternCounts: make([]PatternCount, len(d.patterns)),
	}
	for i, p := range d.patterns {
		report.PatternCounts[i].Name = p.Name
	}

	for i, text := range lines {
		if strings.TrimSpace(text) == "" {
			continue
		}
		report.SampledLines++

		_, tsErr := parser.ParseTimestamp(text)
		if tsErr == nil {
			report.TimestampedLines++
		}

		// First match wins, mirroring recognition order.
		for j := range d.patterns {
			p := &d.patterns[j]
			if !p.Pattern.MatchString(text) {
				continue
			}
			report.PatternCounts[j].Count++
			if p.NeedsTimestamp && tsErr != nil && report.FirstMalformed == nil {
				report.FirstMalformed = &MalformedLine{Num: i + 1, Text: text}
			}
			break
		}
	}

	report.Status = status(report)
	return report
}

// coverageWarnThreshold flags files where most lines lack a timestamp prefix.
const coverageWarnThreshold = 0.5

func status(r *Report) Status {
	switch {
	case r.FirstMalformed != nil:
		return StatusError
	case r.SampledLines == 0:
		return StatusWarning
	case r.MatchedLines() == 0:
		return StatusWarning
	case r.Coverage() < coverageWarnThreshold:
		return StatusWarning
	default:
		return StatusOK
	}
}

// sampleFile reads up to sampleSize lines from the head of a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	source, err := parser.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	var lines []string
	for len(lines) < d.sampleSize {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line.Text)
	}

	return lines, nil
}
