// Package parser provides log file reading and timestamp parsing for
// cluster messages.log files.
package parser

// Line is a single raw log line with its provenance.
type Line struct {
	// Text is the line content without the trailing newline.
	Text string

	// Source is the file path this line came from.
	Source string

	// Num is the 1-based line number in the source file.
	Num int
}
