package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clusterops/electionhistory/pkg/event"
)

// PatternsOptions holds command-line options for the patterns command.
type PatternsOptions struct {
	Output string
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand() *cobra.Command {
	opts := &PatternsOptions{}

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the recognized log line patterns",
		Long: `List the fixed patterns used to recognize election events in log lines.

Each entry shows the pattern name, its regular expression, what recognizing
it produces, and an example line. Recognition tries the patterns in the
listed order and the first match wins.

Example:
  electionhistory patterns
  electionhistory patterns -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runPatterns(cmd *cobra.Command, opts *PatternsOptions) error {
	patterns := event.Patterns()

	switch opts.Output {
	case "json":
		return outputPatternsJSON(cmd.OutOrStdout(), patterns)
	default:
		return outputPatternsText(cmd.OutOrStdout(), patterns)
	}
}

func outputPatternsText(w io.Writer, patterns []event.PatternInfo) error {
	fmt.Fprintln(w, "=== Election Event Patterns ===")
	fmt.Fprintln(w)

	for i, p := range patterns {
		fmt.Fprintf(w, "%2d. %s\n", i+1, p.Name)
		fmt.Fprintf(w, "    emits:   %s\n", p.Emits)
		fmt.Fprintf(w, "    pattern: %s\n", p.Expr)
		fmt.Fprintf(w, "    example: %s\n", p.Example)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Patterns are tried in this order; the first match wins.")
	return nil
}

// JSONPattern represents one pattern in JSON output.
type JSONPattern struct {
	Name           string `json:"name"`
	Pattern        string `json:"pattern"`
	Emits          string `json:"emits"`
	Example        string `json:"example"`
	NeedsTimestamp bool   `json:"needs_timestamp"`
}

func outputPatternsJSON(w io.Writer, patterns []event.PatternInfo) error {
	out := make([]JSONPattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, JSONPattern{
			Name:           p.Name,
			Pattern:        p.Expr,
			Emits:          p.Emits,
			Example:        p.Example,
			NeedsTimestamp: p.NeedsTimestamp,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
