package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clusterops/electionhistory/pkg/detector"
)

// DiagnoseOptions holds command-line options for the diagnose command.
type DiagnoseOptions struct {
	SampleSize int
}

// NewDiagnoseCommand creates the diagnose command.
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose LOGPATH [LOGPATH ...]",
		Short: "Check log files for analyzable election events",
		Long: `Check whether log files carry the timestamp prefix and event lines the
analysis expects.

Samples lines from the head of each file and reports:
  - how many sampled lines carry a parsable timestamp prefix
  - how often each event pattern matched
  - the first event line whose timestamp prefix does not parse, which
    would abort an analysis run

Each file gets an ok, warning, or error status.

Example:
  electionhistory diagnose /var/log/neo4j/messages.log
  electionhistory diagnose --sample 500 node1/messages.log node2/messages.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample per file")

	return cmd
}

func runDiagnose(cmd *cobra.Command, args []string, opts *DiagnoseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	reports := make([]*detector.Report, 0, len(args))
	for _, path := range args {
		report, err := d.DiagnoseFile(ctx, path)
		if err != nil {
			return fmt.Errorf("diagnosing %s: %w", path, err)
		}
		reports = append(reports, report)
	}

	printDiagnostics(cmd.OutOrStdout(), reports)
	return nil
}

func printDiagnostics(w io.Writer, reports []*detector.Report) {
	fmt.Fprintln(w, "=== Log File Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range reports {
		var icon string
		switch r.Status {
		case detector.StatusOK:
			icon = "PASS"
			okCount++
		case detector.StatusWarning:
			icon = "WARN"
			warnCount++
		case detector.StatusError:
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Path)
		fmt.Fprintf(w, "    Lines sampled: %d\n", r.SampledLines)
		fmt.Fprintf(w, "    Timestamp prefix coverage: %.1f%% (%d/%d lines)\n",
			r.Coverage()*100, r.TimestampedLines, r.SampledLines)
		fmt.Fprintf(w, "    Event lines matched: %d\n", r.MatchedLines())

		for _, pc := range r.PatternCounts {
			if pc.Count == 0 {
				continue
			}
			fmt.Fprintf(w, "      - %s: %d\n", pc.Name, pc.Count)
		}

		if r.FirstMalformed != nil {
			fmt.Fprintf(w, "    Malformed timestamp on event line %d:\n", r.FirstMalformed.Num)
			fmt.Fprintf(w, "      %s\n", truncate(r.FirstMalformed.Text, 120))
			fmt.Fprintln(w, "      Hint: analysis aborts on event lines without a parsable timestamp prefix")
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
