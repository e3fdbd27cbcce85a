package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clusterops/electionhistory/pkg/analyzer"
	"github.com/clusterops/electionhistory/pkg/config"
	"github.com/clusterops/electionhistory/pkg/output"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// AnalyzeOptions holds command-line options for the root analysis run.
type AnalyzeOptions struct {
	Output     string
	ConfigPath string
}

// RunAnalyze reconstructs the election history from the given log paths and
// writes the report. It backs the root command: paths come from the command
// line and optionally from a config file, whose entries are glob-expanded.
func RunAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// A bare invocation prints usage to stdout and still runs, reporting
	// no cycles.
	if len(args) == 0 && opts.ConfigPath == "" {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	}

	cfg, err := config.Resolve(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Globs in config entries expand here; command-line paths are taken
	// as-is, the shell having expanded them already.
	files, err := parser.ExpandSources(cfg.LogSources)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}
	files = append(files, args...)

	format := cfg.Output
	if cmd.Flags().Changed("output") {
		format = opts.Output
	}
	formatter, err := newFormatter(format)
	if err != nil {
		return err
	}

	report, err := analyze(ctx, files)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// analyze runs both passes over every file, then attaches the pooled
// transitions once all cycles are known. Attachment is global so a cycle
// found in one file picks up switches logged in another.
func analyze(ctx context.Context, files []string) (*output.Report, error) {
	agg := analyzer.NewAggregator()

	var pending []*analyzer.RoleTransition
	for _, path := range files {
		transitions, err := processFile(ctx, agg, path)
		if err != nil {
			return nil, err
		}
		pending = append(pending, transitions...)
	}

	agg.SortCycles()
	for _, t := range pending {
		// Transitions at or before every cycle start belong to no cycle.
		agg.Attach(t)
	}

	return &output.Report{
		Cycles:  agg.Finalize(),
		Events:  agg.Events(),
		Sources: files,
	}, nil
}

func processFile(ctx context.Context, agg *analyzer.Aggregator, path string) ([]*analyzer.RoleTransition, error) {
	source, err := parser.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	return agg.ProcessFile(ctx, source)
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case config.OutputText:
		return output.NewTextFormatter(), nil
	case config.OutputJSON:
		return output.NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}
