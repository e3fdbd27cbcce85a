package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterops/electionhistory/pkg/config"
	"github.com/clusterops/electionhistory/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an electionhistory configuration file without running analysis.

Checks:
  - YAML syntax
  - Output format value
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Log sources: %d pattern(s)\n", len(cfg.LogSources))
	fmt.Fprintf(out, "  Output:      %s\n", cfg.Output)

	// Check whether expanded log sources exist (warnings only)
	files, err := parser.ExpandSources(cfg.LogSources)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding log source patterns: %v\n", err)
		return nil
	}

	if len(files) > 0 {
		fmt.Fprintf(out, "\nLog files matched: %d\n", len(files))
		for _, f := range files {
			if _, statErr := os.Stat(f); statErr != nil {
				fmt.Fprintf(out, "  - %s (missing)\n", f)
			} else {
				fmt.Fprintf(out, "  - %s\n", f)
			}
		}
	}

	return nil
}
