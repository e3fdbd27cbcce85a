// Package cli provides the command-line interface for electionhistory.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clusterops/electionhistory/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return 0
}

// NewRootCommand creates the root cobra command. Running it with log paths
// performs the analysis; subcommands cover the auxiliary workflows.
func NewRootCommand() *cobra.Command {
	opts := &commands.AnalyzeOptions{}

	rootCmd := &cobra.Command{
		Use:   "electionhistory [LOGPATH ...]",
		Short: "Reconstruct master election history from cluster logs",
		Long: `Electionhistory reconstructs the master election history of a cluster
from its messages.log files.

It reads one or more log files (rotated .gz archives included), finds
election cycles and the role switches belonging to them, and reports who
became master or slave, at which recovered transaction id, and whether a
newly elected master lagged behind another server's transactions.

Log paths are read as-is; point the tool at every cluster member's log to
get the complete picture:

  electionhistory node1/messages.log node2/messages.log node3/messages.log
  electionhistory -o json /var/log/neo4j/messages.log*
  electionhistory -c cluster.yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunAnalyze(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to YAML config file")

	rootCmd.AddCommand(commands.NewPatternsCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
