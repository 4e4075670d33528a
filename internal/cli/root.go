package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mlortz/sankey/pkg/buildinfo"
)

// Execute runs the sankey CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (render,
// stats, serve), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "sankey",
		Short:        "sankey renders two-sided flow diagrams from CSV data",
		Long:         `sankey is a CLI tool for laying out and rendering two-sided flow (sankey) diagrams: it aggregates observation records into flows, stacks them into bands on a left and a right axis, and draws smooth strips between the sides.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
