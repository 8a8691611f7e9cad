package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/buildinfo"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	dir   string
	debug bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "closebooks",
		Short:   "Double-entry bookkeeping with period reports and year-end closing",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "books directory")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(opts),
		newTxnCommand(opts),
		newImportCommand(opts),
		newExportCommand(opts),
		newReportCommand(opts),
		newCloseCommand(opts),
		newInsightsCommand(opts),
	)

	return rootCmd
}
