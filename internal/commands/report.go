package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/reports"
)

// reportKinds maps a report name to its renderer.
var reportKinds = map[string]func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error{
	"trial-balance": func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error {
		return reports.WriteTrialBalance(cmd.OutOrStdout(), f, p.TrialBalance)
	},
	"income": func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error {
		return reports.WriteIncomeStatement(cmd.OutOrStdout(), f, p.IncomeStatement)
	},
	"balance-sheet": func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error {
		return reports.WriteBalanceSheet(cmd.OutOrStdout(), f, p.BalanceSheet)
	},
	"ledger": func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error {
		return reports.WriteGeneralLedger(cmd.OutOrStdout(), f, p.GeneralLedger)
	},
	"journal": func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error {
		return reports.WriteJournal(cmd.OutOrStdout(), f, p.Journal)
	},
	"all": func(cmd *cobra.Command, f *reports.Formatter, p reports.Pack) error {
		return reports.WritePack(cmd.OutOrStdout(), f, p)
	},
}

var reportNames = []string{"trial-balance", "income", "balance-sheet", "ledger", "journal", "all"}

func newReportCommand(opts *rootOptions) *cobra.Command {
	var month string
	var unposted bool

	cmd := &cobra.Command{
		Use:       "report <" + strings.Join(reportNames, "|") + ">",
		Short:     "Print financial reports for a period",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: reportNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			render := reportKinds[args[0]]

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			label, err := b.reportMonth(month)
			if err != nil {
				return err
			}
			book, err := b.store.Book()
			if err != nil {
				return err
			}
			f, err := b.formatter()
			if err != nil {
				return err
			}

			builder := reports.NewBuilder(ledger.NewEngine(b.chart))
			pack, err := builder.Build(cmd.Context(), book, label, reports.Options{IncludeUnposted: unposted})
			if err != nil {
				return err
			}
			b.logger.Debug("built reports", "month", label, "transactions", len(book.Transactions))

			if name := b.cfg.Business.Name; name != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", name)
			}
			return render(cmd, f, pack)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "reference month label, YYYY-MM (default config or current month)")
	cmd.Flags().BoolVar(&unposted, "unposted", false, "include current-period transactions in the general ledger")
	return cmd
}
