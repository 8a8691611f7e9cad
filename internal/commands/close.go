package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/auditlog"
	"github.com/cleared-dev/closebooks/internal/closing"
	"github.com/cleared-dev/closebooks/internal/model"
)

func newCloseCommand(opts *rootOptions) *cobra.Command {
	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Year-end and month-end closing",
	}
	closeCmd.AddCommand(newCloseYearCommand(opts), newCloseMonthCommand(opts))
	return closeCmd
}

func (b *books) closingEngine() *closing.Engine {
	return closing.NewEngine(b.chart, b.store, closing.Options{
		RetainedEarnings: b.cfg.Books.RetainedEarnings,
		Marker:           b.cfg.Books.ClosingMarker,
		Logger:           b.logger,
	})
}

func newCloseYearCommand(opts *rootOptions) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "year <year>",
		Short: "Close revenue and expense accounts into retained earnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing year %q: %w", args[0], err)
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			f, err := b.formatter()
			if err != nil {
				return err
			}
			engine := b.closingEngine()
			out := cmd.OutOrStdout()

			var result closing.Result
			if preview {
				book, err := b.store.Book()
				if err != nil {
					return err
				}
				result = engine.Preview(book, year)
			} else {
				if result, err = engine.CloseYear(year); err != nil {
					return err
				}
			}

			if !result.Success {
				return errors.New(result.Message)
			}

			fmt.Fprintf(out, "%s, net income %s\n", result.Message, f.Amount(result.NetIncome))
			for _, e := range result.Transaction.Entries {
				fmt.Fprintf(out, "  %-6s %-40s %s %s\n", e.AccountCode, b.chart.Name(e.AccountCode), e.Type, f.Amount(e.Amount))
			}
			if preview {
				fmt.Fprintln(out, "Preview only, nothing recorded.")
				return nil
			}

			b.audit(auditlog.ActionCloseYear, fmt.Sprintf("Closed %d, net income %s", year, result.NetIncome), result.Transaction.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "show the closing entries without recording them")
	return cmd
}

func newCloseMonthCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "month <YYYY-MM>",
		Short: "Mark a month closed so its transactions become opening balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := model.ParseMonthKey(args[0]); err != nil {
				return err
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			result, err := b.closingEngine().CloseMonth(args[0])
			if err != nil {
				return err
			}
			if !result.Success {
				return errors.New(result.Message)
			}

			b.audit(auditlog.ActionCloseMonth, "Closed "+result.Month, "")
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}
