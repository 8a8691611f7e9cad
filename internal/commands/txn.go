package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/auditlog"
	"github.com/cleared-dev/closebooks/internal/journal"
	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

func newTxnCommand(opts *rootOptions) *cobra.Command {
	txnCmd := &cobra.Command{
		Use:   "txn",
		Short: "Record, reverse and list transactions",
	}
	txnCmd.AddCommand(
		newTxnAddCommand(opts),
		newTxnTemplateCommand(opts),
		newTxnTemplatesCommand(),
		newTxnReverseCommand(opts),
		newTxnListCommand(opts),
	)
	return txnCmd
}

func newTxnAddCommand(opts *rootOptions) *cobra.Command {
	var date, description string
	var debits, credits []string
	var opening bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a balanced transaction",
		Example: `  closebooks txn add --date 2025-03-01 --desc "Owner investment" \
    --debit 101=1000000 --credit 301=1000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := journal.TransactionParams{Description: description}

			var err error
			if params.Date, err = parseDate(date); err != nil {
				return err
			}
			for _, raw := range debits {
				e, err := parseEntry(raw, model.Debit)
				if err != nil {
					return err
				}
				params.Entries = append(params.Entries, e)
			}
			for _, raw := range credits {
				e, err := parseEntry(raw, model.Credit)
				if err != nil {
					return err
				}
				params.Entries = append(params.Entries, e)
			}
			if opening {
				params.Posted = model.Bool(true)
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			txn, err := journal.NewService(b.store, b.chart, b.logger).Record(params)
			if err != nil {
				return err
			}
			b.audit(auditlog.ActionRecord, txn.Description, txn.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&description, "desc", "", "description (required)")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit entry CODE=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit entry CODE=AMOUNT (repeatable)")
	cmd.Flags().BoolVar(&opening, "opening", false, "record as an opening balance")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("desc")

	return cmd
}

// parseEntry parses a CODE=AMOUNT flag value.
func parseEntry(raw string, side model.EntryType) (journal.EntryParams, error) {
	code, amount, ok := strings.Cut(raw, "=")
	if !ok {
		return journal.EntryParams{}, fmt.Errorf("entry %q: expected CODE=AMOUNT", raw)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return journal.EntryParams{}, fmt.Errorf("entry %q: parsing amount: %w", raw, err)
	}
	return journal.EntryParams{AccountCode: strings.TrimSpace(code), Type: side, Amount: d}, nil
}

func newTxnTemplateCommand(opts *rootOptions) *cobra.Command {
	var date, description, amount string

	cmd := &cobra.Command{
		Use:   "template <id>",
		Short: "Record a transaction from a built-in template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			txn, err := journal.NewService(b.store, b.chart, b.logger).RecordTemplate(args[0], d, amt, description)
			if err != nil {
				return err
			}
			b.audit(auditlog.ActionRecord, args[0]+": "+txn.Description, txn.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	cmd.Flags().StringVar(&description, "desc", "", "description, defaults to the template's")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTxnTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List built-in transaction templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDEBIT\tCREDIT")
			for _, t := range journal.Templates() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Debit, t.Credit)
			}
			return tw.Flush()
		},
	}
}

func newTxnReverseCommand(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reverse <txn-id>",
		Short: "Record a reversing transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			txn, err := journal.NewService(b.store, b.chart, b.logger).Reverse(args[0], d)
			if err != nil {
				return err
			}
			b.audit(auditlog.ActionReverse, "Reverse "+args[0], txn.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "Reversed %s as %s\n", args[0], txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "reversal date, YYYY-MM-DD (default today)")
	return cmd
}

func newTxnListCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in log order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" {
				if _, err := model.ParseMonthKey(month); err != nil {
					return err
				}
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			book, err := b.store.Book()
			if err != nil {
				return err
			}
			f, err := b.formatter()
			if err != nil {
				return err
			}

			var txns []model.Transaction
			for _, txn := range book.Transactions {
				if month == "" || txn.Month() == month {
					txns = append(txns, txn)
				}
			}
			return writeTransactions(cmd.OutOrStdout(), f.Amount, book, txns)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only list transactions of this month, YYYY-MM")
	return cmd
}

func writeTransactions(w io.Writer, amount func(decimal.Decimal) string, book model.Book, txns []model.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tAMOUNT\tSTATUS\t")
	for _, txn := range txns {
		debit, _ := txn.Totals()
		status := "current"
		switch {
		case txn.IsClosing():
			status = "closing"
		case ledger.IsOpening(txn, book.ClosedMonths):
			status = "opening"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", txn.ID, txn.Date.Format(model.DateFormat), txn.Description, amount(debit), status)
	}
	return tw.Flush()
}
