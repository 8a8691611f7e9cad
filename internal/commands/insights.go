package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/insights"
	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/reports"
)

func newInsightsCommand(opts *rootOptions) *cobra.Command {
	var month string
	var year int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show period KPIs, findings and the monthly trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			label, err := b.reportMonth(month)
			if err != nil {
				return err
			}
			if year == 0 {
				year, _ = strconv.Atoi(label[:4])
			}
			book, err := b.store.Book()
			if err != nil {
				return err
			}
			f, err := b.formatter()
			if err != nil {
				return err
			}

			period := ledger.Period{Month: label, ClosedMonths: book.ClosedMonths}
			analysis := insights.Analyze(ledger.NewEngine(b.chart), book.Transactions, period, f)
			trend := insights.YearTrend(b.chart, book.Transactions, year)

			out := cmd.OutOrStdout()
			writeAnalysis(out, f, label, analysis)
			fmt.Fprintln(out)
			return writeTrend(out, f, trend)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "reference month label, YYYY-MM (default config or current month)")
	cmd.Flags().IntVar(&year, "year", 0, "trend year (default the reference month's year)")
	return cmd
}

func writeAnalysis(w io.Writer, f *reports.Formatter, label string, a insights.Analysis) {
	k := a.KPI
	fmt.Fprintf(w, "Insights %s\n\n", label)
	fmt.Fprintf(w, "Revenue:       %s\n", f.Amount(k.Revenue))
	fmt.Fprintf(w, "Expenses:      %s\n", f.Amount(k.Expenses))
	fmt.Fprintf(w, "Net profit:    %s\n", f.Amount(k.NetProfit))
	fmt.Fprintf(w, "Profit margin: %s\n", f.Percent(k.ProfitMargin))
	for i, e := range k.TopExpenses {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, e.Name, f.Amount(e.Amount))
	}
	fmt.Fprintln(w)
	for _, in := range a.Insights {
		fmt.Fprintf(w, "[%s] %s: %s\n", strings.ToUpper(string(in.Level)), in.Title, in.Message)
	}
}

func writeTrend(w io.Writer, f *reports.Formatter, t insights.Trend) error {
	fmt.Fprintf(w, "Trend %d (%d transactions)\n\n", t.Year, t.TransactionCount)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tRevenue\tExpense\tProfit\t")
	for i, m := range t.Months {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", time.Month(i+1).String()[:3], f.Amount(m.Revenue), f.Amount(m.Expense), f.Amount(m.Profit))
	}
	fmt.Fprintf(tw, "Total\t%s\t%s\t%s\t\n", f.Amount(t.Totals.Revenue), f.Amount(t.Totals.Expense), f.Amount(t.Totals.Profit))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(t.RevenueComposition) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nRevenue by account")
	for _, c := range t.RevenueComposition {
		fmt.Fprintf(w, "  %s %s %s\n", c.Code, c.Name, f.Amount(c.Amount))
	}
	return nil
}
