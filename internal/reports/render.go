package reports

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// WriteTrialBalance renders a trial balance as an aligned table.
func WriteTrialBalance(w io.Writer, f *Formatter, tb ledger.TrialBalance) error {
	fmt.Fprintf(w, "Trial Balance %s\n\n", tb.Period.Month)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Code\tAccount\tStart Dr\tStart Cr\tMove Dr\tMove Cr\tEnd Dr\tEnd Cr\t")
	for _, r := range tb.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", r.Code, r.Name,
			f.Amount(r.ViewStartDebit), f.Amount(r.ViewStartCredit),
			f.Amount(r.MovementDebit), f.Amount(r.MovementCredit),
			f.Amount(r.ViewEndDebit), f.Amount(r.ViewEndCredit))
	}
	t := tb.Totals
	fmt.Fprintf(tw, "\tTotal\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		f.Amount(t.StartDebit), f.Amount(t.StartCredit),
		f.Amount(t.MovementDebit), f.Amount(t.MovementCredit),
		f.Amount(t.EndDebit), f.Amount(t.EndCredit))
	return tw.Flush()
}

func writeSection(tw io.Writer, f *Formatter, title string, items []ledger.LineItem, total ledger.Amounts) {
	fmt.Fprintf(tw, "%s\t\t\t\t\n", title)
	for _, item := range items {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t\n", item.Name, f.Amount(item.Start), f.Amount(item.Move), f.Amount(item.End))
	}
	fmt.Fprintf(tw, "Total %s\t%s\t%s\t%s\t\n", title, f.Amount(total.Start), f.Amount(total.Move), f.Amount(total.End))
}

// WriteIncomeStatement renders revenue, expense and net income sections.
func WriteIncomeStatement(w io.Writer, f *Formatter, is ledger.IncomeStatement) error {
	fmt.Fprintf(w, "Income Statement %s\n\n", is.Period.Month)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "\tStart\tMovement\tEnd\t")
	writeSection(tw, f, "Revenue", is.Revenues, is.Totals.Revenue)
	writeSection(tw, f, "Expenses", is.Expenses, is.Totals.Expense)
	n := is.NetIncome
	fmt.Fprintf(tw, "Net Income\t%s\t%s\t%s\t\n", f.Amount(n.Start), f.Amount(n.Move), f.Amount(n.End))
	return tw.Flush()
}

// WriteBalanceSheet renders assets, liabilities and equity, and reports an
// out-of-balance difference when there is one.
func WriteBalanceSheet(w io.Writer, f *Formatter, bs ledger.BalanceSheet) error {
	fmt.Fprintf(w, "Balance Sheet %s\n\n", bs.Period.Month)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "\tStart\tMovement\tEnd\t")
	writeSection(tw, f, "Assets", bs.Assets, bs.Totals.Assets)
	writeSection(tw, f, "Liabilities", bs.Liabilities, bs.Totals.Liabilities)
	writeSection(tw, f, "Equity", bs.Equity, bs.Totals.Equity)
	le := bs.Totals.Liabilities.Add(bs.Totals.Equity)
	fmt.Fprintf(tw, "Liabilities + Equity\t%s\t%s\t%s\t\n", f.Amount(le.Start), f.Amount(le.Move), f.Amount(le.End))
	if err := tw.Flush(); err != nil {
		return err
	}
	if diff := bs.Check(); !diff.IsZero() {
		fmt.Fprintf(w, "\nOut of balance by %s (end)\n", f.Amount(diff.End))
	}
	return nil
}

// WriteGeneralLedger renders one block per account with running balances.
func WriteGeneralLedger(w io.Writer, f *Formatter, accts []ledger.LedgerAccount) error {
	fmt.Fprintln(w, "General Ledger")
	for _, a := range accts {
		fmt.Fprintf(w, "\n%s %s (%s)\n", a.Code, a.Name, f.Title(string(a.Type)))
		tw := newTabWriter(w)
		fmt.Fprintln(tw, "Date\tID\tDescription\tDebit\tCredit\tBalance\t")
		for _, p := range a.Postings {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", p.Date.Format(model.DateFormat), p.TransactionID,
				p.Description, f.Amount(p.Debit), f.Amount(p.Credit), f.Amount(p.Balance))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// WriteJournal renders the flattened journal.
func WriteJournal(w io.Writer, f *Formatter, lines []ledger.JournalLine) error {
	fmt.Fprintln(w, "Journal")
	fmt.Fprintln(w)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Date\tID\tDescription\tCode\tAccount\tDebit\tCredit\t")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", l.Date.Format(model.DateFormat), l.TransactionID,
			l.Description, l.AccountCode, l.AccountName, f.Amount(l.Debit), f.Amount(l.Credit))
	}
	return tw.Flush()
}

// WritePack renders every report of a pack in sequence.
func WritePack(w io.Writer, f *Formatter, p Pack) error {
	steps := []func() error{
		func() error { return WriteTrialBalance(w, f, p.TrialBalance) },
		func() error { return WriteIncomeStatement(w, f, p.IncomeStatement) },
		func() error { return WriteBalanceSheet(w, f, p.BalanceSheet) },
		func() error { return WriteGeneralLedger(w, f, p.GeneralLedger) },
		func() error { return WriteJournal(w, f, p.Journal) },
	}
	for i, step := range steps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
