// Package reports builds and renders the full set of financial reports.
package reports

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

// Pack is every report for one period, derived from one book snapshot.
type Pack struct {
	Period          ledger.Period
	TrialBalance    ledger.TrialBalance
	IncomeStatement ledger.IncomeStatement
	BalanceSheet    ledger.BalanceSheet
	GeneralLedger   []ledger.LedgerAccount
	Journal         []ledger.JournalLine
}

// Options selects what the general ledger covers.
type Options struct {
	IncludeUnposted bool
}

// Builder derives report packs with a ledger engine.
type Builder struct {
	engine *ledger.Engine
}

// NewBuilder creates a Builder.
func NewBuilder(engine *ledger.Engine) *Builder {
	return &Builder{engine: engine}
}

// Build derives all reports for month concurrently. The balance sheet waits
// on the income statement for its net income line.
func (b *Builder) Build(ctx context.Context, book model.Book, month string, opts Options) (Pack, error) {
	period := ledger.Period{Month: month, ClosedMonths: book.ClosedMonths}
	txns := book.Transactions
	pack := Pack{Period: period}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pack.TrialBalance = b.engine.TrialBalance(txns, period)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pack.IncomeStatement = b.engine.IncomeStatement(txns, period)
		pack.BalanceSheet = b.engine.BalanceSheet(txns, period, pack.IncomeStatement.NetIncome)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ledgerTxns := txns
		if !opts.IncludeUnposted {
			ledgerTxns = ledger.PostedTransactions(book)
		}
		pack.GeneralLedger = b.engine.GeneralLedger(ledgerTxns)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		pack.Journal = b.engine.JournalEntries(txns)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Pack{}, fmt.Errorf("building reports for %s: %w", month, err)
	}
	return pack, nil
}
