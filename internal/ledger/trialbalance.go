package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// TrialBalanceRow is a snapshot with its start and end columns netted to a
// single side. Movement columns stay raw.
type TrialBalanceRow struct {
	Snapshot
	ViewStartDebit  decimal.Decimal
	ViewStartCredit decimal.Decimal
	ViewEndDebit    decimal.Decimal
	ViewEndCredit   decimal.Decimal
}

// TrialBalanceTotals sums the presented columns of a trial balance.
type TrialBalanceTotals struct {
	StartDebit     decimal.Decimal
	StartCredit    decimal.Decimal
	MovementDebit  decimal.Decimal
	MovementCredit decimal.Decimal
	EndDebit       decimal.Decimal
	EndCredit      decimal.Decimal
}

// TrialBalance is the per-account presentation of a period.
type TrialBalance struct {
	Period Period
	Rows   []TrialBalanceRow
	Totals TrialBalanceTotals
}

// TrialBalance derives the trial balance for a period. Accounts without
// start or movement activity are omitted.
func (e *Engine) TrialBalance(txns []model.Transaction, period Period) TrialBalance {
	tb := TrialBalance{
		Period: period,
		Totals: TrialBalanceTotals{
			StartDebit:     decimal.Zero,
			StartCredit:    decimal.Zero,
			MovementDebit:  decimal.Zero,
			MovementCredit: decimal.Zero,
			EndDebit:       decimal.Zero,
			EndCredit:      decimal.Zero,
		},
	}

	for _, s := range e.Aggregate(txns, period).Active() {
		row := TrialBalanceRow{Snapshot: s}
		row.ViewStartDebit, row.ViewStartCredit = netView(s.StartDebit.Sub(s.StartCredit))
		row.ViewEndDebit, row.ViewEndCredit = netView(s.EndDebit.Sub(s.EndCredit))
		tb.Rows = append(tb.Rows, row)

		t := &tb.Totals
		t.StartDebit = t.StartDebit.Add(row.ViewStartDebit)
		t.StartCredit = t.StartCredit.Add(row.ViewStartCredit)
		t.MovementDebit = t.MovementDebit.Add(s.MovementDebit)
		t.MovementCredit = t.MovementCredit.Add(s.MovementCredit)
		t.EndDebit = t.EndDebit.Add(row.ViewEndDebit)
		t.EndCredit = t.EndCredit.Add(row.ViewEndCredit)
	}
	return tb
}

// netView places a net debit-minus-credit amount on exactly one side.
func netView(net decimal.Decimal) (debit, credit decimal.Decimal) {
	switch net.Sign() {
	case 1:
		return net, decimal.Zero
	case -1:
		return decimal.Zero, net.Neg()
	default:
		return decimal.Zero, decimal.Zero
	}
}
