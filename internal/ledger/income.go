package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Amounts is a start/movement/end triple.
type Amounts struct {
	Start decimal.Decimal
	Move  decimal.Decimal
	End   decimal.Decimal
}

// ZeroAmounts returns an Amounts with all columns at zero.
func ZeroAmounts() Amounts {
	return Amounts{Start: decimal.Zero, Move: decimal.Zero, End: decimal.Zero}
}

// Add returns the column-wise sum.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{Start: a.Start.Add(b.Start), Move: a.Move.Add(b.Move), End: a.End.Add(b.End)}
}

// Sub returns the column-wise difference.
func (a Amounts) Sub(b Amounts) Amounts {
	return Amounts{Start: a.Start.Sub(b.Start), Move: a.Move.Sub(b.Move), End: a.End.Sub(b.End)}
}

// Neg flips the sign of every column.
func (a Amounts) Neg() Amounts {
	return Amounts{Start: a.Start.Neg(), Move: a.Move.Neg(), End: a.End.Neg()}
}

// IsZero reports whether every column is zero.
func (a Amounts) IsZero() bool {
	return a.Start.IsZero() && a.Move.IsZero() && a.End.IsZero()
}

// LineItem is one account line of a statement.
type LineItem struct {
	Code string
	Name string
	Amounts
}

// IncomeTotals holds the revenue and expense totals of an income statement.
type IncomeTotals struct {
	Revenue Amounts
	Expense Amounts
}

// IncomeStatement lists revenue and expense lines with their totals.
type IncomeStatement struct {
	Period    Period
	Revenues  []LineItem
	Expenses  []LineItem
	Totals    IncomeTotals
	NetIncome Amounts
}

// IncomeStatement derives revenue and expense performance. Closing
// transactions are excluded so the statement reflects the pre-closing state.
func (e *Engine) IncomeStatement(txns []model.Transaction, period Period) IncomeStatement {
	var open []model.Transaction
	for _, txn := range txns {
		if !txn.IsClosing() {
			open = append(open, txn)
		}
	}

	is := IncomeStatement{
		Period: period,
		Totals: IncomeTotals{Revenue: ZeroAmounts(), Expense: ZeroAmounts()},
	}
	for _, s := range e.Aggregate(open, period).All() {
		var amounts Amounts
		switch s.Type {
		case model.AccountTypeRevenue:
			amounts = s.Net().Neg()
		case model.AccountTypeExpense:
			amounts = s.Net()
		default:
			continue
		}
		if amounts.IsZero() {
			continue
		}

		item := LineItem{Code: s.Code, Name: s.Name, Amounts: amounts}
		if s.Type == model.AccountTypeRevenue {
			is.Revenues = append(is.Revenues, item)
			is.Totals.Revenue = is.Totals.Revenue.Add(amounts)
		} else {
			is.Expenses = append(is.Expenses, item)
			is.Totals.Expense = is.Totals.Expense.Add(amounts)
		}
	}
	is.NetIncome = is.Totals.Revenue.Sub(is.Totals.Expense)
	return is
}
