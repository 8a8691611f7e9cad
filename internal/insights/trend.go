package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

// MonthSummary is revenue, expense and profit for one month.
type MonthSummary struct {
	Revenue decimal.Decimal
	Expense decimal.Decimal
	Profit  decimal.Decimal
}

func zeroSummary() MonthSummary {
	return MonthSummary{Revenue: decimal.Zero, Expense: decimal.Zero, Profit: decimal.Zero}
}

// Composition is one revenue account's share of the year's credits.
type Composition struct {
	Code   string
	Name   string
	Amount decimal.Decimal
}

// Trend is the monthly breakdown of a year.
type Trend struct {
	Year               int
	Months             [12]MonthSummary
	Totals             MonthSummary
	TransactionCount   int
	RevenueComposition []Composition
}

// YearTrend computes per-month revenue and expense for year, classifying
// accounts by type. Closing transactions are left out so December keeps its
// operating figures.
func YearTrend(chart ledger.Chart, txns []model.Transaction, year int) Trend {
	t := Trend{Year: year, Totals: zeroSummary()}
	for i := range t.Months {
		t.Months[i] = zeroSummary()
	}
	composition := make(map[string]decimal.Decimal)

	for _, txn := range txns {
		if txn.Date.Year() != year || txn.IsClosing() {
			continue
		}
		t.TransactionCount++
		m := &t.Months[txn.Date.Month()-1]

		for _, entry := range txn.Entries {
			acct, ok := chart.Get(entry.AccountCode)
			if !ok {
				continue
			}
			switch acct.Type {
			case model.AccountTypeRevenue:
				if entry.Type == model.Credit {
					m.Revenue = m.Revenue.Add(entry.Amount)
					composition[acct.Code] = composition[acct.Code].Add(entry.Amount)
				} else {
					m.Revenue = m.Revenue.Sub(entry.Amount)
				}
			case model.AccountTypeExpense:
				if entry.Type == model.Debit {
					m.Expense = m.Expense.Add(entry.Amount)
				} else {
					m.Expense = m.Expense.Sub(entry.Amount)
				}
			}
		}
	}

	for i := range t.Months {
		m := &t.Months[i]
		m.Profit = m.Revenue.Sub(m.Expense)
		t.Totals.Revenue = t.Totals.Revenue.Add(m.Revenue)
		t.Totals.Expense = t.Totals.Expense.Add(m.Expense)
		t.Totals.Profit = t.Totals.Profit.Add(m.Profit)
	}

	for code, amount := range composition {
		acct, _ := chart.Get(code)
		t.RevenueComposition = append(t.RevenueComposition, Composition{Code: code, Name: acct.Name, Amount: amount})
	}
	sort.Slice(t.RevenueComposition, func(i, j int) bool {
		a, b := t.RevenueComposition[i], t.RevenueComposition[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Code < b.Code
	})
	return t
}
