package ledger

import "github.com/cleared-dev/closebooks/internal/model"

// CurrentPeriodProfitName labels the equity line carrying net income.
const CurrentPeriodProfitName = "Current Period Profit/Loss"

// BalanceSheetTotals holds per-section totals.
type BalanceSheetTotals struct {
	Assets      Amounts
	Liabilities Amounts
	Equity      Amounts
}

// BalanceSheet lists asset, liability and equity lines with their totals.
type BalanceSheet struct {
	Period      Period
	Assets      []LineItem
	Liabilities []LineItem
	Equity      []LineItem
	Totals      BalanceSheetTotals
}

// Check returns assets minus liabilities plus equity per column. A balanced
// sheet yields zero in every column.
func (bs BalanceSheet) Check() Amounts {
	return bs.Totals.Assets.Sub(bs.Totals.Liabilities.Add(bs.Totals.Equity))
}

// BalanceSheet derives the financial position for a period. The supplied
// net income is appended to equity as a synthetic line.
func (e *Engine) BalanceSheet(txns []model.Transaction, period Period, netIncome Amounts) BalanceSheet {
	bs := BalanceSheet{
		Period: period,
		Totals: BalanceSheetTotals{
			Assets:      ZeroAmounts(),
			Liabilities: ZeroAmounts(),
			Equity:      ZeroAmounts(),
		},
	}

	for _, s := range e.Aggregate(txns, period).All() {
		var amounts Amounts
		switch s.Type {
		case model.AccountTypeAsset:
			amounts = s.Net()
		case model.AccountTypeLiability, model.AccountTypeEquity:
			amounts = s.Net().Neg()
		default:
			continue
		}
		if amounts.IsZero() {
			continue
		}

		item := LineItem{Code: s.Code, Name: s.Name, Amounts: amounts}
		switch s.Type {
		case model.AccountTypeAsset:
			bs.Assets = append(bs.Assets, item)
			bs.Totals.Assets = bs.Totals.Assets.Add(amounts)
		case model.AccountTypeLiability:
			bs.Liabilities = append(bs.Liabilities, item)
			bs.Totals.Liabilities = bs.Totals.Liabilities.Add(amounts)
		default:
			bs.Equity = append(bs.Equity, item)
			bs.Totals.Equity = bs.Totals.Equity.Add(amounts)
		}
	}

	bs.Equity = append(bs.Equity, LineItem{Name: CurrentPeriodProfitName, Amounts: netIncome})
	bs.Totals.Equity = bs.Totals.Equity.Add(netIncome)
	return bs
}
