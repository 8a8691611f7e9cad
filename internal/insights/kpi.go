// Package insights derives rule-based KPIs and narrative findings from the
// current period's movement, plus a monthly trend for a year.
package insights

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

// Level classifies an insight.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelNeutral Level = "neutral"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// topExpenseCount is how many expense lines KPI.TopExpenses keeps.
const topExpenseCount = 3

// AmountFormatter renders amounts and percentages for messages.
type AmountFormatter interface {
	Amount(d decimal.Decimal) string
	Percent(d decimal.Decimal) string
}

// ExpenseLine is one expense account's net movement.
type ExpenseLine struct {
	Code   string
	Name   string
	Amount decimal.Decimal
}

// KPI summarizes the period's movement columns.
type KPI struct {
	Revenue      decimal.Decimal
	Expenses     decimal.Decimal
	NetProfit    decimal.Decimal
	TopExpenses  []ExpenseLine
	ProfitMargin decimal.Decimal // percent of revenue, zero without revenue
}

// Insight is one narrative finding.
type Insight struct {
	Level   Level
	Title   string
	Message string
}

// Analysis pairs the KPIs with their findings.
type Analysis struct {
	KPI      KPI
	Insights []Insight
}

var hundred = decimal.NewFromInt(100)

// CalculateKPI computes revenue, expenses and profit from movement columns.
func CalculateKPI(balances ledger.Balances) KPI {
	kpi := KPI{Revenue: decimal.Zero, Expenses: decimal.Zero, ProfitMargin: decimal.Zero}
	var expenses []ExpenseLine

	for _, s := range balances.All() {
		switch s.Type {
		case model.AccountTypeRevenue:
			kpi.Revenue = kpi.Revenue.Add(s.MovementCredit.Sub(s.MovementDebit))
		case model.AccountTypeExpense:
			net := s.MovementDebit.Sub(s.MovementCredit)
			kpi.Expenses = kpi.Expenses.Add(net)
			if net.IsPositive() {
				expenses = append(expenses, ExpenseLine{Code: s.Code, Name: s.Name, Amount: net})
			}
		}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount)
	})
	if len(expenses) > topExpenseCount {
		expenses = expenses[:topExpenseCount]
	}
	kpi.TopExpenses = expenses

	kpi.NetProfit = kpi.Revenue.Sub(kpi.Expenses)
	if kpi.Revenue.IsPositive() {
		kpi.ProfitMargin = kpi.NetProfit.Div(kpi.Revenue).Mul(hundred)
	}
	return kpi
}

// GenerateInsights turns KPIs into findings.
func GenerateInsights(kpi KPI, f AmountFormatter) []Insight {
	if kpi.Revenue.IsZero() && kpi.Expenses.IsZero() {
		return []Insight{{
			Level:   LevelInfo,
			Title:   "No Data Yet",
			Message: "No revenue or expense transactions this period. Record some to get an analysis.",
		}}
	}

	var insights []Insight
	switch kpi.NetProfit.Sign() {
	case 1:
		insights = append(insights, Insight{
			Level:   LevelSuccess,
			Title:   "Profitable Period",
			Message: fmt.Sprintf("Net profit of %s this period, a margin of %s.", f.Amount(kpi.NetProfit), f.Percent(kpi.ProfitMargin)),
		})
	case -1:
		insights = append(insights, Insight{
			Level:   LevelWarning,
			Title:   "Net Loss",
			Message: fmt.Sprintf("Expenses exceeded revenue by %s this period. Look at raising revenue or cutting costs.", f.Amount(kpi.NetProfit.Abs())),
		})
	default:
		insights = append(insights, Insight{
			Level:   LevelNeutral,
			Title:   "Break Even",
			Message: "Revenue exactly matches expenses. No profit and no loss.",
		})
	}

	if kpi.Revenue.IsPositive() {
		insights = append(insights, Insight{
			Level:   LevelInfo,
			Title:   "Revenue",
			Message: fmt.Sprintf("Total revenue recorded: %s.", f.Amount(kpi.Revenue)),
		})
	} else {
		insights = append(insights, Insight{
			Level:   LevelDanger,
			Title:   "No Revenue",
			Message: "No income recorded this period. Make sure all sales have been entered.",
		})
	}

	if len(kpi.TopExpenses) > 0 {
		top := kpi.TopExpenses[0]
		share := decimal.Zero
		if kpi.Expenses.IsPositive() {
			share = top.Amount.Div(kpi.Expenses).Mul(hundred)
		}
		insights = append(insights, Insight{
			Level: LevelWarning,
			Title: "Largest Expense",
			Message: fmt.Sprintf("The largest expense is %s (%s), %s of total expenses. Check whether it can be reduced.",
				top.Name, f.Amount(top.Amount), f.Percent(share)),
		})
	}
	return insights
}

// Analyze aggregates txns for period and returns KPIs with findings.
func Analyze(engine *ledger.Engine, txns []model.Transaction, period ledger.Period, f AmountFormatter) Analysis {
	kpi := CalculateKPI(engine.Aggregate(txns, period))
	return Analysis{KPI: kpi, Insights: GenerateInsights(kpi, f)}
}
