package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/closebooks/internal/accounts"
	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

type plainFormatter struct{}

func (plainFormatter) Amount(d decimal.Decimal) string  { return d.StringFixed(2) }
func (plainFormatter) Percent(d decimal.Decimal) string { return d.StringFixed(1) + "%" }

func newTestChart() *accounts.Service {
	return accounts.NewService(accounts.DefaultChart("small_business"))
}

func txn(date time.Time, debit, credit string, amount int64) model.Transaction {
	return model.Transaction{
		Date:        date,
		Description: "t",
		Entries: []model.Entry{
			{AccountCode: debit, Type: model.Debit, Amount: decimal.NewFromInt(amount)},
			{AccountCode: credit, Type: model.Credit, Amount: decimal.NewFromInt(amount)},
		},
	}
}

func march(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestAnalyze_Profit(t *testing.T) {
	engine := ledger.NewEngine(newTestChart())
	txns := []model.Transaction{
		txn(march(1), "101", "401", 1000),
		txn(march(2), "501", "102", 300),
		txn(march(3), "502", "102", 100),
		txn(march(4), "503", "101", 50),
		txn(march(5), "504", "101", 25),
	}

	a := Analyze(engine, txns, ledger.Period{Month: "2025-03"}, plainFormatter{})

	assert.True(t, a.KPI.Revenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, a.KPI.Expenses.Equal(decimal.NewFromInt(475)))
	assert.True(t, a.KPI.NetProfit.Equal(decimal.NewFromInt(525)))
	assert.Equal(t, "52.5", a.KPI.ProfitMargin.StringFixed(1))

	require.Len(t, a.KPI.TopExpenses, 3)
	assert.Equal(t, "501", a.KPI.TopExpenses[0].Code)
	assert.Equal(t, "502", a.KPI.TopExpenses[1].Code)
	assert.Equal(t, "503", a.KPI.TopExpenses[2].Code)

	require.Len(t, a.Insights, 3)
	assert.Equal(t, LevelSuccess, a.Insights[0].Level)
	assert.Contains(t, a.Insights[0].Message, "525.00")
	assert.Contains(t, a.Insights[0].Message, "52.5%")
	assert.Equal(t, LevelInfo, a.Insights[1].Level)
	assert.Contains(t, a.Insights[2].Message, "Salaries & Wages Expense")
	assert.Contains(t, a.Insights[2].Message, "63.2%")
}

func TestAnalyze_MovementOnly(t *testing.T) {
	engine := ledger.NewEngine(newTestChart())
	posted := txn(march(1), "101", "401", 1000)
	posted.Posted = model.Bool(true)

	a := Analyze(engine, []model.Transaction{posted}, ledger.Period{}, plainFormatter{})
	assert.True(t, a.KPI.Revenue.IsZero())
	require.Len(t, a.Insights, 1)
	assert.Equal(t, "No Data Yet", a.Insights[0].Title)
}

func TestGenerateInsights_LossAndNoRevenue(t *testing.T) {
	kpi := KPI{
		Revenue:      decimal.Zero,
		Expenses:     decimal.NewFromInt(80),
		NetProfit:    decimal.NewFromInt(-80),
		ProfitMargin: decimal.Zero,
		TopExpenses:  []ExpenseLine{{Code: "502", Name: "Rent Expense", Amount: decimal.NewFromInt(80)}},
	}

	insights := GenerateInsights(kpi, plainFormatter{})
	require.Len(t, insights, 3)
	assert.Equal(t, LevelWarning, insights[0].Level)
	assert.Contains(t, insights[0].Message, "80.00")
	assert.Equal(t, LevelDanger, insights[1].Level)
	assert.Contains(t, insights[2].Message, "100.0%")
}

func TestGenerateInsights_BreakEven(t *testing.T) {
	kpi := KPI{
		Revenue:   decimal.NewFromInt(50),
		Expenses:  decimal.NewFromInt(50),
		NetProfit: decimal.Zero,
	}

	insights := GenerateInsights(kpi, plainFormatter{})
	require.Len(t, insights, 2)
	assert.Equal(t, LevelNeutral, insights[0].Level)
}

func TestYearTrend(t *testing.T) {
	chart := newTestChart()
	closing := txn(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "401", "303", 1000)
	closing.Kind = model.KindClosing

	txns := []model.Transaction{
		txn(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "101", "401", 1000),
		txn(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), "101", "405", 200),
		txn(time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), "502", "102", 300),
		txn(time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC), "401", "101", 100),
		txn(time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC), "101", "401", 999),
		closing,
	}

	trend := YearTrend(chart, txns, 2025)
	assert.Equal(t, 4, trend.TransactionCount)
	assert.True(t, trend.Months[0].Revenue.Equal(decimal.NewFromInt(1200)))
	assert.True(t, trend.Months[0].Profit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, trend.Months[1].Revenue.Equal(decimal.NewFromInt(-100)))
	assert.True(t, trend.Months[1].Expense.Equal(decimal.NewFromInt(300)))
	assert.True(t, trend.Months[11].Revenue.IsZero())
	assert.True(t, trend.Totals.Profit.Equal(decimal.NewFromInt(800)))

	require.Len(t, trend.RevenueComposition, 2)
	assert.Equal(t, "401", trend.RevenueComposition[0].Code)
	assert.Equal(t, "Service Revenue", trend.RevenueComposition[0].Name)
	assert.True(t, trend.RevenueComposition[1].Amount.Equal(decimal.NewFromInt(200)))
}
