package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/closebooks/internal/accounts"
	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

func newTestBuilder() *Builder {
	chart := accounts.NewService([]model.Account{
		{Code: "101", Name: "Cash", Type: model.AccountTypeAsset},
		{Code: "301", Name: "Capital", Type: model.AccountTypeEquity},
		{Code: "401", Name: "Revenue", Type: model.AccountTypeRevenue},
		{Code: "501", Name: "Expense", Type: model.AccountTypeExpense},
	})
	return NewBuilder(ledger.NewEngine(chart))
}

func scenarioBook() model.Book {
	mk := func(id string, day int, debit, credit string, amount int64) model.Transaction {
		return model.Transaction{
			ID:          id,
			Date:        time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
			Description: id,
			Entries: []model.Entry{
				{AccountCode: debit, Type: model.Debit, Amount: decimal.NewFromInt(amount)},
				{AccountCode: credit, Type: model.Credit, Amount: decimal.NewFromInt(amount)},
			},
		}
	}
	capital := mk("a", 1, "101", "301", 1_000_000)
	capital.Posted = model.Bool(true)
	return model.Book{Transactions: []model.Transaction{
		capital,
		mk("b", 5, "101", "401", 500_000),
		mk("c", 9, "501", "101", 200_000),
	}}
}

func TestBuild(t *testing.T) {
	pack, err := newTestBuilder().Build(context.Background(), scenarioBook(), "2025-01", Options{})
	require.NoError(t, err)

	assert.Equal(t, "2025-01", pack.Period.Month)
	assert.Len(t, pack.TrialBalance.Rows, 4)
	assert.True(t, pack.IncomeStatement.NetIncome.End.Equal(decimal.NewFromInt(300_000)))
	assert.True(t, pack.BalanceSheet.Check().IsZero())
	assert.Len(t, pack.Journal, 6)

	// Only the posted capital transaction reaches the general ledger.
	require.Len(t, pack.GeneralLedger, 2)
	assert.Len(t, pack.GeneralLedger[0].Postings, 1)
}

func TestBuild_IncludeUnposted(t *testing.T) {
	pack, err := newTestBuilder().Build(context.Background(), scenarioBook(), "2025-01", Options{IncludeUnposted: true})
	require.NoError(t, err)
	require.Len(t, pack.GeneralLedger, 4)
	assert.Len(t, pack.GeneralLedger[0].Postings, 3)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestBuilder().Build(ctx, scenarioBook(), "2025-01", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatter(t *testing.T) {
	f, err := NewFormatter("en-US")
	require.NoError(t, err)

	assert.Equal(t, "1,300,000.00", f.Amount(decimal.NewFromInt(1_300_000)))
	assert.Equal(t, "0.10", f.Amount(decimal.RequireFromString("0.1")))
	assert.Equal(t, "60.0%", f.Percent(decimal.NewFromInt(60)))
	assert.Equal(t, "Asset", f.Title("asset"))

	_, err = NewFormatter("not a locale!")
	assert.Error(t, err)
}

func TestWritePack(t *testing.T) {
	pack, err := newTestBuilder().Build(context.Background(), scenarioBook(), "2025-01", Options{IncludeUnposted: true})
	require.NoError(t, err)
	f, err := NewFormatter("en-US")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePack(&buf, f, pack))
	out := buf.String()

	assert.Contains(t, out, "Trial Balance 2025-01")
	assert.Contains(t, out, "Income Statement 2025-01")
	assert.Contains(t, out, "Balance Sheet 2025-01")
	assert.Contains(t, out, "General Ledger")
	assert.Contains(t, out, "Journal")
	assert.Contains(t, out, ledger.CurrentPeriodProfitName)
	assert.Contains(t, out, "1,300,000.00")
	assert.Contains(t, out, "101 Cash (Asset)")
	assert.NotContains(t, out, "Out of balance")
}

func TestWriteBalanceSheet_OutOfBalance(t *testing.T) {
	f, err := NewFormatter("en-US")
	require.NoError(t, err)
	bs := ledger.BalanceSheet{
		Totals: ledger.BalanceSheetTotals{
			Assets:      ledger.Amounts{Start: decimal.Zero, Move: decimal.Zero, End: decimal.NewFromInt(10)},
			Liabilities: ledger.ZeroAmounts(),
			Equity:      ledger.ZeroAmounts(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBalanceSheet(&buf, f, bs))
	assert.Contains(t, buf.String(), "Out of balance by 10.00")
}
