package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/closebooks/internal/model"
)

func sampleLog() []model.Transaction {
	return []model.Transaction{
		{
			ID:          "2025-01-001",
			Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: "Rent, January",
			Entries: []model.Entry{
				{AccountCode: "502", Type: model.Debit, Amount: decimal.RequireFromString("1200.50")},
				{AccountCode: "102", Type: model.Credit, Amount: decimal.RequireFromString("1200.50")},
			},
		},
		{
			ID:          "close-2025",
			Date:        time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			Description: "[Year-End Closing] Close books for 2025",
			Posted:      model.Bool(true),
			Kind:        model.KindClosing,
			ClosingYear: 2025,
			Entries: []model.Entry{
				{AccountCode: "502", Type: model.Credit, Amount: decimal.RequireFromString("1200.5")},
				{AccountCode: "303", Type: model.Debit, Amount: decimal.RequireFromString("1200.5")},
			},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sampleLog()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, Header, lines[0])
	assert.Contains(t, lines[1], `"Rent, January"`)

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2025-01-001", got[0].ID)
	assert.Nil(t, got[0].Posted)
	require.Len(t, got[0].Entries, 2)
	assert.True(t, got[0].Entries[0].Amount.Equal(decimal.RequireFromString("1200.5")))

	assert.True(t, got[1].IsClosing())
	assert.Equal(t, 2025, got[1].ClosingYear)
	require.NotNil(t, got[1].Posted)
	assert.True(t, *got[1].Posted)
}

func TestReadTransactions_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad date", "x,15/01/2025,d,101,debit,1,,,,"},
		{"bad amount", "x,2025-01-15,d,101,debit,abc,,,,"},
		{"bad posted", "x,2025-01-15,d,101,debit,1,maybe,,,"},
		{"bad closing year", "x,2025-01-15,d,101,debit,1,,,twenty,"},
		{"short row", "x,2025-01-15,d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTransactions(strings.NewReader(Header + "\n" + tt.row + "\n"))
			assert.Error(t, err)
		})
	}
}

func TestBlobRoundTrip(t *testing.T) {
	book := model.Book{
		Transactions: sampleLog(),
		ClosedMonths: map[string]bool{"2025-02": true, "2025-01": true, "2025-03": false},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBook(&buf, book))
	assert.Contains(t, buf.String(), `"closedMonths": [
    "2025-01",
    "2025-02"
  ]`)

	got, err := ReadBook(&buf)
	require.NoError(t, err)
	assert.Len(t, got.Transactions, 2)
	assert.Equal(t, map[string]bool{"2025-01": true, "2025-02": true}, got.ClosedMonths)
	assert.True(t, got.Transactions[1].IsClosing())
}

func TestReadBook_OriginalShape(t *testing.T) {
	raw := `{"transactions":[{"id":"trx-1700000000000","date":"2025-01-01",
		"description":"Setoran modal","entries":[
		{"accountCode":"102","type":"debit","amount":1000000000},
		{"accountCode":"301","type":"credit","amount":1000000000}]}],
		"closedMonths":["2025-01"]}`

	book, err := ReadBook(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, book.Transactions, 1)
	assert.True(t, book.IsMonthClosed("2025-01"))

	_, err = ReadBook(strings.NewReader(`{"transactions":[],"closedMonths":["Jan"]}`))
	assert.Error(t, err)
}

func TestWriteBook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBook(&buf, model.Book{}))
	assert.Contains(t, buf.String(), `"transactions": []`)
	assert.Contains(t, buf.String(), `"closedMonths": []`)
}

func TestTemplates(t *testing.T) {
	chart := newMockAccounts()
	for _, code := range []string{"101", "102", "103", "104", "121", "122", "132", "201", "203", "301", "302",
		"401", "402", "403", "404", "405", "406",
		"501", "502", "503", "504", "506", "507", "508", "509", "511", "512", "513", "514", "515"} {
		chart[code] = true
	}

	seen := map[string]bool{}
	for _, tmpl := range Templates() {
		assert.False(t, seen[tmpl.ID], "duplicate template %s", tmpl.ID)
		seen[tmpl.ID] = true

		p := tmpl.Params(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1), "")
		assert.Empty(t, Validate(p, chart), tmpl.ID)
	}

	tmpl, ok := LookupTemplate("IN_LOAN")
	require.True(t, ok)
	assert.Equal(t, "203", tmpl.Credit)
}
