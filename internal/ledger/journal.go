package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// UnknownAccountName labels journal lines whose code is not in the chart.
const UnknownAccountName = "Unknown Account"

// JournalLine is one entry of the flattened journal.
type JournalLine struct {
	TransactionID string
	Date          time.Time
	Description   string
	AccountCode   string
	AccountName   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// JournalEntries flattens txns into one line per entry in date order.
// Unlike the other derivations, unknown account codes are kept.
func (e *Engine) JournalEntries(txns []model.Transaction) []JournalLine {
	var lines []JournalLine
	for _, txn := range byDate(txns) {
		for _, entry := range txn.Entries {
			name := UnknownAccountName
			if a, ok := e.chart.Get(entry.AccountCode); ok {
				name = a.Name
			}
			lines = append(lines, JournalLine{
				TransactionID: txn.ID,
				Date:          txn.Date,
				Description:   txn.Description,
				AccountCode:   entry.AccountCode,
				AccountName:   name,
				Debit:         entry.DebitAmount(),
				Credit:        entry.CreditAmount(),
			})
		}
	}
	return lines
}
