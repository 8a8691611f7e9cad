package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Posting is one entry in an account's ledger with the balance after it.
type Posting struct {
	TransactionID string
	Date          time.Time
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Balance       decimal.Decimal
}

// LedgerAccount is an account with its chronological postings.
type LedgerAccount struct {
	Code     string
	Name     string
	Type     model.AccountType
	Postings []Posting
	Balance  decimal.Decimal
}

// GeneralLedger groups postings per account in date order with a running
// balance signed by the account's normal side. Only accounts with postings
// are returned, in catalog order.
func (e *Engine) GeneralLedger(txns []model.Transaction) []LedgerAccount {
	accts := e.chart.All()
	ledgers := make([]LedgerAccount, len(accts))
	index := make(map[string]int, len(accts))
	for i, a := range accts {
		ledgers[i] = LedgerAccount{Code: a.Code, Name: a.Name, Type: a.Type, Balance: decimal.Zero}
		index[a.Code] = i
	}

	for _, txn := range byDate(txns) {
		for _, entry := range txn.Entries {
			i, ok := index[entry.AccountCode]
			if !ok {
				continue
			}
			l := &ledgers[i]
			debit, credit := entry.DebitAmount(), entry.CreditAmount()
			if l.Type.NormalSide() == model.Debit {
				l.Balance = l.Balance.Add(debit).Sub(credit)
			} else {
				l.Balance = l.Balance.Add(credit).Sub(debit)
			}
			l.Postings = append(l.Postings, Posting{
				TransactionID: txn.ID,
				Date:          txn.Date,
				Description:   txn.Description,
				Debit:         debit,
				Credit:        credit,
				Balance:       l.Balance,
			})
		}
	}

	var result []LedgerAccount
	for _, l := range ledgers {
		if len(l.Postings) > 0 {
			result = append(result, l)
		}
	}
	return result
}
