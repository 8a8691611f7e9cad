// Package ledger derives period balances and financial statements from a
// transaction log and a chart of accounts.
package ledger

import (
	"sort"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Chart is the account catalog the engine classifies postings against.
type Chart interface {
	All() []model.Account
	Get(code string) (model.Account, bool)
}

// Engine computes derivations over a transaction slice. It holds no state
// besides the injected chart, so every call recomputes from its input.
type Engine struct {
	chart Chart
}

// NewEngine creates an Engine over the given chart.
func NewEngine(chart Chart) *Engine {
	return &Engine{chart: chart}
}

// Period is the reporting context: the reference month key (a report label)
// and the set of closed months used to classify transactions without an
// explicit posting flag.
type Period struct {
	Month        string
	ClosedMonths map[string]bool
}

// IsOpening reports whether a transaction counts toward start balances.
// An explicit posting flag wins; otherwise the transaction month decides.
func IsOpening(txn model.Transaction, closedMonths map[string]bool) bool {
	if txn.Posted != nil {
		return *txn.Posted
	}
	return closedMonths[txn.Month()]
}

// PostedTransactions returns the transactions of a book classified as opening.
func PostedTransactions(book model.Book) []model.Transaction {
	var posted []model.Transaction
	for _, txn := range book.Transactions {
		if IsOpening(txn, book.ClosedMonths) {
			posted = append(posted, txn)
		}
	}
	return posted
}

// byDate returns a copy of txns stably sorted by date.
func byDate(txns []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
