// Package closing performs year-end and month-end closing of the books.
package closing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/id"
	"github.com/cleared-dev/closebooks/internal/ledger"
	"github.com/cleared-dev/closebooks/internal/model"
)

// Default identifiers used when Options leaves them empty.
const (
	DefaultRetainedEarnings = "303"
	DefaultMarker           = "[Year-End Closing]"
)

// Store is the subset of the transaction log the closing engine needs.
type Store interface {
	AppendIf(fn func(book model.Book) (*model.Transaction, error)) (*model.Transaction, error)
	CloseMonth(key string) (bool, error)
}

// Options configures the closing engine.
type Options struct {
	RetainedEarnings string
	Marker           string
	Logger           *slog.Logger
}

// Result reports the outcome of a closing. Business-rule failures are
// reported with Success false and a Message, not as errors.
type Result struct {
	Success     bool
	NetIncome   decimal.Decimal
	Message     string
	Transaction *model.Transaction
}

// Engine closes temporary accounts into retained earnings.
type Engine struct {
	chart            ledger.Chart
	store            Store
	retainedEarnings string
	marker           string
	logger           *slog.Logger
}

// NewEngine creates a closing Engine.
func NewEngine(chart ledger.Chart, store Store, opts Options) *Engine {
	e := &Engine{
		chart:            chart,
		store:            store,
		retainedEarnings: opts.RetainedEarnings,
		marker:           opts.Marker,
		logger:           opts.Logger,
	}
	if e.retainedEarnings == "" {
		e.retainedEarnings = DefaultRetainedEarnings
	}
	if e.marker == "" {
		e.marker = DefaultMarker
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// CloseYear zeroes every revenue and expense account for year against
// retained earnings by appending one closing transaction dated December 31.
// The read, the already-closed check and the append run atomically.
func (e *Engine) CloseYear(year int) (Result, error) {
	var result Result
	stored, err := e.store.AppendIf(func(book model.Book) (*model.Transaction, error) {
		var txn *model.Transaction
		result, txn = e.buildClosing(book, year)
		return txn, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("closing year %d: %w", year, err)
	}

	if stored != nil {
		result.Transaction = stored
		e.logger.Info("closed year", "year", year, "net_income", result.NetIncome.String(), "id", stored.ID)
	} else {
		e.logger.Info("year not closed", "year", year, "reason", result.Message)
	}
	return result, nil
}

// Preview computes the closing for year without appending it.
func (e *Engine) Preview(book model.Book, year int) Result {
	result, txn := e.buildClosing(book, year)
	result.Transaction = txn
	return result
}

func (e *Engine) buildClosing(book model.Book, year int) (Result, *model.Transaction) {
	var yearly []model.Transaction
	for _, txn := range ledger.PostedTransactions(book) {
		if txn.Date.Year() == year {
			yearly = append(yearly, txn)
		}
	}

	if len(yearly) == 0 {
		return Result{Message: fmt.Sprintf("no posted transactions for year %d", year)}, nil
	}
	if e.alreadyClosed(yearly, year) {
		return Result{Message: fmt.Sprintf("year %d already closed", year)}, nil
	}

	// Net debit-minus-credit per temporary account, in catalog order.
	var temporary []model.Account
	net := make(map[string]decimal.Decimal)
	for _, a := range e.chart.All() {
		if a.Type.Temporary() {
			temporary = append(temporary, a)
			net[a.Code] = decimal.Zero
		}
	}
	for _, txn := range yearly {
		for _, entry := range txn.Entries {
			bal, ok := net[entry.AccountCode]
			if !ok {
				continue
			}
			if entry.Type == model.Debit {
				net[entry.AccountCode] = bal.Add(entry.Amount)
			} else {
				net[entry.AccountCode] = bal.Sub(entry.Amount)
			}
		}
	}

	var entries []model.Entry
	netIncome := decimal.Zero
	for _, a := range temporary {
		bal := net[a.Code]
		if bal.IsZero() {
			continue
		}
		side := model.Debit
		if bal.IsPositive() {
			side = model.Credit
		}
		entries = append(entries, model.Entry{AccountCode: a.Code, Type: side, Amount: bal.Abs()})
		netIncome = netIncome.Sub(bal)
	}

	if len(entries) == 0 {
		return Result{Message: fmt.Sprintf("nothing to close for year %d", year)}, nil
	}

	if !netIncome.IsZero() {
		side := model.Credit
		if netIncome.IsNegative() {
			side = model.Debit
		}
		entries = append(entries, model.Entry{AccountCode: e.retainedEarnings, Type: side, Amount: netIncome.Abs()})
	}

	txn := &model.Transaction{
		ID:          id.FormatClosingID(year),
		Date:        time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Description: fmt.Sprintf("%s Close books for %d", e.marker, year),
		Entries:     entries,
		Posted:      model.Bool(true),
		Kind:        model.KindClosing,
		ClosingYear: year,
	}
	return Result{
		Success:   true,
		NetIncome: netIncome,
		Message:   fmt.Sprintf("closed year %d", year),
	}, txn
}

// alreadyClosed checks the closing-year tag first and falls back to the
// description marker for records written without it.
func (e *Engine) alreadyClosed(yearly []model.Transaction, year int) bool {
	for _, txn := range yearly {
		if txn.ClosingYear == year {
			return true
		}
	}
	for _, txn := range yearly {
		if strings.Contains(txn.Description, e.marker) {
			return true
		}
	}
	return false
}

// MonthResult reports the outcome of a month close.
type MonthResult struct {
	Success bool
	Month   string
	Message string
}

// CloseMonth adds month ("YYYY-MM") to the closed set. Transactions of a
// closed month without an explicit posting flag count as opening balances.
func (e *Engine) CloseMonth(month string) (MonthResult, error) {
	added, err := e.store.CloseMonth(month)
	if err != nil {
		return MonthResult{}, fmt.Errorf("closing month %s: %w", month, err)
	}
	if !added {
		return MonthResult{Month: month, Message: fmt.Sprintf("month %s already closed", month)}, nil
	}
	e.logger.Info("closed month", "month", month)
	return MonthResult{Success: true, Month: month, Message: fmt.Sprintf("closed month %s", month)}, nil
}
