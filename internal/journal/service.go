package journal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// ReversalPrefix starts the description of every reversing transaction.
const ReversalPrefix = "[Reversal] "

var (
	// ErrNotFound is returned when a referenced transaction does not exist.
	ErrNotFound = errors.New("transaction not found")

	// ErrAlreadyReversed is returned when a transaction already has a reversal.
	ErrAlreadyReversed = errors.New("transaction already reversed")

	// ErrClosingReversal is returned when reversing a year-end closing.
	ErrClosingReversal = errors.New("closing transactions cannot be reversed")

	// ErrUnknownTemplate is returned for template IDs that do not exist.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Store is the transaction log the service appends to.
type Store interface {
	Append(txn model.Transaction) (model.Transaction, error)
	AppendIf(fn func(book model.Book) (*model.Transaction, error)) (*model.Transaction, error)
	Import(book model.Book) (int, error)
}

// Service records transactions into the log.
type Service struct {
	store    Store
	accounts AccountChecker
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a journal Service.
func NewService(store Store, accounts AccountChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, accounts: accounts, logger: logger, now: time.Now}
}

// Record validates params and appends the transaction. The returned
// transaction carries its assigned ID.
func (s *Service) Record(params TransactionParams) (model.Transaction, error) {
	if verrs := Validate(params, s.accounts); len(verrs) > 0 {
		return model.Transaction{}, fmt.Errorf("validation failed: %w", verrs)
	}

	entries := make([]model.Entry, len(params.Entries))
	for i, e := range params.Entries {
		entries[i] = model.Entry{AccountCode: e.AccountCode, Type: e.Type, Amount: e.Amount}
	}

	txn, err := s.store.Append(model.Transaction{
		ID:          params.ID,
		Date:        params.Date,
		Description: params.Description,
		Entries:     entries,
		Posted:      params.Posted,
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("appending transaction: %w", err)
	}

	s.logger.Info("recorded transaction", "id", txn.ID, "date", txn.Date.Format(model.DateFormat), "entries", len(txn.Entries))
	return txn, nil
}

// RecordTemplate records a two-entry transaction from a built-in template.
func (s *Service) RecordTemplate(templateID string, date time.Time, amount decimal.Decimal, description string) (model.Transaction, error) {
	tmpl, ok := LookupTemplate(templateID)
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}
	return s.Record(tmpl.Params(date, amount, description))
}

// Reverse appends a transaction that swaps every entry side of txnID. A zero
// date means today. Each transaction can be reversed once.
func (s *Service) Reverse(txnID string, date time.Time) (model.Transaction, error) {
	if date.IsZero() {
		y, m, d := s.now().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	stored, err := s.store.AppendIf(func(book model.Book) (*model.Transaction, error) {
		var orig *model.Transaction
		for i := range book.Transactions {
			txn := &book.Transactions[i]
			if txn.ReversalOf == txnID {
				return nil, fmt.Errorf("%w: %s by %s", ErrAlreadyReversed, txnID, txn.ID)
			}
			if txn.ID == txnID {
				orig = txn
			}
		}
		if orig == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, txnID)
		}
		if orig.IsClosing() {
			return nil, fmt.Errorf("%w: %s", ErrClosingReversal, txnID)
		}

		entries := make([]model.Entry, len(orig.Entries))
		for i, e := range orig.Entries {
			entries[i] = model.Entry{AccountCode: e.AccountCode, Type: e.Type.Opposite(), Amount: e.Amount}
		}
		return &model.Transaction{
			Date:        date,
			Description: ReversalPrefix + orig.Description,
			Entries:     entries,
			ReversalOf:  orig.ID,
		}, nil
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("reversing %s: %w", txnID, err)
	}

	s.logger.Info("reversed transaction", "id", stored.ID, "reversal_of", txnID)
	return *stored, nil
}

// Import validates every transaction of book (unless lenient) and appends
// them all in one write. Lenient mode keeps records the engine would skip.
func (s *Service) Import(book model.Book, lenient bool) (int, error) {
	if !lenient {
		var errs []error
		for i, txn := range book.Transactions {
			if verrs := ValidateTransaction(txn, s.accounts); len(verrs) > 0 {
				errs = append(errs, fmt.Errorf("transaction %d (%s): %w", i, txn.ID, verrs))
			}
		}
		if len(errs) > 0 {
			return 0, fmt.Errorf("validation failed: %w", errors.Join(errs...))
		}
	}

	n, err := s.store.Import(book)
	if err != nil {
		return 0, fmt.Errorf("importing: %w", err)
	}
	s.logger.Info("imported transactions", "count", n, "closed_months", len(book.ClosedMonths), "lenient", lenient)
	return n, nil
}
