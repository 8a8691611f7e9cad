package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used in the log and on the wire.
const DateFormat = "2006-01-02"

// KindClosing tags synthesized year-end closing transactions.
const KindClosing = "closing"

// Transaction is a dated, described set of entries recorded as one
// accounting event. Transactions are never edited once appended.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Entries     []Entry
	Posted      *bool  // nil when the log carries no posting flag
	Kind        string // optional tag, "closing" for year-end closings
	ClosingYear int    // year closed by this transaction, 0 otherwise
	ReversalOf  string // ID of the transaction this one reverses
}

// IsClosing reports whether the transaction is a year-end closing.
func (t Transaction) IsClosing() bool {
	return t.Kind == KindClosing
}

// Month returns the "YYYY-MM" key of the transaction date.
func (t Transaction) Month() string {
	return MonthKey(t.Date)
}

// Totals returns the sum of debit and credit amounts.
func (t Transaction) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, e := range t.Entries {
		debit = debit.Add(e.DebitAmount())
		credit = credit.Add(e.CreditAmount())
	}
	return debit, credit
}

// Bool returns a pointer to b, for populating Transaction.Posted.
func Bool(b bool) *bool {
	return &b
}

type entryJSON struct {
	AccountCode string      `json:"accountCode"`
	Type        EntryType   `json:"type"`
	Amount      json.Number `json:"amount"`
}

type transactionJSON struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Entries     []entryJSON `json:"entries"`
	IsPosted    *bool       `json:"isPosted,omitempty"`
	Type        string      `json:"type,omitempty"`
	ClosingYear int         `json:"closingYear,omitempty"`
	ReversalOf  string      `json:"reversalOf,omitempty"`
}

// MarshalJSON encodes the transaction in the log record format.
func (t Transaction) MarshalJSON() ([]byte, error) {
	w := transactionJSON{
		ID:          t.ID,
		Date:        t.Date.Format(DateFormat),
		Description: t.Description,
		Entries:     make([]entryJSON, len(t.Entries)),
		IsPosted:    t.Posted,
		Type:        t.Kind,
		ClosingYear: t.ClosingYear,
		ReversalOf:  t.ReversalOf,
	}
	for i, e := range t.Entries {
		w.Entries[i] = entryJSON{
			AccountCode: e.AccountCode,
			Type:        e.Type,
			Amount:      json.Number(e.Amount.String()),
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a log record. Amounts may be numbers or numeric strings.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w transactionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	date, err := time.Parse(DateFormat, w.Date)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", w.Date, err)
	}

	entries := make([]Entry, len(w.Entries))
	for i, e := range w.Entries {
		amount, err := decimal.NewFromString(e.Amount.String())
		if err != nil {
			return fmt.Errorf("entry %d: parsing amount %q: %w", i, e.Amount, err)
		}
		entries[i] = Entry{AccountCode: e.AccountCode, Type: e.Type, Amount: amount}
	}

	*t = Transaction{
		ID:          w.ID,
		Date:        date,
		Description: w.Description,
		Entries:     entries,
		Posted:      w.IsPosted,
		Kind:        w.Type,
		ClosingYear: w.ClosingYear,
		ReversalOf:  w.ReversalOf,
	}
	return nil
}
