package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the side of a double-entry posting.
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// Valid reports whether t is debit or credit.
func (t EntryType) Valid() bool {
	return t == Debit || t == Credit
}

// Opposite returns the other side of the posting.
func (t EntryType) Opposite() EntryType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// Entry is one half (debit or credit) of a posting against a single account.
type Entry struct {
	AccountCode string
	Type        EntryType
	Amount      decimal.Decimal // non-negative
}

// DebitAmount returns the amount when the entry is a debit, zero otherwise.
func (e Entry) DebitAmount() decimal.Decimal {
	if e.Type == Debit {
		return e.Amount
	}
	return decimal.Zero
}

// CreditAmount returns the amount when the entry is a credit, zero otherwise.
func (e Entry) CreditAmount() decimal.Decimal {
	if e.Type == Credit {
		return e.Amount
	}
	return decimal.Zero
}

// MonthKeyFormat is the layout of closed-period keys ("2025-03").
const MonthKeyFormat = "2006-01"

// MonthKey returns the "YYYY-MM" key for a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyFormat)
}

// ParseMonthKey parses a "YYYY-MM" key into the first day of that month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(MonthKeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month key %q: %w", key, err)
	}
	return t, nil
}

// Book is the persisted state the engine computes over: the full
// transaction log plus the set of closed months.
type Book struct {
	Transactions []Transaction
	ClosedMonths map[string]bool
}

// IsMonthClosed reports whether the month key is in the closed set.
func (b Book) IsMonthClosed(key string) bool {
	return b.ClosedMonths[key]
}
