package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Snapshot is one account's start, movement and end totals for a period.
type Snapshot struct {
	Code           string
	Name           string
	Type           model.AccountType
	StartDebit     decimal.Decimal
	StartCredit    decimal.Decimal
	MovementDebit  decimal.Decimal
	MovementCredit decimal.Decimal
	EndDebit       decimal.Decimal
	EndCredit      decimal.Decimal
}

// HasActivity reports whether any start or movement column is non-zero.
func (s Snapshot) HasActivity() bool {
	return !s.StartDebit.IsZero() || !s.StartCredit.IsZero() ||
		!s.MovementDebit.IsZero() || !s.MovementCredit.IsZero()
}

// Net returns debit minus credit for the start, movement and end columns.
func (s Snapshot) Net() Amounts {
	return Amounts{
		Start: s.StartDebit.Sub(s.StartCredit),
		Move:  s.MovementDebit.Sub(s.MovementCredit),
		End:   s.EndDebit.Sub(s.EndCredit),
	}
}

// Balances holds one Snapshot per catalog account, in catalog order.
type Balances struct {
	snapshots []Snapshot
	index     map[string]int
}

// All returns every snapshot in catalog order.
func (b Balances) All() []Snapshot {
	return b.snapshots
}

// Get returns the snapshot for an account code.
func (b Balances) Get(code string) (Snapshot, bool) {
	i, ok := b.index[code]
	if !ok {
		return Snapshot{}, false
	}
	return b.snapshots[i], true
}

// Active returns only the snapshots with start or movement activity.
func (b Balances) Active() []Snapshot {
	var active []Snapshot
	for _, s := range b.snapshots {
		if s.HasActivity() {
			active = append(active, s)
		}
	}
	return active
}

// Aggregate splits every entry of txns into opening or movement totals per
// account. Entries against codes missing from the chart are skipped.
func (e *Engine) Aggregate(txns []model.Transaction, period Period) Balances {
	accts := e.chart.All()
	b := Balances{
		snapshots: make([]Snapshot, len(accts)),
		index:     make(map[string]int, len(accts)),
	}
	for i, a := range accts {
		b.snapshots[i] = Snapshot{
			Code:           a.Code,
			Name:           a.Name,
			Type:           a.Type,
			StartDebit:     decimal.Zero,
			StartCredit:    decimal.Zero,
			MovementDebit:  decimal.Zero,
			MovementCredit: decimal.Zero,
		}
		b.index[a.Code] = i
	}

	for _, txn := range txns {
		opening := IsOpening(txn, period.ClosedMonths)
		for _, entry := range txn.Entries {
			i, ok := b.index[entry.AccountCode]
			if !ok {
				continue
			}
			s := &b.snapshots[i]
			switch {
			case opening && entry.Type == model.Debit:
				s.StartDebit = s.StartDebit.Add(entry.Amount)
			case opening:
				s.StartCredit = s.StartCredit.Add(entry.Amount)
			case entry.Type == model.Debit:
				s.MovementDebit = s.MovementDebit.Add(entry.Amount)
			default:
				s.MovementCredit = s.MovementCredit.Add(entry.Amount)
			}
		}
	}

	for i := range b.snapshots {
		s := &b.snapshots[i]
		s.EndDebit = s.StartDebit.Add(s.MovementDebit)
		s.EndCredit = s.StartCredit.Add(s.MovementCredit)
	}
	return b
}
