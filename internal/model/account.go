package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// NormalSide returns the side on which the account type increases.
// Assets and expenses are debit-normal, everything else is credit-normal.
func (t AccountType) NormalSide() EntryType {
	if t == AccountTypeAsset || t == AccountTypeExpense {
		return Debit
	}
	return Credit
}

// Temporary reports whether balances of this type are zeroed at year end.
func (t AccountType) Temporary() bool {
	return t == AccountTypeRevenue || t == AccountTypeExpense
}

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Code string
	Name string
	Type AccountType
}
