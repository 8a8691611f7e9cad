package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Template is a named debit/credit account pair for a common transaction.
type Template struct {
	ID          string
	Name        string
	Debit       string
	Credit      string
	Description string
}

// Params builds recording params for amount. An empty description falls
// back to the template's default.
func (t Template) Params(date time.Time, amount decimal.Decimal, description string) TransactionParams {
	if description == "" {
		description = t.Description
	}
	return TransactionParams{
		Date:        date,
		Description: description,
		Entries: []EntryParams{
			{AccountCode: t.Debit, Type: model.Debit, Amount: amount},
			{AccountCode: t.Credit, Type: model.Credit, Amount: amount},
		},
	}
}

var templates = []Template{
	// Income
	{ID: "IN_CAPITAL_CASH", Name: "Income: Owner Capital (Cash)", Debit: "101", Credit: "301", Description: "Owner capital contribution (cash)"},
	{ID: "IN_CAPITAL_BANK", Name: "Income: Owner Capital (Bank Transfer)", Debit: "102", Credit: "301", Description: "Owner capital contribution (transfer)"},
	{ID: "IN_REV_CASH", Name: "Income: Service Revenue (Cash)", Debit: "101", Credit: "401", Description: "Service revenue received (cash)"},
	{ID: "IN_REV_BANK", Name: "Income: Service Revenue (Bank Transfer)", Debit: "102", Credit: "401", Description: "Service revenue received (transfer)"},
	{ID: "IN_REV_CREDIT", Name: "Income: Service Revenue (On Account)", Debit: "103", Credit: "401", Description: "Service invoice issued (unpaid)"},
	{ID: "IN_SALE_CASH", Name: "Income: Sales (Cash)", Debit: "101", Credit: "402", Description: "Merchandise sale (cash)"},
	{ID: "IN_RENT", Name: "Income: Rental Income", Debit: "101", Credit: "405", Description: "Equipment or space rental income"},
	{ID: "IN_COMMISSION", Name: "Income: Commission Income", Debit: "101", Credit: "406", Description: "Brokerage commission income"},
	{ID: "IN_REV_OTHER", Name: "Income: Other Income", Debit: "101", Credit: "403", Description: "Other income received"},
	{ID: "IN_INTEREST", Name: "Income: Bank Interest", Debit: "102", Credit: "404", Description: "Savings interest income"},
	{ID: "IN_LOAN", Name: "Income: Bank Loan Disbursement", Debit: "102", Credit: "203", Description: "Working capital loan disbursed"},
	{ID: "IN_AR_PAYMENT_CASH", Name: "Income: Receivable Collected (Cash)", Debit: "101", Credit: "103", Description: "Customer receivable collected"},
	{ID: "IN_AR_PAYMENT_BANK", Name: "Income: Receivable Collected (Transfer)", Debit: "102", Credit: "103", Description: "Customer receivable collected by transfer"},

	// Operating expenses paid in cash
	{ID: "OUT_OPS_UTILITIES", Name: "Expense: Electricity & Water", Debit: "503", Credit: "101", Description: "Electricity and water bill"},
	{ID: "OUT_OPS_INTERNET", Name: "Expense: Phone & Internet", Debit: "504", Credit: "101", Description: "Internet bill"},
	{ID: "OUT_OPS_FUEL", Name: "Expense: Fuel & Transport", Debit: "507", Credit: "101", Description: "Operational fuel"},
	{ID: "OUT_OPS_MEALS", Name: "Expense: Meals", Debit: "509", Credit: "101", Description: "Meeting and guest meals"},
	{ID: "OUT_OPS_MAINTENANCE", Name: "Expense: Repairs & Maintenance", Debit: "508", Credit: "101", Description: "Equipment servicing"},
	{ID: "OUT_OPS_ADVERTISING", Name: "Expense: Advertising", Debit: "506", Credit: "101", Description: "Flyers and social media ads"},
	{ID: "OUT_OPS_OTHER", Name: "Expense: Miscellaneous", Debit: "515", Credit: "101", Description: "Other operating costs"},

	// Larger payments by transfer
	{ID: "OUT_PAY_SALARY", Name: "Expense: Salaries", Debit: "501", Credit: "102", Description: "Employee salaries for the period"},
	{ID: "OUT_PAY_RENT", Name: "Expense: Office Rent", Debit: "502", Credit: "102", Description: "Office rent"},
	{ID: "OUT_PAY_TAX", Name: "Expense: Taxes", Debit: "514", Credit: "102", Description: "Periodic tax payment"},

	// Purchases
	{ID: "BUY_SUPPLIES_CASH", Name: "Purchase: Supplies (Cash)", Debit: "104", Credit: "101", Description: "Office supplies"},
	{ID: "BUY_ASSET_CASH", Name: "Purchase: Office Equipment (Cash)", Debit: "121", Credit: "101", Description: "Laptop, printer or furniture"},
	{ID: "BUY_ASSET_CREDIT", Name: "Purchase: Office Equipment (On Account)", Debit: "121", Credit: "201", Description: "Equipment bought on credit"},

	// Debt and drawings
	{ID: "PAY_DEBT_CASH", Name: "Pay Accounts Payable (Cash)", Debit: "201", Credit: "101", Description: "Supplier payment"},
	{ID: "PAY_DEBT_BANK", Name: "Pay Accounts Payable (Transfer)", Debit: "201", Credit: "102", Description: "Supplier payment by transfer"},
	{ID: "PAY_BANK_LOAN", Name: "Pay Bank Loan Principal", Debit: "203", Credit: "102", Description: "Loan principal installment"},
	{ID: "PAY_BANK_INTEREST", Name: "Pay Bank Loan Interest", Debit: "513", Credit: "102", Description: "Loan interest payment"},
	{ID: "OUT_DRAWINGS", Name: "Drawings: Owner Withdrawal", Debit: "302", Credit: "101", Description: "Owner personal withdrawal"},

	// Adjustments
	{ID: "ADJ_DEPR_EQUIP", Name: "Adjustment: Equipment Depreciation", Debit: "511", Credit: "122", Description: "Equipment depreciation for the month"},
	{ID: "ADJ_DEPR_VEHICLE", Name: "Adjustment: Vehicle Depreciation", Debit: "512", Credit: "132", Description: "Vehicle depreciation for the month"},
}

// Templates returns the built-in transaction templates.
func Templates() []Template {
	return templates
}

// LookupTemplate returns the template with the given ID.
func LookupTemplate(templateID string) (Template, bool) {
	for _, t := range templates {
		if t.ID == templateID {
			return t, true
		}
	}
	return Template{}, false
}
