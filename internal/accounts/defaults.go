package accounts

import "github.com/cleared-dev/closebooks/internal/model"

// RetainedEarningsCode is the equity account that absorbs year-end net income
// in the default chart.
const RetainedEarningsCode = "303"

// DefaultChart returns the default chart of accounts for an entity type.
// Every entity type currently starts from the small-business chart.
func DefaultChart(entityType string) []model.Account {
	return smallBusinessChart()
}

func smallBusinessChart() []model.Account {
	return []model.Account{
		{Code: "101", Name: "Cash", Type: model.AccountTypeAsset},
		{Code: "102", Name: "Bank", Type: model.AccountTypeAsset},
		{Code: "103", Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{Code: "104", Name: "Supplies", Type: model.AccountTypeAsset},
		{Code: "105", Name: "Prepaid Rent", Type: model.AccountTypeAsset},
		{Code: "106", Name: "Prepaid Advertising", Type: model.AccountTypeAsset},
		{Code: "107", Name: "Prepaid Insurance", Type: model.AccountTypeAsset},
		{Code: "121", Name: "Office Equipment", Type: model.AccountTypeAsset},
		{Code: "122", Name: "Accum. Depreciation - Equipment", Type: model.AccountTypeAsset},
		{Code: "131", Name: "Vehicles", Type: model.AccountTypeAsset},
		{Code: "132", Name: "Accum. Depreciation - Vehicles", Type: model.AccountTypeAsset},
		{Code: "141", Name: "Land & Buildings", Type: model.AccountTypeAsset},

		{Code: "201", Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{Code: "202", Name: "Salaries Payable", Type: model.AccountTypeLiability},
		{Code: "203", Name: "Bank Loan", Type: model.AccountTypeLiability},
		{Code: "204", Name: "Taxes Payable", Type: model.AccountTypeLiability},
		{Code: "205", Name: "Unearned Revenue", Type: model.AccountTypeLiability},

		{Code: "301", Name: "Owner's Capital", Type: model.AccountTypeEquity},
		{Code: "302", Name: "Owner's Drawings", Type: model.AccountTypeEquity},
		{Code: RetainedEarningsCode, Name: "Retained Earnings", Type: model.AccountTypeEquity},

		{Code: "401", Name: "Service Revenue", Type: model.AccountTypeRevenue},
		{Code: "402", Name: "Sales Revenue", Type: model.AccountTypeRevenue},
		{Code: "403", Name: "Other Income", Type: model.AccountTypeRevenue},
		{Code: "404", Name: "Interest Income", Type: model.AccountTypeRevenue},
		{Code: "405", Name: "Rental Income", Type: model.AccountTypeRevenue},
		{Code: "406", Name: "Commission Income", Type: model.AccountTypeRevenue},

		{Code: "501", Name: "Salaries & Wages Expense", Type: model.AccountTypeExpense},
		{Code: "502", Name: "Rent Expense", Type: model.AccountTypeExpense},
		{Code: "503", Name: "Utilities Expense", Type: model.AccountTypeExpense},
		{Code: "504", Name: "Phone & Internet Expense", Type: model.AccountTypeExpense},
		{Code: "505", Name: "Supplies Expense", Type: model.AccountTypeExpense},
		{Code: "506", Name: "Advertising Expense", Type: model.AccountTypeExpense},
		{Code: "507", Name: "Transport & Fuel Expense", Type: model.AccountTypeExpense},
		{Code: "508", Name: "Repairs & Maintenance Expense", Type: model.AccountTypeExpense},
		{Code: "509", Name: "Meals Expense", Type: model.AccountTypeExpense},
		{Code: "510", Name: "Insurance Expense", Type: model.AccountTypeExpense},
		{Code: "511", Name: "Depreciation Expense - Equipment", Type: model.AccountTypeExpense},
		{Code: "512", Name: "Depreciation Expense - Vehicles", Type: model.AccountTypeExpense},
		{Code: "513", Name: "Bank Interest Expense", Type: model.AccountTypeExpense},
		{Code: "514", Name: "Tax Expense", Type: model.AccountTypeExpense},
		{Code: "515", Name: "Miscellaneous Expense", Type: model.AccountTypeExpense},
	}
}
