package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/closebooks/internal/auditlog"
	"github.com/cleared-dev/closebooks/internal/journal"
)

// recordScenario records an opening capital of 1,000,000, revenue of 500,000
// and salaries of 200,000 in March 2025.
func recordScenario(t *testing.T, dir string) {
	t.Helper()
	steps := [][]string{
		{"txn", "add", "--dir", dir, "--date", "2025-01-01", "--desc", "Owner investment",
			"--debit", "101=1000000", "--credit", "301=1000000", "--opening"},
		{"txn", "template", "IN_REV_CASH", "--dir", dir, "--date", "2025-03-05", "--amount", "500000"},
		{"txn", "add", "--dir", dir, "--date", "2025-03-10", "--desc", "March payroll",
			"--debit", "501=200000", "--credit", "101=200000"},
	}
	for _, args := range steps {
		_, err := runCloseBooks(t, args...)
		require.NoError(t, err, "%v", args)
	}
}

func TestTxnAdd_AssignsMonthlyIDs(t *testing.T) {
	dir := initBooks(t)
	recordScenario(t, dir)

	out, err := runCloseBooks(t, "txn", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-001")
	assert.Contains(t, out, "2025-03-001")
	assert.Contains(t, out, "2025-03-002")
	assert.Contains(t, out, "opening")

	out, err = runCloseBooks(t, "txn", "list", "--dir", dir, "--month", "2025-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Owner investment")
	assert.NotContains(t, out, "March payroll")
}

func TestTxnAdd_Unbalanced(t *testing.T) {
	dir := initBooks(t)

	_, err := runCloseBooks(t, "txn", "add", "--dir", dir, "--date", "2025-03-01", "--desc", "Bad",
		"--debit", "101=100", "--credit", "401=90")
	assert.ErrorIs(t, err, journal.ErrUnbalanced)
}

func TestTxnAdd_UnknownAccount(t *testing.T) {
	dir := initBooks(t)

	_, err := runCloseBooks(t, "txn", "add", "--dir", dir, "--date", "2025-03-01", "--desc", "Bad",
		"--debit", "999=100", "--credit", "401=100")
	assert.ErrorIs(t, err, journal.ErrUnknownAccount)
}

func TestTxnAdd_BadEntryFlag(t *testing.T) {
	dir := initBooks(t)

	_, err := runCloseBooks(t, "txn", "add", "--dir", dir, "--date", "2025-03-01", "--desc", "Bad",
		"--debit", "101", "--credit", "401=100")
	assert.ErrorContains(t, err, "expected CODE=AMOUNT")
}

func TestTxnTemplate_Unknown(t *testing.T) {
	dir := initBooks(t)

	_, err := runCloseBooks(t, "txn", "template", "NOPE", "--dir", dir, "--date", "2025-03-01", "--amount", "10")
	assert.ErrorIs(t, err, journal.ErrUnknownTemplate)
}

func TestTxnTemplates(t *testing.T) {
	out, err := runCloseBooks(t, "txn", "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "IN_REV_CASH")
	assert.Contains(t, out, "ADJ_DEPR_VEHICLE")
}

func TestTxnReverse(t *testing.T) {
	dir := initBooks(t)
	recordScenario(t, dir)

	out, err := runCloseBooks(t, "txn", "reverse", "2025-03-002", "--dir", dir, "--date", "2025-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Reversed 2025-03-002 as 2025-03-003")

	_, err = runCloseBooks(t, "txn", "reverse", "2025-03-002", "--dir", dir, "--date", "2025-03-16")
	assert.ErrorIs(t, err, journal.ErrAlreadyReversed)

	out, err = runCloseBooks(t, "report", "income", "--dir", dir, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "500,000.00")
	assert.NotContains(t, out, "Salaries")
}

func TestAccountsList(t *testing.T) {
	dir := initBooks(t)

	out, err := runCloseBooks(t, "accounts", "list", "--dir", dir, "--type", "revenue")
	require.NoError(t, err)
	assert.Contains(t, out, "Service Revenue")
	assert.NotContains(t, out, "Cash")

	_, err = runCloseBooks(t, "accounts", "list", "--dir", dir, "--type", "bogus")
	assert.Error(t, err)
}

func TestReports(t *testing.T) {
	dir := initBooks(t)
	recordScenario(t, dir)

	out, err := runCloseBooks(t, "report", "income", "--dir", dir, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Biz")
	assert.Contains(t, out, "Income Statement 2025-03")
	assert.Contains(t, out, "300,000.00")

	out, err = runCloseBooks(t, "report", "balance-sheet", "--dir", dir, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "1,300,000.00")
	assert.NotContains(t, out, "Out of balance")

	out, err = runCloseBooks(t, "report", "ledger", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Owner investment")
	assert.NotContains(t, out, "March payroll")

	out, err = runCloseBooks(t, "report", "ledger", "--dir", dir, "--unposted")
	require.NoError(t, err)
	assert.Contains(t, out, "March payroll")

	out, err = runCloseBooks(t, "report", "all", "--dir", dir, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Trial Balance 2025-03")
	assert.Contains(t, out, "Journal")

	_, err = runCloseBooks(t, "report", "cashflow", "--dir", dir)
	assert.Error(t, err)

	_, err = runCloseBooks(t, "report", "income", "--dir", dir, "--month", "March")
	assert.Error(t, err)
}

func TestCloseYear(t *testing.T) {
	dir := initBooks(t)
	recordScenario(t, dir)

	// March is still open, so only the opening capital is posted.
	_, err := runCloseBooks(t, "close", "year", "2025", "--dir", dir)
	assert.ErrorContains(t, err, "nothing to close for year 2025")

	out, err := runCloseBooks(t, "close", "month", "2025-03", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "closed month 2025-03")

	_, err = runCloseBooks(t, "close", "month", "2025-03", "--dir", dir)
	assert.ErrorContains(t, err, "month 2025-03 already closed")

	out, err = runCloseBooks(t, "close", "year", "2025", "--dir", dir, "--preview")
	require.NoError(t, err)
	assert.Contains(t, out, "Preview only")

	out, err = runCloseBooks(t, "close", "year", "2025", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "closed year 2025, net income 300,000.00")
	assert.Contains(t, out, "Retained Earnings")

	_, err = runCloseBooks(t, "close", "year", "2025", "--dir", dir)
	assert.ErrorContains(t, err, "year 2025 already closed")

	out, err = runCloseBooks(t, "txn", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "close-2025")
	assert.Contains(t, out, "closing")

	_, err = runCloseBooks(t, "txn", "reverse", "close-2025", "--dir", dir)
	assert.ErrorIs(t, err, journal.ErrClosingReversal)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	var actions []string
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	assert.Contains(t, actions, auditlog.ActionCloseMonth)
	assert.Contains(t, actions, auditlog.ActionCloseYear)
}

func TestExportImport(t *testing.T) {
	src := initBooks(t)
	recordScenario(t, src)
	_, err := runCloseBooks(t, "close", "month", "2025-03", "--dir", src)
	require.NoError(t, err)

	jsonPath := filepath.Join(t.TempDir(), "book.json")
	_, err = runCloseBooks(t, "export", "--dir", src, "-o", jsonPath)
	require.NoError(t, err)

	csvOut, err := runCloseBooks(t, "export", "--dir", src, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, csvOut, journal.Header)

	dst := initBooks(t)
	out, err := runCloseBooks(t, "import", jsonPath, "--dir", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 transactions")

	want, err := runCloseBooks(t, "report", "trial-balance", "--dir", src, "--month", "2025-03")
	require.NoError(t, err)
	got, err := runCloseBooks(t, "report", "trial-balance", "--dir", dst, "--month", "2025-03")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = runCloseBooks(t, "import", jsonPath, "--dir", dst)
	assert.Error(t, err, "importing the same IDs twice")

	_, err = runCloseBooks(t, "export", "--dir", src, "--format", "xml")
	assert.Error(t, err)
}

func TestImport_Inbox(t *testing.T) {
	src := initBooks(t)
	recordScenario(t, src)

	dst := initBooks(t)
	out, err := runCloseBooks(t, "import", "--dir", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "No files to import")

	_, err = runCloseBooks(t, "export", "--dir", src, "--format", "csv", "-o", filepath.Join(dst, "import", "march.csv"))
	require.NoError(t, err)

	out, err = runCloseBooks(t, "import", "--dir", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 transactions from march.csv")

	_, err = os.Stat(filepath.Join(dst, "import", "processed", "march.csv"))
	assert.NoError(t, err)

	out, err = runCloseBooks(t, "txn", "list", "--dir", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "March payroll")
}

func TestInsights(t *testing.T) {
	dir := initBooks(t)
	recordScenario(t, dir)

	out, err := runCloseBooks(t, "insights", "--dir", dir, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Insights 2025-03")
	assert.Contains(t, out, "Profitable Period")
	assert.Contains(t, out, "60.0%")
	assert.Contains(t, out, "Trend 2025 (3 transactions)")
	assert.Contains(t, out, "Service Revenue")
}
