package auditlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:     testTime,
		Actor:         "alice",
		Action:        ActionRecord,
		Details:       "Service revenue, 500000",
		TransactionID: "2025-01-001",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Actor)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	e2 := testEntry()
	e2.Action = ActionCloseYear
	e2.TransactionID = "close-2025"
	require.NoError(t, Append(dir, e2))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionRecord, entries[0].Action)
	assert.Equal(t, "close-2025", entries[1].TransactionID)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, original))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.Actor, got.Actor)
	assert.Equal(t, original.Details, got.Details)
	assert.Equal(t, original.TransactionID, got.TransactionID)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")

	_, err = UnmarshalEntry([]string{"yesterday", "a", "b", "c", "d"})
	assert.Error(t, err)
}

func TestTimestampFormat(t *testing.T) {
	row := MarshalEntry(testEntry())
	assert.Equal(t, "2025-01-15T10:30:00Z", row[0])
}

func TestNewEntry(t *testing.T) {
	e := NewEntry(ActionCloseMonth, "2025-01", "")
	assert.Equal(t, ActionCloseMonth, e.Action)
	assert.NotEmpty(t, e.Actor)
	assert.WithinDuration(t, time.Now(), e.Timestamp, time.Minute)
}
