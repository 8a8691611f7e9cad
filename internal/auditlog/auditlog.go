// Package auditlog keeps a CSV trail of every state change made to the books.
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"
)

// Actions recorded in the audit log.
const (
	ActionInit       = "init"
	ActionRecord     = "record_transaction"
	ActionReverse    = "reverse_transaction"
	ActionImport     = "import"
	ActionCloseYear  = "close_year"
	ActionCloseMonth = "close_month"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp     time.Time
	Actor         string
	Action        string
	Details       string
	TransactionID string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,actor,action,details,transaction_id"

const (
	numFields        = 5
	logFile          = "logs/audit-log.csv"
	colTimestamp     = 0
	colActor         = 1
	colAction        = 2
	colDetails       = 3
	colTransactionID = 4
)

// Path returns the audit log location under a books directory.
func Path(root string) string {
	return filepath.Join(root, logFile)
}

// NewEntry returns an entry stamped with the current time and OS user.
func NewEntry(action, details, txnID string) Entry {
	return Entry{
		Timestamp:     time.Now().UTC().Truncate(time.Second),
		Actor:         currentActor(),
		Action:        action,
		Details:       details,
		TransactionID: txnID,
	}
}

func currentActor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colActor] = e.Actor
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colTransactionID] = e.TransactionID
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:     ts,
		Actor:         record[colActor],
		Action:        record[colAction],
		Details:       record[colDetails],
		TransactionID: record[colTransactionID],
	}, nil
}

// Append writes entries to <root>/logs/audit-log.csv, creating the file and
// header if needed.
func Append(root string, entries ...Entry) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
