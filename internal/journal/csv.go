package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/closebooks/internal/model"
)

// Header is the CSV header for the journal export. Each row is one entry;
// consecutive rows sharing a txn_id form one transaction.
const Header = "txn_id,date,description,account_code,type,amount,posted,kind,closing_year,reversal_of"

const (
	numFields      = 10
	colTxnID       = 0
	colDate        = 1
	colDesc        = 2
	colAccountCode = 3
	colType        = 4
	colAmount      = 5
	colPosted      = 6
	colKind        = 7
	colClosingYear = 8
	colReversalOf  = 9
)

// ReadTransactions reads a journal CSV back into transactions.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, entry, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if n := len(txns); n > 0 && txns[n-1].ID == txn.ID {
			txns[n-1].Entries = append(txns[n-1].Entries, entry)
			continue
		}
		txn.Entries = []model.Entry{entry}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions as a journal CSV (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, txn := range txns {
		for _, entry := range txn.Entries {
			if err := cw.Write(MarshalRow(txn, entry)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	return cw.Error()
}

// MarshalRow converts one entry of a transaction to a CSV row.
func MarshalRow(txn model.Transaction, entry model.Entry) []string {
	row := make([]string, numFields)
	row[colTxnID] = txn.ID
	row[colDate] = txn.Date.Format(model.DateFormat)
	row[colDesc] = txn.Description
	row[colAccountCode] = entry.AccountCode
	row[colType] = string(entry.Type)
	row[colAmount] = entry.Amount.String()
	if txn.Posted != nil {
		row[colPosted] = strconv.FormatBool(*txn.Posted)
	}
	row[colKind] = txn.Kind
	if txn.ClosingYear != 0 {
		row[colClosingYear] = strconv.Itoa(txn.ClosingYear)
	}
	row[colReversalOf] = txn.ReversalOf
	return row
}

// UnmarshalRow converts a CSV row to its transaction header and entry.
func UnmarshalRow(record []string) (model.Transaction, model.Entry, error) {
	if len(record) != numFields {
		return model.Transaction{}, model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, model.Entry{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	txn := model.Transaction{
		ID:          record[colTxnID],
		Date:        date,
		Description: record[colDesc],
		Kind:        record[colKind],
		ReversalOf:  record[colReversalOf],
	}

	if s := record[colPosted]; s != "" {
		posted, err := strconv.ParseBool(s)
		if err != nil {
			return model.Transaction{}, model.Entry{}, fmt.Errorf("parsing posted %q: %w", s, err)
		}
		txn.Posted = model.Bool(posted)
	}

	if s := record[colClosingYear]; s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return model.Transaction{}, model.Entry{}, fmt.Errorf("parsing closing year %q: %w", s, err)
		}
		txn.ClosingYear = year
	}

	entry := model.Entry{
		AccountCode: record[colAccountCode],
		Type:        model.EntryType(record[colType]),
		Amount:      amount,
	}
	return txn, entry, nil
}
