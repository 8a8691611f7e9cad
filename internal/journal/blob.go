package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cleared-dev/closebooks/internal/model"
)

// blob is the import/export document: the full log plus closed months.
type blob struct {
	Transactions []model.Transaction `json:"transactions"`
	ClosedMonths []string            `json:"closedMonths"`
}

// ReadBook decodes a JSON data blob.
func ReadBook(r io.Reader) (model.Book, error) {
	var b blob
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return model.Book{}, fmt.Errorf("decoding data blob: %w", err)
	}

	closed := make(map[string]bool, len(b.ClosedMonths))
	for _, key := range b.ClosedMonths {
		if _, err := model.ParseMonthKey(key); err != nil {
			return model.Book{}, err
		}
		closed[key] = true
	}
	return model.Book{Transactions: b.Transactions, ClosedMonths: closed}, nil
}

// WriteBook encodes a book as an indented JSON data blob. Closed months are
// written sorted.
func WriteBook(w io.Writer, book model.Book) error {
	b := blob{
		Transactions: book.Transactions,
		ClosedMonths: make([]string, 0, len(book.ClosedMonths)),
	}
	if b.Transactions == nil {
		b.Transactions = []model.Transaction{}
	}
	for key, closed := range book.ClosedMonths {
		if closed {
			b.ClosedMonths = append(b.ClosedMonths, key)
		}
	}
	sort.Strings(b.ClosedMonths)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding data blob: %w", err)
	}
	return nil
}
