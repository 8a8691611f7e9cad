// Package store persists the transaction log and closed-month set in bbolt.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/cleared-dev/closebooks/internal/id"
	"github.com/cleared-dev/closebooks/internal/model"
)

var (
	// ErrNotFound is returned when a transaction is not found.
	ErrNotFound = errors.New("transaction not found")

	// ErrDuplicateID is returned when appending a transaction whose ID is taken.
	ErrDuplicateID = errors.New("duplicate transaction ID")
)

// Bucket names.
const (
	BucketTransactions   = "transactions"
	BucketTransactionIDs = "transaction_ids"
	BucketClosedMonths   = "closed_months"
	BucketSequences      = "sequences"
)

var buckets = []string{BucketTransactions, BucketTransactionIDs, BucketClosedMonths, BucketSequences}

// Store is the bbolt-backed transaction log. Transactions are kept in
// insertion order and never modified once appended.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and initializes buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("creating bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Transactions returns the full log in insertion order.
func (s *Store) Transactions() ([]model.Transaction, error) {
	var txns []model.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		txns, err = readTransactions(tx)
		return err
	})
	return txns, err
}

// ClosedMonths returns the set of closed "YYYY-MM" keys.
func (s *Store) ClosedMonths() (map[string]bool, error) {
	var closed map[string]bool
	err := s.db.View(func(tx *bolt.Tx) error {
		closed = readClosedMonths(tx)
		return nil
	})
	return closed, err
}

// Book returns the log and closed months from a single consistent snapshot.
func (s *Store) Book() (model.Book, error) {
	var book model.Book
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		book, err = readBook(tx)
		return err
	})
	return book, err
}

// Get returns a transaction by ID.
func (s *Store) Get(txnID string) (model.Transaction, error) {
	var txn model.Transaction
	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket([]byte(BucketTransactionIDs)).Get([]byte(txnID))
		if key == nil {
			return ErrNotFound
		}
		data := tx.Bucket([]byte(BucketTransactions)).Get(key)
		if data == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(data, &txn); err != nil {
			return fmt.Errorf("decoding transaction %s: %w", txnID, err)
		}
		return nil
	})
	return txn, err
}

// Append adds a transaction to the end of the log. A transaction without an
// ID is assigned the next "YYYY-MM-NNN" ID for its month. The stored
// transaction is returned.
func (s *Store) Append(txn model.Transaction) (model.Transaction, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		txn, err = appendTransaction(tx, txn)
		return err
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// AppendIf reads the book and calls fn inside one write transaction. When fn
// returns a transaction it is appended before the write commits, so the
// check and the append cannot interleave with another writer. A nil
// transaction appends nothing.
func (s *Store) AppendIf(fn func(book model.Book) (*model.Transaction, error)) (*model.Transaction, error) {
	var stored *model.Transaction
	err := s.db.Update(func(tx *bolt.Tx) error {
		book, err := readBook(tx)
		if err != nil {
			return err
		}

		txn, err := fn(book)
		if err != nil || txn == nil {
			return err
		}

		appended, err := appendTransaction(tx, *txn)
		if err != nil {
			return err
		}
		stored = &appended
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// CloseMonth adds a month key to the closed set. It reports false when the
// month was already closed.
func (s *Store) CloseMonth(key string) (bool, error) {
	if _, err := model.ParseMonthKey(key); err != nil {
		return false, err
	}

	added := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketClosedMonths))
		if b.Get([]byte(key)) != nil {
			return nil
		}
		added = true
		return b.Put([]byte(key), []byte{1})
	})
	return added, err
}

// Import appends every transaction of book and merges its closed months in
// one write transaction. Any failure leaves the store unchanged.
func (s *Store) Import(book model.Book) (int, error) {
	count := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		for i, txn := range book.Transactions {
			if _, err := appendTransaction(tx, txn); err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}
			count++
		}
		b := tx.Bucket([]byte(BucketClosedMonths))
		for key, closed := range book.ClosedMonths {
			if !closed {
				continue
			}
			if _, err := model.ParseMonthKey(key); err != nil {
				return err
			}
			if err := b.Put([]byte(key), []byte{1}); err != nil {
				return fmt.Errorf("storing closed month %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func readBook(tx *bolt.Tx) (model.Book, error) {
	txns, err := readTransactions(tx)
	if err != nil {
		return model.Book{}, err
	}
	return model.Book{Transactions: txns, ClosedMonths: readClosedMonths(tx)}, nil
}

func readTransactions(tx *bolt.Tx) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := tx.Bucket([]byte(BucketTransactions)).ForEach(func(k, v []byte) error {
		var txn model.Transaction
		if err := json.Unmarshal(v, &txn); err != nil {
			return fmt.Errorf("decoding transaction at %d: %w", btoi(k), err)
		}
		txns = append(txns, txn)
		return nil
	})
	return txns, err
}

func readClosedMonths(tx *bolt.Tx) map[string]bool {
	closed := make(map[string]bool)
	_ = tx.Bucket([]byte(BucketClosedMonths)).ForEach(func(k, _ []byte) error {
		closed[string(k)] = true
		return nil
	})
	return closed
}

func appendTransaction(tx *bolt.Tx, txn model.Transaction) (model.Transaction, error) {
	ids := tx.Bucket([]byte(BucketTransactionIDs))

	if txn.ID == "" {
		next, err := nextTransactionID(tx, txn.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		txn.ID = next
	}
	if ids.Get([]byte(txn.ID)) != nil {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateID, txn.ID)
	}

	b := tx.Bucket([]byte(BucketTransactions))
	seq, err := b.NextSequence()
	if err != nil {
		return model.Transaction{}, fmt.Errorf("allocating log sequence: %w", err)
	}

	data, err := json.Marshal(txn)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("encoding transaction %s: %w", txn.ID, err)
	}

	key := itob(seq)
	if err := b.Put(key, data); err != nil {
		return model.Transaction{}, fmt.Errorf("storing transaction %s: %w", txn.ID, err)
	}
	if err := ids.Put([]byte(txn.ID), key); err != nil {
		return model.Transaction{}, fmt.Errorf("indexing transaction %s: %w", txn.ID, err)
	}
	return txn, nil
}

// nextTransactionID advances the month's counter past any ID already taken.
func nextTransactionID(tx *bolt.Tx, date time.Time) (string, error) {
	seqs := tx.Bucket([]byte(BucketSequences))
	ids := tx.Bucket([]byte(BucketTransactionIDs))
	month := []byte(model.MonthKey(date))

	var n uint64
	if v := seqs.Get(month); v != nil {
		n = btoi(v)
	}
	for {
		n++
		candidate := id.FormatTransactionID(date.Year(), int(date.Month()), int(n))
		if ids.Get([]byte(candidate)) == nil {
			if err := seqs.Put(month, itob(n)); err != nil {
				return "", fmt.Errorf("storing sequence for %s: %w", month, err)
			}
			return candidate, nil
		}
	}
}

// itob converts a sequence to a big-endian key so keys sort in insertion order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
