// Package id formats and parses transaction identifiers.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

const closingPrefix = "close-"

// FormatTransactionID returns a transaction ID like "2025-01-001".
func FormatTransactionID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseTransactionID parses "2025-01-001" into year, month, seq.
func ParseTransactionID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in transaction ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range in transaction ID %q", month, id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// FormatClosingID returns the closing transaction ID for a year, "close-2025".
func FormatClosingID(year int) string {
	return fmt.Sprintf("%s%04d", closingPrefix, year)
}

// ParseClosingID parses "close-2025" into its year.
func ParseClosingID(id string) (int, error) {
	rest, ok := strings.CutPrefix(id, closingPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid closing ID format: %q", id)
	}
	year, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid year in closing ID %q: %w", id, err)
	}
	return year, nil
}
