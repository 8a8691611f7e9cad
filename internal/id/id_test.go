package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTransactionID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "2025-01-001"},
		{2025, 12, 99, "2025-12-099"},
		{2025, 1, 123, "2025-01-123"},
		{2025, 1, 1234, "2025-01-1234"},
	}
	for _, tt := range tests {
		got := FormatTransactionID(tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseTransactionID(t *testing.T) {
	year, month, seq, err := ParseTransactionID("2025-03-042")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 42, seq)
}

func TestParseTransactionID_Invalid(t *testing.T) {
	tests := []string{
		"",
		"2025-01",
		"abcd-01-001",
		"2025-xx-001",
		"2025-13-001",
		"2025-01-abc",
		"close-2025",
	}
	for _, input := range tests {
		_, _, _, err := ParseTransactionID(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestClosingID(t *testing.T) {
	assert.Equal(t, "close-2025", FormatClosingID(2025))

	year, err := ParseClosingID("close-2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	_, err = ParseClosingID("2025-01-001")
	assert.Error(t, err)
	_, err = ParseClosingID("close-abc")
	assert.Error(t, err)
}
