package pgsql

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
)

func TestNextReceiptNo(t *testing.T) {
	prefix := "SWIM-20260901-"
	last := func(s string) *string { return &s }

	tests := []struct {
		name   string
		lastNo *string
		want   string
	}{
		{"empty sequence starts at one", nil, prefix + "0001"},
		{"increments the suffix", last(prefix + "0001"), prefix + "0002"},
		{"keeps the zero padding", last(prefix + "0009"), prefix + "0010"},
		{"fills the padded range", last(prefix + "0999"), prefix + "1000"},
		{"widens past four digits", last(prefix + "9999"), prefix + "10000"},
		{"keeps counting once widened", last(prefix + "10000"), prefix + "10001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextReceiptNo(prefix, tt.lastNo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextReceiptNoSequence(t *testing.T) {
	prefix := "SWIM-20260901-"

	var lastNo *string
	for i := 1; i <= 12; i++ {
		got, err := nextReceiptNo(prefix, lastNo)
		require.NoError(t, err)
		assert.Len(t, got, len(prefix)+4)
		lastNo = &got
	}
	assert.Equal(t, prefix+"0012", *lastNo)
}

func TestNextReceiptNoMalformed(t *testing.T) {
	lastNo := "SWIM-20260901-00A1"

	_, err := nextReceiptNo("SWIM-20260901-", &lastNo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), lastNo)
}

func TestReceiptTransitionApplied(t *testing.T) {
	require.NoError(t, receiptTransitionApplied(pgconn.NewCommandTag("UPDATE 1"), "r1"))

	err := receiptTransitionApplied(pgconn.NewCommandTag("UPDATE 0"), "r1")
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "r1")
}
