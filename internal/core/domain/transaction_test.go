package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

func TestSignedAmountFor(t *testing.T) {
	amount := decimal.NewFromInt(25000)

	tests := []struct {
		name      string
		txn       domain.Transaction
		accountID string
		want      decimal.Decimal
	}{
		{
			name:      "income into the account",
			txn:       domain.Transaction{AccountID: "a1", Amount: amount, Type: domain.Income},
			accountID: "a1",
			want:      amount,
		},
		{
			name:      "expense out of the account",
			txn:       domain.Transaction{AccountID: "a1", Amount: amount, Type: domain.Expense},
			accountID: "a1",
			want:      amount.Neg(),
		},
		{
			name:      "transfer source leg",
			txn:       domain.Transaction{AccountID: "a1", ToAccountID: "a2", Amount: amount, Type: domain.Transfer},
			accountID: "a1",
			want:      amount.Neg(),
		},
		{
			name:      "transfer destination leg",
			txn:       domain.Transaction{AccountID: "a1", ToAccountID: "a2", Amount: amount, Type: domain.Transfer},
			accountID: "a2",
			want:      amount,
		},
		{
			name:      "untouched account",
			txn:       domain.Transaction{AccountID: "a1", ToAccountID: "a2", Amount: amount, Type: domain.Transfer},
			accountID: "a3",
			want:      decimal.Zero,
		},
		{
			name:      "income into another account",
			txn:       domain.Transaction{AccountID: "a1", Amount: amount, Type: domain.Income},
			accountID: "a2",
			want:      decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.txn.SignedAmountFor(tt.accountID)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestInMonth(t *testing.T) {
	txn := domain.Transaction{Date: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}

	assert.True(t, txn.InMonth(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, txn.InMonth(time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)))
	assert.False(t, txn.InMonth(time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)))
	// Same month of a different year does not match.
	assert.False(t, txn.InMonth(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
}

func TestTouches(t *testing.T) {
	txn := domain.Transaction{AccountID: "a1", ToAccountID: "a2", Type: domain.Transfer}

	assert.True(t, txn.Touches("a1"))
	assert.True(t, txn.Touches("a2"))
	assert.False(t, txn.Touches("a3"))
}

func TestParseEntityKind(t *testing.T) {
	for _, valid := range []string{"account", "transaction", "budget", "category"} {
		kind, ok := domain.ParseEntityKind(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, string(kind))
	}

	_, ok := domain.ParseEntityKind("workplace")
	assert.False(t, ok)
}
