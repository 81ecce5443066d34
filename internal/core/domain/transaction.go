package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a monetary movement.
type TransactionType string

const (
	Expense  TransactionType = "EXPENSE"
	Income   TransactionType = "INCOME"
	Transfer TransactionType = "TRANSFER"
)

// Transaction records a single monetary movement. AccountID is the source for
// EXPENSE/TRANSFER and the destination for INCOME. ToAccountID is set iff the
// type is TRANSFER, CategoryID iff the type is not TRANSFER. Amount is always
// positive; the sign is derived from the type and the account's role.
type Transaction struct {
	BaseEntity
	AccountID      string          `json:"accountId"`
	ToAccountID    string          `json:"toAccountId,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Type           TransactionType `json:"type"`
	CategoryID     string          `json:"categoryId,omitempty"`
	Date           time.Time       `json:"date"`
	Note           string          `json:"note"`
	RecurrenceRule string          `json:"recurrenceRule,omitempty"` // Stored only, never interpreted.
}

// SignedAmountFor returns this transaction's contribution to the balance of
// the given account: +amount for income into it, -amount for expense out of
// it, both signs for the two legs of a transfer, zero when untouched.
func (t Transaction) SignedAmountFor(accountID string) decimal.Decimal {
	switch t.Type {
	case Income:
		if t.AccountID == accountID {
			return t.Amount
		}
	case Expense:
		if t.AccountID == accountID {
			return t.Amount.Neg()
		}
	case Transfer:
		if t.AccountID == accountID {
			return t.Amount.Neg()
		}
		if t.ToAccountID == accountID {
			return t.Amount
		}
	}
	return decimal.Zero
}

// Touches reports whether the transaction references the account in either
// role.
func (t Transaction) Touches(accountID string) bool {
	return t.AccountID == accountID || t.ToAccountID == accountID
}

// InMonth reports whether the transaction's date falls in the same calendar
// month and year as ref.
func (t Transaction) InMonth(ref time.Time) bool {
	return t.Date.Year() == ref.Year() && t.Date.Month() == ref.Month()
}
