package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Cross-field shape rules (category vs destination account, positive amount,
// distinct transfer endpoints) are enforced by the service layer.
type CreateTransactionRequest struct {
	AccountID      string                 `json:"accountId" binding:"required"`
	ToAccountID    string                 `json:"toAccountId"`
	Amount         decimal.Decimal        `json:"amount" binding:"required"`
	Type           domain.TransactionType `json:"type" binding:"required,oneof=EXPENSE INCOME TRANSFER"`
	CategoryID     string                 `json:"categoryId"`
	Date           time.Time              `json:"date" binding:"required"`
	Note           string                 `json:"note"`
	RecurrenceRule string                 `json:"recurrenceRule"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	AccountID      *string                 `json:"accountId"`
	ToAccountID    *string                 `json:"toAccountId"`
	Amount         *decimal.Decimal        `json:"amount"`
	Type           *domain.TransactionType `json:"type" binding:"omitempty,oneof=EXPENSE INCOME TRANSFER"`
	CategoryID     *string                 `json:"categoryId"`
	Date           *time.Time              `json:"date"`
	Note           *string                 `json:"note"`
	RecurrenceRule *string                 `json:"recurrenceRule"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID             string                 `json:"id"`
	AccountID      string                 `json:"accountId"`
	ToAccountID    string                 `json:"toAccountId,omitempty"`
	Amount         decimal.Decimal        `json:"amount"`
	Type           domain.TransactionType `json:"type"`
	CategoryID     string                 `json:"categoryId,omitempty"`
	Date           time.Time              `json:"date"`
	Note           string                 `json:"note"`
	RecurrenceRule string                 `json:"recurrenceRule,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             txn.ID,
		AccountID:      txn.AccountID,
		ToAccountID:    txn.ToAccountID,
		Amount:         txn.Amount,
		Type:           txn.Type,
		CategoryID:     txn.CategoryID,
		Date:           txn.Date,
		Note:           txn.Note,
		RecurrenceRule: txn.RecurrenceRule,
		CreatedAt:      txn.CreatedAt,
		LastUpdatedAt:  txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
