package dto

import (
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// TrashResponse lists every soft-deleted record by kind. Categories never
// appear here; they are deleted in place or blocked.
type TrashResponse struct {
	Accounts     []AccountResponse     `json:"accounts"`
	Transactions []TransactionResponse `json:"transactions"`
	Budgets      []BudgetResponse      `json:"budgets"`
}

// ToTrashResponse converts the trashed collections to the response shape.
func ToTrashResponse(accounts []domain.Account, txns []domain.Transaction, budgets []domain.Budget) TrashResponse {
	return TrashResponse{
		Accounts:     ToListAccountResponse(accounts),
		Transactions: ToListTransactionResponse(txns),
		Budgets:      ToListBudgetResponse(budgets),
	}
}
