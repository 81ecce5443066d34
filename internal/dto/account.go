package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Icon           string          `json:"icon"`
	Color          string          `json:"color"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=100"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
	Icon           *string          `json:"icon"`
	Color          *string          `json:"color"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Icon           string          `json:"icon"`
	Color          string          `json:"color"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             acc.ID,
		Name:           acc.Name,
		InitialBalance: acc.InitialBalance,
		Icon:           acc.Icon,
		Color:          acc.Color,
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse pairs an account with its derived balance.
type AccountBalanceResponse struct {
	AccountResponse
	Balance decimal.Decimal `json:"balance"`
}

// BalancesResponse wraps the per-account balances plus the net worth.
type BalancesResponse struct {
	Accounts []AccountBalanceResponse `json:"accounts"`
	NetWorth decimal.Decimal          `json:"netWorth"`
}

// ToBalancesResponse converts derived balances to the response shape.
func ToBalancesResponse(balances []domain.AccountBalance, netWorth decimal.Decimal) BalancesResponse {
	accounts := make([]AccountBalanceResponse, len(balances))
	for i := range balances {
		accounts[i] = AccountBalanceResponse{
			AccountResponse: ToAccountResponse(&balances[i].Account),
			Balance:         balances[i].Balance,
		}
	}
	return BalancesResponse{Accounts: accounts, NetWorth: netWorth}
}
