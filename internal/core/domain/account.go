package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a user-defined money account. The icon and color are
// presentation hints with no computational role.
type Account struct {
	BaseEntity
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Icon           string          `json:"icon"`
	Color          string          `json:"color"`
}

// AccountBalance pairs an account with its derived balance.
type AccountBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}
