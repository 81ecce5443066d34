package domain

import "github.com/shopspring/decimal"

// Budget caps monthly spending for one EXPENSE category. At most one active
// budget may exist per category.
type Budget struct {
	BaseEntity
	CategoryID string          `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
}

// BudgetStatus is a budget enriched with its consumption for a reference
// month. OverLimit is true when spent/limit reaches 1.
type BudgetStatus struct {
	Budget
	CategoryName string          `json:"categoryName"`
	Spent        decimal.Decimal `json:"spent"`
	Ratio        decimal.Decimal `json:"ratio"`
	OverLimit    bool            `json:"overLimit"`
}
