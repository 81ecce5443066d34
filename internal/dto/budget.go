package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	CategoryID string          `json:"categoryId" binding:"required"`
	Limit      decimal.Decimal `json:"limit" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget. A new
// category re-targets the budget under the same rules as creation.
type UpdateBudgetRequest struct {
	CategoryID *string          `json:"categoryId"`
	Limit      *decimal.Decimal `json:"limit"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"categoryId"`
	Limit         decimal.Decimal `json:"limit"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:            b.ID,
		CategoryID:    b.CategoryID,
		Limit:         b.Limit,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of domain.Budget to response DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

// BudgetStatusResponse is a budget enriched with its consumption for the
// requested month.
type BudgetStatusResponse struct {
	BudgetResponse
	CategoryName string          `json:"categoryName"`
	Spent        decimal.Decimal `json:"spent"`
	Ratio        decimal.Decimal `json:"ratio"`
	OverLimit    bool            `json:"overLimit"`
}

// ToListBudgetStatusResponse converts derived budget statuses to response DTOs
func ToListBudgetStatusResponse(statuses []domain.BudgetStatus) []BudgetStatusResponse {
	res := make([]BudgetStatusResponse, len(statuses))
	for i := range statuses {
		res[i] = BudgetStatusResponse{
			BudgetResponse: ToBudgetResponse(&statuses[i].Budget),
			CategoryName:   statuses[i].CategoryName,
			Spent:          statuses[i].Spent,
			Ratio:          statuses[i].Ratio,
			OverLimit:      statuses[i].OverLimit,
		}
	}
	return res
}
