package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// ComparisonResponse is a month-over-month delta for the summary view.
type ComparisonResponse struct {
	Value     string `json:"value"`
	Favorable bool   `json:"favorable"`
}

// CategoryExpenseResponse is one category's expense total within a month.
type CategoryExpenseResponse struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// SummaryResponse is the statistics view for one reference month.
type SummaryResponse struct {
	Income              decimal.Decimal           `json:"income"`
	Expense             decimal.Decimal           `json:"expense"`
	MonthlyBalance      decimal.Decimal           `json:"monthlyBalance"`
	DailyAverageExpense decimal.Decimal           `json:"dailyAverageExpense"`
	BalanceComparison   *ComparisonResponse       `json:"balanceComparison,omitempty"`
	DailyAvgComparison  *ComparisonResponse       `json:"dailyAverageComparison,omitempty"`
	ExpenseByCategory   []CategoryExpenseResponse `json:"expenseByCategory"`
}

// ToSummaryResponse converts a domain.MonthlySummary to SummaryResponse DTO
func ToSummaryResponse(s *domain.MonthlySummary) SummaryResponse {
	return SummaryResponse{
		Income:              s.Income,
		Expense:             s.Expense,
		MonthlyBalance:      s.MonthlyBalance,
		DailyAverageExpense: s.DailyAverageExpense,
		BalanceComparison:   toComparisonResponse(s.BalanceComparison),
		DailyAvgComparison:  toComparisonResponse(s.DailyAvgComparison),
		ExpenseByCategory:   ToListCategoryExpenseResponse(s.ExpenseByCategory),
	}
}

func toComparisonResponse(c *domain.Comparison) *ComparisonResponse {
	if c == nil {
		return nil
	}
	return &ComparisonResponse{Value: c.Value, Favorable: c.Favorable}
}

// ToListCategoryExpenseResponse converts per-category totals to response DTOs
func ToListCategoryExpenseResponse(in []domain.CategoryExpense) []CategoryExpenseResponse {
	res := make([]CategoryExpenseResponse, len(in))
	for i, e := range in {
		res[i] = CategoryExpenseResponse{CategoryID: e.CategoryID, Name: e.Name, Amount: e.Amount}
	}
	return res
}

// TrendPointResponse is one month of the trend series.
type TrendPointResponse struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ToListTrendPointResponse converts trend points to response DTOs
func ToListTrendPointResponse(points []domain.TrendPoint) []TrendPointResponse {
	res := make([]TrendPointResponse, len(points))
	for i, p := range points {
		res[i] = TrendPointResponse{Label: p.Label, Income: p.Income, Expense: p.Expense}
	}
	return res
}
