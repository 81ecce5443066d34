package services

import (
	"context"
	"time"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatsSvcFacade derives balances and period aggregates from the current
// store snapshot. Every method recomputes from scratch; results carry no
// hidden state.
type StatsSvcFacade interface {
	// AccountBalances returns every active account with its derived balance,
	// plus the net worth (the sum of those balances).
	AccountBalances(ctx context.Context) ([]domain.AccountBalance, decimal.Decimal, error)

	// Summary aggregates the statistics for month's calendar month, including
	// comparisons against the previous month.
	Summary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error)

	// Trend returns months entries ending at month's calendar month, oldest
	// first, zero-filled for months without activity.
	Trend(ctx context.Context, month time.Time, months int) ([]domain.TrendPoint, error)

	// ExpenseByCategory totals the month's expenses per active EXPENSE
	// category, descending, omitting zero sums.
	ExpenseByCategory(ctx context.Context, month time.Time) ([]domain.CategoryExpense, error)
}

// BudgetTrackerSvcFacade computes budget consumption for a reference month.
type BudgetTrackerSvcFacade interface {
	BudgetStatuses(ctx context.Context, month time.Time) ([]domain.BudgetStatus, error)
}
