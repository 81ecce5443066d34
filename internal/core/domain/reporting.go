package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlyStats holds the income and expense totals for one calendar month.
// Transfers contribute to neither side.
type MonthlyStats struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TrendPoint is one month of a trend series.
type TrendPoint struct {
	Label   string          `json:"label"` // short month name, e.g. "Oct"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Comparison is a month-over-month delta, sign-prefixed and rounded to an
// integer percent. Favorable tells the presentation layer which color to use:
// an increase is favorable unless the metric is one where lower is better.
type Comparison struct {
	Value     string `json:"value"` // e.g. "+100%", "-37%"
	Favorable bool   `json:"favorable"`
}

// CategoryExpense is one category's expense total within a month.
type CategoryExpense struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// MonthlySummary aggregates the statistics view for one reference month,
// including deltas against the previous month.
type MonthlySummary struct {
	MonthlyStats
	MonthlyBalance      decimal.Decimal   `json:"monthlyBalance"`
	DailyAverageExpense decimal.Decimal   `json:"dailyAverageExpense"`
	BalanceComparison   *Comparison       `json:"balanceComparison,omitempty"`
	DailyAvgComparison  *Comparison       `json:"dailyAverageComparison,omitempty"`
	ExpenseByCategory   []CategoryExpense `json:"expenseByCategory"`
}
