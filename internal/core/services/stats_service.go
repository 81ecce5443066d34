package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
)

var oneHundred = decimal.NewFromInt(100)

// statsServiceImpl implements the StatsSvcFacade interface. Every method is a
// pure function of one store snapshot; nothing is cached between calls.
type statsServiceImpl struct {
	BaseService
	repo portsrepo.LedgerReader
}

// NewStatsService creates a new stats service over the given reader
func NewStatsService(repo portsrepo.LedgerReader) portssvc.StatsSvcFacade {
	return &statsServiceImpl{repo: repo}
}

// Ensure statsServiceImpl implements the StatsSvcFacade interface
var _ portssvc.StatsSvcFacade = (*statsServiceImpl)(nil)

func (s *statsServiceImpl) AccountBalances(ctx context.Context) ([]domain.AccountBalance, decimal.Decimal, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	balances := make([]domain.AccountBalance, 0, len(snap.Accounts))
	netWorth := decimal.Zero
	for _, account := range snap.Accounts {
		balance := BalanceOf(account, snap.Transactions)
		balances = append(balances, domain.AccountBalance{Account: account, Balance: balance})
		netWorth = netWorth.Add(balance)
	}
	return balances, netWorth, nil
}

func (s *statsServiceImpl) Summary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	current := firstOfMonth(month)
	previous := current.AddDate(0, -1, 0)

	stats := MonthlyStatsOf(snap.Transactions, current)
	prevStats := MonthlyStatsOf(snap.Transactions, previous)

	balance := stats.Income.Sub(stats.Expense)
	prevBalance := prevStats.Income.Sub(prevStats.Expense)
	dailyAvg := dailyAverageExpense(stats.Expense, current)
	prevDailyAvg := dailyAverageExpense(prevStats.Expense, previous)

	summary := &domain.MonthlySummary{
		MonthlyStats:        stats,
		MonthlyBalance:      balance,
		DailyAverageExpense: dailyAvg,
		BalanceComparison:   Compare(balance, prevBalance, false),
		DailyAvgComparison:  Compare(dailyAvg, prevDailyAvg, true),
		ExpenseByCategory:   expenseByCategory(snap, current),
	}
	return summary, nil
}

func (s *statsServiceImpl) Trend(ctx context.Context, month time.Time, months int) ([]domain.TrendPoint, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if months < 1 {
		months = 1
	}

	end := firstOfMonth(month)
	points := make([]domain.TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := end.AddDate(0, -i, 0)
		stats := MonthlyStatsOf(snap.Transactions, m)
		points = append(points, domain.TrendPoint{
			Label:   m.Format("Jan"),
			Income:  stats.Income,
			Expense: stats.Expense,
		})
	}
	return points, nil
}

func (s *statsServiceImpl) ExpenseByCategory(ctx context.Context, month time.Time) ([]domain.CategoryExpense, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return expenseByCategory(snap, firstOfMonth(month)), nil
}

// BalanceOf derives one account's balance: its initial balance plus the
// signed contribution of every transaction that touches it.
func BalanceOf(account domain.Account, txns []domain.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for _, txn := range txns {
		balance = balance.Add(txn.SignedAmountFor(account.ID))
	}
	return balance
}

// MonthlyStatsOf totals income and expense over one calendar month.
// Transfers contribute to neither side.
func MonthlyStatsOf(txns []domain.Transaction, month time.Time) domain.MonthlyStats {
	stats := domain.MonthlyStats{Income: decimal.Zero, Expense: decimal.Zero}
	for _, txn := range txns {
		if !txn.InMonth(month) {
			continue
		}
		switch txn.Type {
		case domain.Income:
			stats.Income = stats.Income.Add(txn.Amount)
		case domain.Expense:
			stats.Expense = stats.Expense.Add(txn.Amount)
		}
	}
	return stats
}

// Compare builds a month-over-month delta. Returns nil when both values are
// zero; saturates at ±100% when the previous value is zero; otherwise the
// percent difference against |previous|, rounded to an integer, with an
// explicit + only on positive deltas. An increase is favorable unless
// lowerIsBetter, a decrease when lowerIsBetter.
func Compare(current, previous decimal.Decimal, lowerIsBetter bool) *domain.Comparison {
	if previous.IsZero() {
		if current.IsZero() {
			return nil
		}
		if current.IsPositive() {
			return &domain.Comparison{Value: "+100%", Favorable: !lowerIsBetter}
		}
		return &domain.Comparison{Value: "-100%", Favorable: lowerIsBetter}
	}

	diff := current.Sub(previous).Div(previous.Abs()).Mul(oneHundred).Round(0)
	value := diff.String() + "%"
	if diff.IsPositive() {
		value = "+" + value
	}
	return &domain.Comparison{
		Value:     value,
		Favorable: diff.IsPositive() != lowerIsBetter,
	}
}

func expenseByCategory(snap domain.Snapshot, month time.Time) []domain.CategoryExpense {
	names := make(map[string]string, len(snap.Categories))
	order := make(map[string]int, len(snap.Categories))
	for i, c := range snap.Categories {
		if c.Type == domain.CategoryTypeExpense {
			names[c.ID] = c.Name
			order[c.ID] = i
		}
	}

	totals := make(map[string]decimal.Decimal)
	for _, txn := range snap.Transactions {
		if txn.Type != domain.Expense || !txn.InMonth(month) {
			continue
		}
		if _, ok := names[txn.CategoryID]; !ok {
			continue
		}
		totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
	}

	result := make([]domain.CategoryExpense, 0, len(totals))
	for id, amount := range totals {
		if amount.IsZero() {
			continue
		}
		result = append(result, domain.CategoryExpense{
			CategoryID: id,
			Name:       names[id],
			Amount:     amount,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return order[result[i].CategoryID] < order[result[j].CategoryID]
	})
	return result
}

func dailyAverageExpense(expense decimal.Decimal, month time.Time) decimal.Decimal {
	if expense.IsZero() {
		return decimal.Zero
	}
	days := daysInMonth(month)
	return expense.Div(decimal.NewFromInt(int64(days)))
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
