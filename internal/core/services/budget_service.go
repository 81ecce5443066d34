package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
)

var one = decimal.NewFromInt(1)

// budgetTrackerImpl implements the BudgetTrackerSvcFacade interface
type budgetTrackerImpl struct {
	BaseService
	repo portsrepo.LedgerReader
}

// NewBudgetTracker creates a new budget tracker over the given reader
func NewBudgetTracker(repo portsrepo.LedgerReader) portssvc.BudgetTrackerSvcFacade {
	return &budgetTrackerImpl{repo: repo}
}

// Ensure budgetTrackerImpl implements the BudgetTrackerSvcFacade interface
var _ portssvc.BudgetTrackerSvcFacade = (*budgetTrackerImpl)(nil)

func (s *budgetTrackerImpl) BudgetStatuses(ctx context.Context, month time.Time) ([]domain.BudgetStatus, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}

	statuses := make([]domain.BudgetStatus, 0, len(snap.Budgets))
	for _, budget := range snap.Budgets {
		spent := SpentFor(budget, snap.Transactions, month)

		ratio := decimal.Zero
		if budget.Limit.IsPositive() {
			ratio = spent.Div(budget.Limit)
		}

		statuses = append(statuses, domain.BudgetStatus{
			Budget:       budget,
			CategoryName: names[budget.CategoryID],
			Spent:        spent,
			Ratio:        ratio,
			OverLimit:    ratio.GreaterThanOrEqual(one),
		})
	}
	return statuses, nil
}

// SpentFor totals the active expense transactions charged against the
// budget's category in the reference month.
func SpentFor(budget domain.Budget, txns []domain.Transaction, month time.Time) decimal.Decimal {
	spent := decimal.Zero
	for _, txn := range txns {
		if txn.Type != domain.Expense || txn.CategoryID != budget.CategoryID {
			continue
		}
		if !txn.InMonth(month) {
			continue
		}
		spent = spent.Add(txn.Amount)
	}
	return spent
}
