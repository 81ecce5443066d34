package repositories

import (
	"context"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// LedgerReader defines the read side of the record store. Active views
// exclude soft-deleted records; Find* operations see every record so the
// lifecycle operations can act on trashed ones.
type LedgerReader interface {
	FindAccountByID(ctx context.Context, id string) (*domain.Account, error)
	FindTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	FindBudgetByID(ctx context.Context, id string) (*domain.Budget, error)
	FindCategoryByID(ctx context.Context, id string) (*domain.Category, error)

	ActiveAccounts(ctx context.Context) ([]domain.Account, error)
	ActiveTransactions(ctx context.Context) ([]domain.Transaction, error)
	ActiveBudgets(ctx context.Context) ([]domain.Budget, error)
	ActiveCategories(ctx context.Context) ([]domain.Category, error)

	TrashedAccounts(ctx context.Context) ([]domain.Account, error)
	TrashedTransactions(ctx context.Context) ([]domain.Transaction, error)
	TrashedBudgets(ctx context.Context) ([]domain.Budget, error)

	// Snapshot copies every active collection in one locked read. Derived
	// computations (balances, aggregates, budget consumption) work on the
	// snapshot, never on live store state.
	Snapshot(ctx context.Context) (domain.Snapshot, error)

	GetSettings(ctx context.Context) (domain.AppSettings, error)
}

// LedgerWriter defines the mutation side of the record store. Create
// operations assign the identifier; Update operations are silent no-ops when
// the id does not exist.
type LedgerWriter interface {
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	CreateTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	CreateBudget(ctx context.Context, budget domain.Budget) (domain.Budget, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error

	// SetDeleted flips the soft-delete flag of one record.
	SetDeleted(ctx context.Context, kind domain.EntityKind, id string, deleted bool) error

	// SetDeletedBatch flips the soft-delete flag of every listed record as a
	// single atomic batch: either all flags flip or none do.
	SetDeletedBatch(ctx context.Context, batch map[domain.EntityKind][]string, deleted bool) error

	// Purge permanently removes one record, bypassing soft-delete bookkeeping.
	Purge(ctx context.Context, kind domain.EntityKind, id string) error

	// PurgeTrashed permanently removes every trashed account, transaction and
	// budget. Categories are excluded from the bulk operation.
	PurgeTrashed(ctx context.Context) error

	SaveSettings(ctx context.Context, settings domain.AppSettings) error
}

// LedgerRepository combines all record store operations.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
