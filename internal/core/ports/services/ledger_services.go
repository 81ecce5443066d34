package services

import (
	"context"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
)

// LedgerSvcFacade is the mutation surface of the ledger: entity CRUD with
// validation, plus the soft-delete lifecycle guarded by referential rules.
type LedgerSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// DeleteAccount soft-deletes an account. When active transactions still
	// reference it, the delete is rejected with ErrCascadeRequired unless
	// cascade is true, in which case the account and every referencing
	// transaction are trashed atomically.
	DeleteAccount(ctx context.Context, id string, cascade bool) error

	// DeleteAccountHistory soft-deletes every active transaction touching the
	// account without touching the account itself.
	DeleteAccountHistory(ctx context.Context, id string) error

	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	ListAccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)

	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	// DeleteCategory is blocked with ErrCategoryInUse while any active
	// transaction references the category.
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, typeFilter string) ([]domain.Category, error)

	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, id string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]domain.Budget, error)

	// Restore flips a trashed record back to active. Cross-entity invariants
	// are deliberately not re-validated; dangling references are tolerated at
	// read time.
	Restore(ctx context.Context, kind domain.EntityKind, id string) error
	PurgeItem(ctx context.Context, kind domain.EntityKind, id string) error
	EmptyTrash(ctx context.Context) error
	TrashedItems(ctx context.Context) ([]domain.Account, []domain.Transaction, []domain.Budget, error)
}
