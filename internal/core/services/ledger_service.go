package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
)

// ledgerServiceImpl implements the LedgerSvcFacade interface. It owns entity
// validation and the referential rules that guard the soft-delete lifecycle.
type ledgerServiceImpl struct {
	BaseService
	repo portsrepo.LedgerRepository
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerServiceImpl)

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.LedgerRepository, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerServiceImpl{repo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerServiceImpl implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerServiceImpl)(nil)

// --- accounts ---

func (s *ledgerServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	account := domain.Account{
		Name:           req.Name,
		InitialBalance: req.InitialBalance,
		Icon:           req.Icon,
		Color:          req.Color,
	}

	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to create account")
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", created.ID))
	return &created, nil
}

func (s *ledgerServiceImpl) UpdateAccount(ctx context.Context, id string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.findActiveAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.InitialBalance != nil {
		account.InitialBalance = *req.InitialBalance
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	if req.Color != nil {
		account.Color = *req.Color
	}

	if err := s.repo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", id))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *ledgerServiceImpl) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.findActiveAccount(ctx, id)
}

func (s *ledgerServiceImpl) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ActiveAccounts(ctx)
}

func (s *ledgerServiceImpl) DeleteAccount(ctx context.Context, id string, cascade bool) error {
	if _, err := s.findActiveAccount(ctx, id); err != nil {
		return err
	}

	txnIDs, err := s.activeTransactionIDsTouching(ctx, id)
	if err != nil {
		return err
	}

	if len(txnIDs) > 0 && !cascade {
		s.LogDebug(ctx, "Account delete rejected, cascade not confirmed",
			slog.String("account_id", id),
			slog.Int("transaction_count", len(txnIDs)))
		return fmt.Errorf("account %s has %d transactions: %w", id, len(txnIDs), apperrors.ErrCascadeRequired)
	}

	batch := map[domain.EntityKind][]string{
		domain.KindAccount: {id},
	}
	if len(txnIDs) > 0 {
		batch[domain.KindTransaction] = txnIDs
	}

	if err := s.repo.SetDeletedBatch(ctx, batch, true); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", id))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "Account trashed",
		slog.String("account_id", id),
		slog.Int("cascaded_transactions", len(txnIDs)))
	return nil
}

func (s *ledgerServiceImpl) DeleteAccountHistory(ctx context.Context, id string) error {
	if _, err := s.findActiveAccount(ctx, id); err != nil {
		return err
	}

	txnIDs, err := s.activeTransactionIDsTouching(ctx, id)
	if err != nil {
		return err
	}
	if len(txnIDs) == 0 {
		return nil
	}

	batch := map[domain.EntityKind][]string{domain.KindTransaction: txnIDs}
	if err := s.repo.SetDeletedBatch(ctx, batch, true); err != nil {
		s.LogError(ctx, err, "Failed to delete account history", slog.String("account_id", id))
		return fmt.Errorf("failed to delete account history: %w", err)
	}

	s.LogInfo(ctx, "Account history trashed",
		slog.String("account_id", id),
		slog.Int("transaction_count", len(txnIDs)))
	return nil
}

// --- transactions ---

func (s *ledgerServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn := domain.Transaction{
		AccountID:      req.AccountID,
		ToAccountID:    req.ToAccountID,
		Amount:         req.Amount,
		Type:           req.Type,
		CategoryID:     req.CategoryID,
		Date:           req.Date,
		Note:           req.Note,
		RecurrenceRule: req.RecurrenceRule,
	}
	normalizeTransactionShape(&txn)

	if err := s.validateTransactionShape(ctx, txn); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", created.ID),
		slog.String("type", string(created.Type)))
	return &created, nil
}

func (s *ledgerServiceImpl) UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.findActiveTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		txn.AccountID = *req.AccountID
	}
	if req.ToAccountID != nil {
		txn.ToAccountID = *req.ToAccountID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	if req.RecurrenceRule != nil {
		txn.RecurrenceRule = *req.RecurrenceRule
	}
	normalizeTransactionShape(txn)

	if err := s.validateTransactionShape(ctx, *txn); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", id))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *ledgerServiceImpl) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.findActiveTransaction(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetDeleted(ctx, domain.KindTransaction, id, true); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", id))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *ledgerServiceImpl) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.ActiveTransactions(ctx)
}

func (s *ledgerServiceImpl) ListAccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.findActiveAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txns, err := s.repo.ActiveTransactions(ctx)
	if err != nil {
		return nil, err
	}

	matching := make([]domain.Transaction, 0)
	for _, txn := range txns {
		if txn.Touches(accountID) {
			matching = append(matching, txn)
		}
	}
	return matching, nil
}

// normalizeTransactionShape clears the field that does not apply to the
// transaction's type: the category for transfers, the destination account for
// everything else.
func normalizeTransactionShape(txn *domain.Transaction) {
	if txn.Type == domain.Transfer {
		txn.CategoryID = ""
	} else {
		txn.ToAccountID = ""
	}
}

// validateTransactionShape enforces the transaction invariants: positive
// amount, existing active endpoints, a matching-type category for
// expense/income, distinct endpoints for transfers.
func (s *ledgerServiceImpl) validateTransactionShape(ctx context.Context, txn domain.Transaction) error {
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("date is required: %w", apperrors.ErrValidation)
	}
	if _, err := s.findActiveAccount(ctx, txn.AccountID); err != nil {
		return fmt.Errorf("account %s: %w", txn.AccountID, apperrors.ErrValidation)
	}

	switch txn.Type {
	case domain.Transfer:
		if txn.ToAccountID == "" {
			return fmt.Errorf("transfer requires a destination account: %w", apperrors.ErrValidation)
		}
		if txn.ToAccountID == txn.AccountID {
			return fmt.Errorf("transfer endpoints must differ: %w", apperrors.ErrValidation)
		}
		if _, err := s.findActiveAccount(ctx, txn.ToAccountID); err != nil {
			return fmt.Errorf("destination account %s: %w", txn.ToAccountID, apperrors.ErrValidation)
		}
	case domain.Expense, domain.Income:
		if txn.CategoryID == "" {
			return fmt.Errorf("category is required: %w", apperrors.ErrValidation)
		}
		category, err := s.findActiveCategory(ctx, txn.CategoryID)
		if err != nil {
			return fmt.Errorf("category %s: %w", txn.CategoryID, apperrors.ErrValidation)
		}
		if string(category.Type) != string(txn.Type) {
			return fmt.Errorf("category type %s does not match transaction type %s: %w",
				category.Type, txn.Type, apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("unknown transaction type %q: %w", txn.Type, apperrors.ErrValidation)
	}
	return nil
}

// --- categories ---

func (s *ledgerServiceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	category := domain.Category{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  req.Type,
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &created, nil
}

func (s *ledgerServiceImpl) UpdateCategory(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.findActiveCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Type != nil {
		category.Type = *req.Type
	}

	if err := s.repo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", id))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *ledgerServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.findActiveCategory(ctx, id); err != nil {
		return err
	}

	txns, err := s.repo.ActiveTransactions(ctx)
	if err != nil {
		return err
	}
	inUse := 0
	for _, txn := range txns {
		if txn.CategoryID == id {
			inUse++
		}
	}
	if inUse > 0 {
		s.LogDebug(ctx, "Category delete blocked",
			slog.String("category_id", id),
			slog.Int("transaction_count", inUse))
		return fmt.Errorf("category %s is used by %d transactions: %w", id, inUse, apperrors.ErrCategoryInUse)
	}

	if err := s.repo.SetDeleted(ctx, domain.KindCategory, id, true); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", id))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *ledgerServiceImpl) ListCategories(ctx context.Context, typeFilter string) ([]domain.Category, error) {
	categories, err := s.repo.ActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	if typeFilter == "" {
		return categories, nil
	}

	filtered := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if string(c.Type) == typeFilter {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// --- budgets ---

func (s *ledgerServiceImpl) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if !req.Limit.IsPositive() {
		return nil, fmt.Errorf("limit must be positive: %w", apperrors.ErrValidation)
	}

	category, err := s.findActiveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", req.CategoryID, apperrors.ErrValidation)
	}
	if category.Type != domain.CategoryTypeExpense {
		return nil, fmt.Errorf("budgets only apply to expense categories: %w", apperrors.ErrValidation)
	}

	existing, err := s.repo.ActiveBudgets(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.CategoryID == req.CategoryID {
			return nil, fmt.Errorf("category %s already has a budget: %w", req.CategoryID, apperrors.ErrDuplicate)
		}
	}

	budget := domain.Budget{
		CategoryID: req.CategoryID,
		Limit:      req.Limit,
	}
	created, err := s.repo.CreateBudget(ctx, budget)
	if err != nil {
		s.LogError(ctx, err, "Failed to create budget")
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created",
		slog.String("budget_id", created.ID),
		slog.String("category_id", created.CategoryID))
	return &created, nil
}

func (s *ledgerServiceImpl) UpdateBudget(ctx context.Context, id string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.findActiveBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != budget.CategoryID {
		category, err := s.findActiveCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, apperrors.ErrValidation)
		}
		if category.Type != domain.CategoryTypeExpense {
			return nil, fmt.Errorf("budgets only apply to expense categories: %w", apperrors.ErrValidation)
		}

		existing, err := s.repo.ActiveBudgets(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range existing {
			if b.ID != budget.ID && b.CategoryID == *req.CategoryID {
				return nil, fmt.Errorf("category %s already has a budget: %w", *req.CategoryID, apperrors.ErrDuplicate)
			}
		}
		budget.CategoryID = *req.CategoryID
	}

	if req.Limit != nil {
		if !req.Limit.IsPositive() {
			return nil, fmt.Errorf("limit must be positive: %w", apperrors.ErrValidation)
		}
		budget.Limit = *req.Limit
	}

	if err := s.repo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", id))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

func (s *ledgerServiceImpl) DeleteBudget(ctx context.Context, id string) error {
	if _, err := s.findActiveBudget(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetDeleted(ctx, domain.KindBudget, id, true); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", id))
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func (s *ledgerServiceImpl) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return s.repo.ActiveBudgets(ctx)
}

// --- trash lifecycle ---

func (s *ledgerServiceImpl) Restore(ctx context.Context, kind domain.EntityKind, id string) error {
	deleted, err := s.deletedFlag(ctx, kind, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%s %s is not trashed: %w", kind, id, apperrors.ErrValidation)
	}

	if err := s.repo.SetDeleted(ctx, kind, id, false); err != nil {
		s.LogError(ctx, err, "Failed to restore record",
			slog.String("kind", string(kind)), slog.String("id", id))
		return fmt.Errorf("failed to restore %s: %w", kind, err)
	}

	s.LogInfo(ctx, "Record restored", slog.String("kind", string(kind)), slog.String("id", id))
	return nil
}

func (s *ledgerServiceImpl) PurgeItem(ctx context.Context, kind domain.EntityKind, id string) error {
	deleted, err := s.deletedFlag(ctx, kind, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%s %s is not trashed: %w", kind, id, apperrors.ErrValidation)
	}

	if err := s.repo.Purge(ctx, kind, id); err != nil {
		s.LogError(ctx, err, "Failed to purge record",
			slog.String("kind", string(kind)), slog.String("id", id))
		return fmt.Errorf("failed to purge %s: %w", kind, err)
	}

	s.LogInfo(ctx, "Record purged", slog.String("kind", string(kind)), slog.String("id", id))
	return nil
}

func (s *ledgerServiceImpl) EmptyTrash(ctx context.Context) error {
	if err := s.repo.PurgeTrashed(ctx); err != nil {
		s.LogError(ctx, err, "Failed to empty trash")
		return fmt.Errorf("failed to empty trash: %w", err)
	}
	s.LogInfo(ctx, "Trash emptied")
	return nil
}

func (s *ledgerServiceImpl) TrashedItems(ctx context.Context) ([]domain.Account, []domain.Transaction, []domain.Budget, error) {
	accounts, err := s.repo.TrashedAccounts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	txns, err := s.repo.TrashedTransactions(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	budgets, err := s.repo.TrashedBudgets(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return accounts, txns, budgets, nil
}

// --- lookup helpers ---

func (s *ledgerServiceImpl) findActiveAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *ledgerServiceImpl) findActiveTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *ledgerServiceImpl) findActiveCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

func (s *ledgerServiceImpl) findActiveBudget(ctx context.Context, id string) (*domain.Budget, error) {
	budget, err := s.repo.FindBudgetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if budget.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *ledgerServiceImpl) activeTransactionIDsTouching(ctx context.Context, accountID string) ([]string, error) {
	txns, err := s.repo.ActiveTransactions(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, txn := range txns {
		if txn.Touches(accountID) {
			ids = append(ids, txn.ID)
		}
	}
	return ids, nil
}

func (s *ledgerServiceImpl) deletedFlag(ctx context.Context, kind domain.EntityKind, id string) (bool, error) {
	switch kind {
	case domain.KindAccount:
		account, err := s.repo.FindAccountByID(ctx, id)
		if err != nil {
			return false, err
		}
		return account.IsDeleted, nil
	case domain.KindTransaction:
		txn, err := s.repo.FindTransactionByID(ctx, id)
		if err != nil {
			return false, err
		}
		return txn.IsDeleted, nil
	case domain.KindBudget:
		budget, err := s.repo.FindBudgetByID(ctx, id)
		if err != nil {
			return false, err
		}
		return budget.IsDeleted, nil
	case domain.KindCategory:
		category, err := s.repo.FindCategoryByID(ctx, id)
		if err != nil {
			return false, err
		}
		return category.IsDeleted, nil
	}
	return false, fmt.Errorf("unknown entity kind %q: %w", kind, apperrors.ErrValidation)
}
