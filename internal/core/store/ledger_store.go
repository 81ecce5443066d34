// Package store implements the record store: the in-memory owner of every
// entity collection, backed by a key-value persistence medium. All mutations
// go through its narrow API; derived values are computed from snapshots.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
)

// SchemaVersion tags every persistence key. Bumping it orphans data stored
// under the previous tag: collections reinitialize from their defaults.
const SchemaVersion = "v12"

// LedgerStore owns the four entity collections plus the settings singleton.
// Each mutation is applied under the lock and then the affected collection is
// rewritten to the KV store; a failed write is logged, never rolled back.
type LedgerStore struct {
	mu     sync.RWMutex
	kv     portsrepo.KVStore
	logger *slog.Logger

	accounts     []domain.Account
	transactions []domain.Transaction
	budgets      []domain.Budget
	categories   []domain.Category
	settings     domain.AppSettings

	// id generation state; ids are <unixMilli>-<seq> so they stay unique and
	// sort by creation order even within one millisecond.
	lastMilli int64
	seq       int
}

var _ portsrepo.LedgerRepository = (*LedgerStore)(nil)

// New creates a store over the given KV medium. Call Load before use.
func New(kv portsrepo.KVStore, logger *slog.Logger) *LedgerStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerStore{kv: kv, logger: logger}
}

func collectionKey(name string) string {
	return name + "_" + SchemaVersion
}

// Load reads every collection from the KV store. Absent or unparsable data
// initializes the collection to its default: empty for accounts,
// transactions and budgets, the built-in seeds for categories and settings.
func (s *LedgerStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCollection(ctx, "accounts", &s.accounts, nil); err != nil {
		return err
	}
	if err := s.loadCollection(ctx, "transactions", &s.transactions, nil); err != nil {
		return err
	}
	if err := s.loadCollection(ctx, "budgets", &s.budgets, nil); err != nil {
		return err
	}
	if err := s.loadCollection(ctx, "categories", &s.categories, domain.DefaultCategories); err != nil {
		return err
	}

	raw, found, err := s.kv.Get(ctx, collectionKey("settings"))
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	s.settings = domain.DefaultSettings()
	if found {
		if err := json.Unmarshal(raw, &s.settings); err != nil {
			s.logger.Warn("Unparsable settings, reseeding defaults", slog.String("error", err.Error()))
			s.settings = domain.DefaultSettings()
		}
	}

	s.sortTransactionsLocked()
	s.logger.Info("Ledger store loaded",
		slog.Int("accounts", len(s.accounts)),
		slog.Int("transactions", len(s.transactions)),
		slog.Int("budgets", len(s.budgets)),
		slog.Int("categories", len(s.categories)))
	return nil
}

func (s *LedgerStore) loadCollection(ctx context.Context, name string, target any, seed func() []domain.Category) error {
	raw, found, err := s.kv.Get(ctx, collectionKey(name))
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", name, err)
	}
	if found {
		if err := json.Unmarshal(raw, target); err == nil {
			return nil
		}
		s.logger.Warn("Unparsable collection, reinitializing", slog.String("collection", name))
	}
	if seed != nil {
		if cats, ok := target.(*[]domain.Category); ok {
			*cats = seed()
			return nil
		}
	}
	return nil
}

// persistLocked rewrites one collection. Persistence is fire-and-forget
// relative to the in-memory state: errors are logged and the mutation stands.
func (s *LedgerStore) persistLocked(ctx context.Context, name string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to marshal collection", slog.String("collection", name), slog.String("error", err.Error()))
		return
	}
	if err := s.kv.Set(ctx, collectionKey(name), raw); err != nil {
		s.logger.Error("Failed to persist collection", slog.String("collection", name), slog.String("error", err.Error()))
	}
}

func (s *LedgerStore) persistKindLocked(ctx context.Context, kind domain.EntityKind) {
	switch kind {
	case domain.KindAccount:
		s.persistLocked(ctx, "accounts", s.accounts)
	case domain.KindTransaction:
		s.persistLocked(ctx, "transactions", s.transactions)
	case domain.KindBudget:
		s.persistLocked(ctx, "budgets", s.budgets)
	case domain.KindCategory:
		s.persistLocked(ctx, "categories", s.categories)
	}
}

// nextIDLocked returns a fresh identifier. Monotonic across the lifetime of
// the store; lexicographic order follows creation order.
func (s *LedgerStore) nextIDLocked() string {
	now := time.Now().UnixMilli()
	if now > s.lastMilli {
		s.lastMilli = now
		s.seq = 0
	} else {
		s.seq++
	}
	return fmt.Sprintf("%d-%04d", s.lastMilli, s.seq)
}

func (s *LedgerStore) sortTransactionsLocked() {
	// Descending date; stable so equal dates keep insertion order, which is
	// newest first because creates prepend.
	sort.SliceStable(s.transactions, func(i, j int) bool {
		return s.transactions[i].Date.After(s.transactions[j].Date)
	})
}

// --- accounts ---

// CreateAccount assigns an id and timestamps and appends the account.
func (s *LedgerStore) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	account.ID = s.nextIDLocked()
	account.CreatedAt = now
	account.LastUpdatedAt = now
	account.IsDeleted = false
	s.accounts = append(s.accounts, account)
	s.persistLocked(ctx, "accounts", s.accounts)
	return account, nil
}

// UpdateAccount replaces the stored account with the same id. No-op when the
// id is unknown.
func (s *LedgerStore) UpdateAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].ID == account.ID {
			account.LastUpdatedAt = time.Now()
			s.accounts[i] = account
			s.persistLocked(ctx, "accounts", s.accounts)
			return nil
		}
	}
	return nil
}

// FindAccountByID returns the account regardless of its deletion state.
func (s *LedgerStore) FindAccountByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.accounts {
		if s.accounts[i].ID == id {
			account := s.accounts[i]
			return &account, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- transactions ---

// CreateTransaction assigns an id, prepends the transaction and restores
// descending date order, so same-date entries read newest first.
func (s *LedgerStore) CreateTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	txn.ID = s.nextIDLocked()
	txn.CreatedAt = now
	txn.LastUpdatedAt = now
	txn.IsDeleted = false
	s.transactions = append([]domain.Transaction{txn}, s.transactions...)
	s.sortTransactionsLocked()
	s.persistLocked(ctx, "transactions", s.transactions)
	return txn, nil
}

// UpdateTransaction replaces the stored transaction with the same id and
// re-sorts in case the date changed. No-op when the id is unknown.
func (s *LedgerStore) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == txn.ID {
			txn.LastUpdatedAt = time.Now()
			s.transactions[i] = txn
			s.sortTransactionsLocked()
			s.persistLocked(ctx, "transactions", s.transactions)
			return nil
		}
	}
	return nil
}

// FindTransactionByID returns the transaction regardless of its deletion state.
func (s *LedgerStore) FindTransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.transactions {
		if s.transactions[i].ID == id {
			txn := s.transactions[i]
			return &txn, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- budgets ---

// CreateBudget assigns an id and timestamps and appends the budget.
func (s *LedgerStore) CreateBudget(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	budget.ID = s.nextIDLocked()
	budget.CreatedAt = now
	budget.LastUpdatedAt = now
	budget.IsDeleted = false
	s.budgets = append(s.budgets, budget)
	s.persistLocked(ctx, "budgets", s.budgets)
	return budget, nil
}

// UpdateBudget replaces the stored budget with the same id. No-op when the id
// is unknown.
func (s *LedgerStore) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID == budget.ID {
			budget.LastUpdatedAt = time.Now()
			s.budgets[i] = budget
			s.persistLocked(ctx, "budgets", s.budgets)
			return nil
		}
	}
	return nil
}

// FindBudgetByID returns the budget regardless of its deletion state.
func (s *LedgerStore) FindBudgetByID(_ context.Context, id string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.budgets {
		if s.budgets[i].ID == id {
			budget := s.budgets[i]
			return &budget, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- categories ---

// CreateCategory assigns an id and timestamps and appends the category.
func (s *LedgerStore) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	category.ID = s.nextIDLocked()
	category.CreatedAt = now
	category.LastUpdatedAt = now
	category.IsDeleted = false
	s.categories = append(s.categories, category)
	s.persistLocked(ctx, "categories", s.categories)
	return category, nil
}

// UpdateCategory replaces the stored category with the same id. No-op when
// the id is unknown.
func (s *LedgerStore) UpdateCategory(ctx context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			category.LastUpdatedAt = time.Now()
			s.categories[i] = category
			s.persistLocked(ctx, "categories", s.categories)
			return nil
		}
	}
	return nil
}

// FindCategoryByID returns the category regardless of its deletion state.
func (s *LedgerStore) FindCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			category := s.categories[i]
			return &category, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// --- lifecycle ---

// SetDeleted flips the soft-delete flag of one record.
func (s *LedgerStore) SetDeleted(ctx context.Context, kind domain.EntityKind, id string, deleted bool) error {
	return s.SetDeletedBatch(ctx, map[domain.EntityKind][]string{kind: {id}}, deleted)
}

// SetDeletedBatch flips the soft-delete flag of every listed record as one
// atomic batch under the store lock: the ids are resolved first, and only
// when all of them exist are any flags flipped. No observable intermediate
// state exists.
func (s *LedgerStore) SetDeletedBatch(ctx context.Context, batch map[domain.EntityKind][]string, deleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type target struct {
		kind  domain.EntityKind
		index int
	}
	targets := make([]target, 0)
	for kind, ids := range batch {
		for _, id := range ids {
			idx := s.indexOfLocked(kind, id)
			if idx < 0 {
				return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
			}
			targets = append(targets, target{kind: kind, index: idx})
		}
	}

	touched := make(map[domain.EntityKind]bool)
	for _, t := range targets {
		switch t.kind {
		case domain.KindAccount:
			s.accounts[t.index].IsDeleted = deleted
			s.accounts[t.index].LastUpdatedAt = time.Now()
		case domain.KindTransaction:
			s.transactions[t.index].IsDeleted = deleted
			s.transactions[t.index].LastUpdatedAt = time.Now()
		case domain.KindBudget:
			s.budgets[t.index].IsDeleted = deleted
			s.budgets[t.index].LastUpdatedAt = time.Now()
		case domain.KindCategory:
			s.categories[t.index].IsDeleted = deleted
			s.categories[t.index].LastUpdatedAt = time.Now()
		}
		touched[t.kind] = true
	}

	for kind := range touched {
		s.persistKindLocked(ctx, kind)
	}
	return nil
}

// Purge permanently removes one record, whatever its deletion state.
func (s *LedgerStore) Purge(ctx context.Context, kind domain.EntityKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(kind, id)
	if idx < 0 {
		return fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}

	switch kind {
	case domain.KindAccount:
		s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)
	case domain.KindTransaction:
		s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	case domain.KindBudget:
		s.budgets = append(s.budgets[:idx], s.budgets[idx+1:]...)
	case domain.KindCategory:
		s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	}
	s.persistKindLocked(ctx, kind)
	return nil
}

// PurgeTrashed removes every trashed account, transaction and budget in one
// batch. Categories are excluded.
func (s *LedgerStore) PurgeTrashed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = keepActiveAccounts(s.accounts)
	s.transactions = keepActiveTransactions(s.transactions)
	s.budgets = keepActiveBudgets(s.budgets)

	s.persistLocked(ctx, "accounts", s.accounts)
	s.persistLocked(ctx, "transactions", s.transactions)
	s.persistLocked(ctx, "budgets", s.budgets)
	return nil
}

func (s *LedgerStore) indexOfLocked(kind domain.EntityKind, id string) int {
	switch kind {
	case domain.KindAccount:
		for i := range s.accounts {
			if s.accounts[i].ID == id {
				return i
			}
		}
	case domain.KindTransaction:
		for i := range s.transactions {
			if s.transactions[i].ID == id {
				return i
			}
		}
	case domain.KindBudget:
		for i := range s.budgets {
			if s.budgets[i].ID == id {
				return i
			}
		}
	case domain.KindCategory:
		for i := range s.categories {
			if s.categories[i].ID == id {
				return i
			}
		}
	}
	return -1
}

// --- views ---

func keepActiveAccounts(in []domain.Account) []domain.Account {
	out := in[:0]
	for _, a := range in {
		if !a.IsDeleted {
			out = append(out, a)
		}
	}
	return out
}

func keepActiveTransactions(in []domain.Transaction) []domain.Transaction {
	out := in[:0]
	for _, t := range in {
		if !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out
}

func keepActiveBudgets(in []domain.Budget) []domain.Budget {
	out := in[:0]
	for _, b := range in {
		if !b.IsDeleted {
			out = append(out, b)
		}
	}
	return out
}

// ActiveAccounts returns a copy of the non-deleted accounts in creation order.
func (s *LedgerStore) ActiveAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterAccounts(s.accounts, false), nil
}

// TrashedAccounts returns a copy of the soft-deleted accounts.
func (s *LedgerStore) TrashedAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterAccounts(s.accounts, true), nil
}

// ActiveTransactions returns a copy of the non-deleted transactions in
// descending date order.
func (s *LedgerStore) ActiveTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterTransactions(s.transactions, false), nil
}

// TrashedTransactions returns a copy of the soft-deleted transactions.
func (s *LedgerStore) TrashedTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterTransactions(s.transactions, true), nil
}

// ActiveBudgets returns a copy of the non-deleted budgets in creation order.
func (s *LedgerStore) ActiveBudgets(_ context.Context) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBudgets(s.budgets, false), nil
}

// TrashedBudgets returns a copy of the soft-deleted budgets.
func (s *LedgerStore) TrashedBudgets(_ context.Context) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBudgets(s.budgets, true), nil
}

// ActiveCategories returns a copy of the non-deleted categories.
func (s *LedgerStore) ActiveCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

// Snapshot copies every active collection under a single read lock.
func (s *LedgerStore) Snapshot(_ context.Context) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Snapshot{
		Accounts:     filterAccounts(s.accounts, false),
		Transactions: filterTransactions(s.transactions, false),
		Budgets:      filterBudgets(s.budgets, false),
	}
	snap.Categories = make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if !c.IsDeleted {
			snap.Categories = append(snap.Categories, c)
		}
	}
	return snap, nil
}

// GetSettings returns the settings singleton.
func (s *LedgerStore) GetSettings(_ context.Context) (domain.AppSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// SaveSettings replaces and persists the settings singleton.
func (s *LedgerStore) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.persistLocked(ctx, "settings", s.settings)
	return nil
}

func filterAccounts(in []domain.Account, deleted bool) []domain.Account {
	out := make([]domain.Account, 0, len(in))
	for _, a := range in {
		if a.IsDeleted == deleted {
			out = append(out, a)
		}
	}
	return out
}

func filterTransactions(in []domain.Transaction, deleted bool) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(in))
	for _, t := range in {
		if t.IsDeleted == deleted {
			out = append(out, t)
		}
	}
	return out
}

func filterBudgets(in []domain.Budget, deleted bool) []domain.Budget {
	out := make([]domain.Budget, 0, len(in))
	for _, b := range in {
		if b.IsDeleted == deleted {
			out = append(out, b)
		}
	}
	return out
}
