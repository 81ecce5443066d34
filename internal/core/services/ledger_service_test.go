package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kwanzacontrol/kc_backend/internal/adapters/storage/memory"
	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/store"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
)

// newTestStore builds a loaded record store over an in-memory KV, seeded with
// the default categories and settings.
func newTestStore(t *testing.T) *store.LedgerStore {
	t.Helper()
	s := store.New(memory.NewKV(), nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return s
}

func ptr[T any](v T) *T { return &v }

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.LedgerStore
	service portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newTestStore(suite.T())
	suite.service = services.NewLedgerService(suite.store)
}

func (suite *LedgerServiceTestSuite) createAccount(name string) *domain.Account {
	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{Name: name})
	suite.Require().NoError(err)
	return account
}

func (suite *LedgerServiceTestSuite) createExpense(accountID, categoryID string, amount int64) *domain.Transaction {
	txn, err := suite.service.CreateTransaction(suite.ctx, dto.CreateTransactionRequest{
		AccountID:  accountID,
		Amount:     decimal.NewFromInt(amount),
		Type:       domain.Expense,
		CategoryID: categoryID,
		Date:       time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return txn
}

func (suite *LedgerServiceTestSuite) TestCreateAccount() {
	account, err := suite.service.CreateAccount(suite.ctx, dto.CreateAccountRequest{
		Name:           "Carteira",
		InitialBalance: decimal.NewFromInt(75000),
		Icon:           "fa-wallet",
		Color:          "bg-emerald-500",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(account.ID)
	suite.Equal("Carteira", account.Name)
	suite.True(decimal.NewFromInt(75000).Equal(account.InitialBalance))
}

func (suite *LedgerServiceTestSuite) TestUpdateAccountPartialFields() {
	account := suite.createAccount("Cash")

	updated, err := suite.service.UpdateAccount(suite.ctx, account.ID, dto.UpdateAccountRequest{
		Name: ptr("Wallet"),
	})

	suite.Require().NoError(err)
	suite.Equal("Wallet", updated.Name)
	// Untouched fields keep their values.
	suite.True(account.InitialBalance.Equal(updated.InitialBalance))
}

func (suite *LedgerServiceTestSuite) TestGetAccountTrashedIsNotFound() {
	account := suite.createAccount("Cash")
	suite.Require().NoError(suite.service.DeleteAccount(suite.ctx, account.ID, false))

	_, err := suite.service.GetAccount(suite.ctx, account.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestDeleteAccountWithoutTransactions() {
	account := suite.createAccount("Cash")

	suite.Require().NoError(suite.service.DeleteAccount(suite.ctx, account.ID, false))

	accounts, err := suite.service.ListAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(accounts)
}

func (suite *LedgerServiceTestSuite) TestDeleteAccountRequiresCascade() {
	account := suite.createAccount("Cash")
	suite.createExpense(account.ID, "cat-1", 1000)

	err := suite.service.DeleteAccount(suite.ctx, account.ID, false)
	suite.Require().ErrorIs(err, apperrors.ErrCascadeRequired)

	// Nothing was trashed.
	_, err = suite.service.GetAccount(suite.ctx, account.ID)
	suite.NoError(err)
	txns, err := suite.service.ListTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(txns, 1)
}

func (suite *LedgerServiceTestSuite) TestDeleteAccountCascadesExactly() {
	account := suite.createAccount("Cash")
	other := suite.createAccount("Bank")

	touching := suite.createExpense(account.ID, "cat-1", 1000)
	unrelated := suite.createExpense(other.ID, "cat-1", 2000)

	// A transfer into the account is also part of the cascade.
	transfer, err := suite.service.CreateTransaction(suite.ctx, dto.CreateTransactionRequest{
		AccountID:   other.ID,
		ToAccountID: account.ID,
		Amount:      decimal.NewFromInt(500),
		Type:        domain.Transfer,
		Date:        time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteAccount(suite.ctx, account.ID, true))

	txns, err := suite.service.ListTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(unrelated.ID, txns[0].ID)

	trashedAccounts, trashedTxns, _, err := suite.service.TrashedItems(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(trashedAccounts, 1)
	suite.Equal(account.ID, trashedAccounts[0].ID)
	trashedIDs := []string{trashedTxns[0].ID, trashedTxns[1].ID}
	suite.ElementsMatch([]string{touching.ID, transfer.ID}, trashedIDs)
}

func (suite *LedgerServiceTestSuite) TestDeleteAccountHistoryKeepsAccount() {
	account := suite.createAccount("Cash")
	suite.createExpense(account.ID, "cat-1", 1000)
	suite.createExpense(account.ID, "cat-2", 2000)

	suite.Require().NoError(suite.service.DeleteAccountHistory(suite.ctx, account.ID))

	_, err := suite.service.GetAccount(suite.ctx, account.ID)
	suite.NoError(err)
	txns, err := suite.service.ListTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *LedgerServiceTestSuite) TestCreateTransactionValidations() {
	account := suite.createAccount("Cash")
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{
			name: "non-positive amount",
			req: dto.CreateTransactionRequest{
				AccountID: account.ID, Amount: decimal.Zero,
				Type: domain.Expense, CategoryID: "cat-1", Date: date,
			},
		},
		{
			name: "unknown account",
			req: dto.CreateTransactionRequest{
				AccountID: "missing", Amount: decimal.NewFromInt(10),
				Type: domain.Expense, CategoryID: "cat-1", Date: date,
			},
		},
		{
			name: "missing category",
			req: dto.CreateTransactionRequest{
				AccountID: account.ID, Amount: decimal.NewFromInt(10),
				Type: domain.Expense, Date: date,
			},
		},
		{
			name: "category type mismatch",
			req: dto.CreateTransactionRequest{
				AccountID: account.ID, Amount: decimal.NewFromInt(10),
				Type: domain.Income, CategoryID: "cat-1", Date: date,
			},
		},
		{
			name: "transfer with identical endpoints",
			req: dto.CreateTransactionRequest{
				AccountID: account.ID, ToAccountID: account.ID,
				Amount: decimal.NewFromInt(10), Type: domain.Transfer, Date: date,
			},
		},
		{
			name: "transfer without destination",
			req: dto.CreateTransactionRequest{
				AccountID: account.ID, Amount: decimal.NewFromInt(10),
				Type: domain.Transfer, Date: date,
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateTransaction(suite.ctx, tt.req)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *LedgerServiceTestSuite) TestTransferDropsCategory() {
	account := suite.createAccount("Cash")
	other := suite.createAccount("Bank")

	txn, err := suite.service.CreateTransaction(suite.ctx, dto.CreateTransactionRequest{
		AccountID:   account.ID,
		ToAccountID: other.ID,
		Amount:      decimal.NewFromInt(500),
		Type:        domain.Transfer,
		CategoryID:  "cat-1",
		Date:        time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	})

	suite.Require().NoError(err)
	suite.Empty(txn.CategoryID)
	suite.Equal(other.ID, txn.ToAccountID)
}

func (suite *LedgerServiceTestSuite) TestUpdateTransactionRevalidates() {
	account := suite.createAccount("Cash")
	txn := suite.createExpense(account.ID, "cat-1", 1000)

	_, err := suite.service.UpdateTransaction(suite.ctx, txn.ID, dto.UpdateTransactionRequest{
		Amount: ptr(decimal.NewFromInt(-5)),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	updated, err := suite.service.UpdateTransaction(suite.ctx, txn.ID, dto.UpdateTransactionRequest{
		Amount: ptr(decimal.NewFromInt(2500)),
	})
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(2500).Equal(updated.Amount))
}

func (suite *LedgerServiceTestSuite) TestDeleteCategoryBlockedWhileReferenced() {
	account := suite.createAccount("Cash")
	suite.createExpense(account.ID, "cat-1", 1000)

	err := suite.service.DeleteCategory(suite.ctx, "cat-1")
	suite.Require().ErrorIs(err, apperrors.ErrCategoryInUse)

	categories, err := suite.service.ListCategories(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(categories, 15)
}

func (suite *LedgerServiceTestSuite) TestDeleteCategoryUnblockedAfterTransactionTrashed() {
	account := suite.createAccount("Cash")
	txn := suite.createExpense(account.ID, "cat-1", 1000)

	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, txn.ID))
	suite.Require().NoError(suite.service.DeleteCategory(suite.ctx, "cat-1"))

	categories, err := suite.service.ListCategories(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(categories, 14)
}

func (suite *LedgerServiceTestSuite) TestListCategoriesFilteredByType() {
	categories, err := suite.service.ListCategories(suite.ctx, "INCOME")
	suite.Require().NoError(err)
	suite.Require().Len(categories, 2)
	for _, c := range categories {
		suite.Equal(domain.CategoryTypeIncome, c.Type)
	}
}

func (suite *LedgerServiceTestSuite) TestCreateBudgetDuplicateRejected() {
	_, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-1", Limit: decimal.NewFromInt(100000),
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-1", Limit: decimal.NewFromInt(50000),
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestCreateBudgetIncomeCategoryRejected() {
	// cat-13 is an INCOME category.
	_, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-13", Limit: decimal.NewFromInt(100000),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpdateBudgetNonPositiveLimitRejected() {
	budget, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-1", Limit: decimal.NewFromInt(100000),
	})
	suite.Require().NoError(err)

	_, err = suite.service.UpdateBudget(suite.ctx, budget.ID, dto.UpdateBudgetRequest{
		Limit: ptr(decimal.Zero),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpdateBudgetRetargetsCategory() {
	budget, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-1", Limit: decimal.NewFromInt(100000),
	})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateBudget(suite.ctx, budget.ID, dto.UpdateBudgetRequest{
		CategoryID: ptr("cat-2"),
	})
	suite.Require().NoError(err)
	suite.Equal("cat-2", updated.CategoryID)
	suite.True(decimal.NewFromInt(100000).Equal(updated.Limit))

	// Re-stating the budget's own category is a no-op, not a duplicate.
	updated, err = suite.service.UpdateBudget(suite.ctx, budget.ID, dto.UpdateBudgetRequest{
		CategoryID: ptr("cat-2"),
	})
	suite.Require().NoError(err)
	suite.Equal("cat-2", updated.CategoryID)
}

func (suite *LedgerServiceTestSuite) TestUpdateBudgetDuplicateCategoryRejected() {
	_, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-1", Limit: decimal.NewFromInt(100000),
	})
	suite.Require().NoError(err)
	budget, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-2", Limit: decimal.NewFromInt(50000),
	})
	suite.Require().NoError(err)

	_, err = suite.service.UpdateBudget(suite.ctx, budget.ID, dto.UpdateBudgetRequest{
		CategoryID: ptr("cat-1"),
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestUpdateBudgetIncomeCategoryRejected() {
	budget, err := suite.service.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		CategoryID: "cat-1", Limit: decimal.NewFromInt(100000),
	})
	suite.Require().NoError(err)

	// cat-13 is an INCOME category.
	_, err = suite.service.UpdateBudget(suite.ctx, budget.ID, dto.UpdateBudgetRequest{
		CategoryID: ptr("cat-13"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRestoreRoundTrip() {
	account := suite.createAccount("Cash")
	txn := suite.createExpense(account.ID, "cat-1", 1000)
	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, txn.ID))

	suite.Require().NoError(suite.service.Restore(suite.ctx, domain.KindTransaction, txn.ID))

	txns, err := suite.service.ListTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(txns, 1)
	suite.Equal(txn.ID, txns[0].ID)
}

func (suite *LedgerServiceTestSuite) TestRestoreActiveRecordRejected() {
	account := suite.createAccount("Cash")

	err := suite.service.Restore(suite.ctx, domain.KindAccount, account.ID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPurgeItemRequiresTrashed() {
	account := suite.createAccount("Cash")

	err := suite.service.PurgeItem(suite.ctx, domain.KindAccount, account.ID)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.Require().NoError(suite.service.DeleteAccount(suite.ctx, account.ID, false))
	suite.Require().NoError(suite.service.PurgeItem(suite.ctx, domain.KindAccount, account.ID))

	_, err = suite.service.GetAccount(suite.ctx, account.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestEmptyTrash() {
	account := suite.createAccount("Cash")
	txn := suite.createExpense(account.ID, "cat-1", 1000)
	suite.Require().NoError(suite.service.DeleteTransaction(suite.ctx, txn.ID))
	suite.Require().NoError(suite.service.DeleteAccount(suite.ctx, account.ID, false))

	suite.Require().NoError(suite.service.EmptyTrash(suite.ctx))

	accounts, txns, budgets, err := suite.service.TrashedItems(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(accounts)
	suite.Empty(txns)
	suite.Empty(budgets)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
