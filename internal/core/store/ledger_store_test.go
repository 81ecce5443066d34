package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kwanzacontrol/kc_backend/internal/adapters/storage/memory"
	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	"github.com/kwanzacontrol/kc_backend/internal/core/store"
)

type LedgerStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	kv    *memory.KV
	store *store.LedgerStore
}

func (suite *LedgerStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.kv = memory.NewKV()
	suite.store = store.New(suite.kv, nil)
	suite.Require().NoError(suite.store.Load(suite.ctx))
}

func (suite *LedgerStoreTestSuite) TestLoadSeedsDefaults() {
	categories, err := suite.store.ActiveCategories(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(categories, 15)

	settings, err := suite.store.GetSettings(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("AOA", settings.DefaultCurrencyCode)
	suite.True(settings.Fab.Visible)

	accounts, err := suite.store.ActiveAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(accounts)
}

func (suite *LedgerStoreTestSuite) TestLoadReseedsOnUnparsableData() {
	suite.Require().NoError(suite.kv.Set(suite.ctx, "categories_"+store.SchemaVersion, []byte("{broken")))

	fresh := store.New(suite.kv, nil)
	suite.Require().NoError(fresh.Load(suite.ctx))

	categories, err := fresh.ActiveCategories(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(categories, 15)
}

func (suite *LedgerStoreTestSuite) TestCreateAssignsMonotonicIDs() {
	first, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Cash"})
	suite.Require().NoError(err)
	second, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Bank"})
	suite.Require().NoError(err)

	suite.NotEmpty(first.ID)
	suite.NotEqual(first.ID, second.ID)
	suite.Less(first.ID, second.ID)
	suite.False(first.CreatedAt.IsZero())
}

func (suite *LedgerStoreTestSuite) TestCreatePersistsCollection() {
	created, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Cash"})
	suite.Require().NoError(err)

	raw, found, err := suite.kv.Get(suite.ctx, "accounts_"+store.SchemaVersion)
	suite.Require().NoError(err)
	suite.Require().True(found)

	var persisted []domain.Account
	suite.Require().NoError(json.Unmarshal(raw, &persisted))
	suite.Require().Len(persisted, 1)
	suite.Equal(created.ID, persisted[0].ID)
}

func (suite *LedgerStoreTestSuite) TestReloadRoundTrip() {
	created, err := suite.store.CreateAccount(suite.ctx, domain.Account{
		Name:           "Bank",
		InitialBalance: decimal.NewFromInt(800000),
	})
	suite.Require().NoError(err)

	reloaded := store.New(suite.kv, nil)
	suite.Require().NoError(reloaded.Load(suite.ctx))

	account, err := reloaded.FindAccountByID(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal("Bank", account.Name)
	suite.True(decimal.NewFromInt(800000).Equal(account.InitialBalance))
}

func (suite *LedgerStoreTestSuite) TestTransactionsOrderedByDateDescending() {
	day := func(d int) time.Time {
		return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
	}

	older, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{Date: day(5), Amount: decimal.NewFromInt(1), Type: domain.Expense})
	suite.Require().NoError(err)
	newest, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{Date: day(20), Amount: decimal.NewFromInt(1), Type: domain.Expense})
	suite.Require().NoError(err)
	middle, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{Date: day(10), Amount: decimal.NewFromInt(1), Type: domain.Expense})
	suite.Require().NoError(err)

	txns, err := suite.store.ActiveTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(txns, 3)
	suite.Equal(newest.ID, txns[0].ID)
	suite.Equal(middle.ID, txns[1].ID)
	suite.Equal(older.ID, txns[2].ID)
}

func (suite *LedgerStoreTestSuite) TestSameDateTransactionsNewestFirst() {
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	first, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{Date: date, Amount: decimal.NewFromInt(1), Type: domain.Expense})
	suite.Require().NoError(err)
	second, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{Date: date, Amount: decimal.NewFromInt(1), Type: domain.Expense})
	suite.Require().NoError(err)

	txns, err := suite.store.ActiveTransactions(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(txns, 2)
	suite.Equal(second.ID, txns[0].ID)
	suite.Equal(first.ID, txns[1].ID)
}

func (suite *LedgerStoreTestSuite) TestSetDeletedBatchIsAtomic() {
	account, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Cash"})
	suite.Require().NoError(err)
	txn, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{
		AccountID: account.ID,
		Date:      time.Now(),
		Amount:    decimal.NewFromInt(1),
		Type:      domain.Expense,
	})
	suite.Require().NoError(err)

	// One unknown id poisons the whole batch: nothing flips.
	err = suite.store.SetDeletedBatch(suite.ctx, map[domain.EntityKind][]string{
		domain.KindAccount:     {account.ID},
		domain.KindTransaction: {txn.ID, "missing"},
	}, true)
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)

	got, err := suite.store.FindAccountByID(suite.ctx, account.ID)
	suite.Require().NoError(err)
	suite.False(got.IsDeleted)
	gotTxn, err := suite.store.FindTransactionByID(suite.ctx, txn.ID)
	suite.Require().NoError(err)
	suite.False(gotTxn.IsDeleted)

	// A valid batch flips everything together.
	err = suite.store.SetDeletedBatch(suite.ctx, map[domain.EntityKind][]string{
		domain.KindAccount:     {account.ID},
		domain.KindTransaction: {txn.ID},
	}, true)
	suite.Require().NoError(err)

	got, err = suite.store.FindAccountByID(suite.ctx, account.ID)
	suite.Require().NoError(err)
	suite.True(got.IsDeleted)
	gotTxn, err = suite.store.FindTransactionByID(suite.ctx, txn.ID)
	suite.Require().NoError(err)
	suite.True(gotTxn.IsDeleted)
}

func (suite *LedgerStoreTestSuite) TestPurgeRemovesRecord() {
	account, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Cash"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.Purge(suite.ctx, domain.KindAccount, account.ID))

	_, err = suite.store.FindAccountByID(suite.ctx, account.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerStoreTestSuite) TestPurgeTrashedExcludesCategories() {
	account, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Cash"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.SetDeleted(suite.ctx, domain.KindAccount, account.ID, true))
	suite.Require().NoError(suite.store.SetDeleted(suite.ctx, domain.KindCategory, "cat-1", true))

	suite.Require().NoError(suite.store.PurgeTrashed(suite.ctx))

	_, err = suite.store.FindAccountByID(suite.ctx, account.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// The trashed category survives the bulk purge.
	category, err := suite.store.FindCategoryByID(suite.ctx, "cat-1")
	suite.Require().NoError(err)
	suite.True(category.IsDeleted)
}

func (suite *LedgerStoreTestSuite) TestSnapshotExcludesTrashed() {
	account, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Cash"})
	suite.Require().NoError(err)
	trashed, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Old"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.SetDeleted(suite.ctx, domain.KindAccount, trashed.ID, true))

	snap, err := suite.store.Snapshot(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(snap.Accounts, 1)
	suite.Equal(account.ID, snap.Accounts[0].ID)
	suite.Len(snap.Categories, 15)
}

func (suite *LedgerStoreTestSuite) TestUpdateUnknownIDIsNoOp() {
	err := suite.store.UpdateAccount(suite.ctx, domain.Account{
		BaseEntity: domain.BaseEntity{ID: "missing"},
		Name:       "Ghost",
	})
	suite.Require().NoError(err)

	accounts, err := suite.store.ActiveAccounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(accounts)
}

func TestLedgerStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerStoreTestSuite))
}
