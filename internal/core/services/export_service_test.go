package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/store"
)

type ExportServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.LedgerStore
	service portssvc.ExportSvcFacade
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newTestStore(suite.T())
	suite.service = services.NewExportService(suite.store)
}

func (suite *ExportServiceTestSuite) exportLines() []string {
	data, err := suite.service.TransactionsCSV(suite.ctx)
	suite.Require().NoError(err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func (suite *ExportServiceTestSuite) TestEmptyLedger() {
	_, err := suite.service.TransactionsCSV(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNothingToExport)
}

func (suite *ExportServiceTestSuite) TestRowShape() {
	account, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Wallet"})
	suite.Require().NoError(err)

	txn, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{
		AccountID:  account.ID,
		CategoryID: "cat-1",
		Amount:     decimal.NewFromInt(25000),
		Type:       domain.Expense,
		Note:       `lunch at "Zena"`,
		Date:       time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	lines := suite.exportLines()
	suite.Require().Len(lines, 2)
	suite.Equal("ID,Date,Account,Type,Category,Note,Amount,DestinationAccount", lines[0])
	suite.Equal(txn.ID+`,2025-06-15,Wallet,EXPENSE,Food,"lunch at ""Zena""",25000,`, lines[1])
}

func (suite *ExportServiceTestSuite) TestTransferResolvesDestination() {
	from, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Wallet"})
	suite.Require().NoError(err)
	to, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Bank"})
	suite.Require().NoError(err)

	_, err = suite.store.CreateTransaction(suite.ctx, domain.Transaction{
		AccountID:   from.ID,
		ToAccountID: to.ID,
		Amount:      decimal.NewFromInt(450000),
		Type:        domain.Transfer,
		Date:        time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	lines := suite.exportLines()
	suite.Require().Len(lines, 2)
	suite.True(strings.HasSuffix(lines[1], ",Bank"), "row: %s", lines[1])
	suite.Contains(lines[1], ",Wallet,TRANSFER,")
}

func (suite *ExportServiceTestSuite) TestDanglingReferenceFallsBackToRawID() {
	_, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{
		AccountID:  "gone",
		CategoryID: "cat-999",
		Amount:     decimal.NewFromInt(100),
		Type:       domain.Expense,
		Date:       time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	lines := suite.exportLines()
	suite.Require().Len(lines, 2)
	suite.Contains(lines[1], ",gone,EXPENSE,cat-999,")
}

func (suite *ExportServiceTestSuite) TestRowsNewestFirst() {
	account, err := suite.store.CreateAccount(suite.ctx, domain.Account{Name: "Wallet"})
	suite.Require().NoError(err)

	day := func(d int) time.Time {
		return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
	}
	for _, d := range []int{5, 20, 10} {
		_, err := suite.store.CreateTransaction(suite.ctx, domain.Transaction{
			AccountID:  account.ID,
			CategoryID: "cat-1",
			Amount:     decimal.NewFromInt(int64(d)),
			Type:       domain.Expense,
			Date:       day(d),
		})
		suite.Require().NoError(err)
	}

	lines := suite.exportLines()
	suite.Require().Len(lines, 4)
	suite.Contains(lines[1], "2025-06-20")
	suite.Contains(lines[2], "2025-06-10")
	suite.Contains(lines[3], "2025-06-05")
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
