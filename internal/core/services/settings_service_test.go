package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/store"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.LedgerStore
	service portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newTestStore(suite.T())
	suite.service = services.NewSettingsService(suite.store)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettingsPartial() {
	updated, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{
		DefaultCurrencyCode: ptr("USD"),
		HideValues:          ptr(true),
	})
	suite.Require().NoError(err)
	suite.Equal("USD", updated.DefaultCurrencyCode)
	suite.True(updated.HideValues)
	// Untouched fields keep their defaults.
	suite.True(updated.Fab.Visible)

	persisted, err := suite.service.GetSettings(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(updated, persisted)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettingsUnknownCurrency() {
	_, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{
		DefaultCurrencyCode: ptr("XYZ"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	settings, err := suite.service.GetSettings(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("AOA", settings.DefaultCurrencyCode)
}

func (suite *SettingsServiceTestSuite) TestListCurrenciesIsACopy() {
	currencies := suite.service.ListCurrencies(suite.ctx)
	suite.Require().NotEmpty(currencies)
	currencies[0].Symbol = "mutated"

	again := suite.service.ListCurrencies(suite.ctx)
	suite.Equal("Kz", again[0].Symbol)
}

func (suite *SettingsServiceTestSuite) TestFormatAmountUsesDefaultCurrency() {
	formatted, err := suite.service.FormatAmount(suite.ctx, decimal.NewFromInt(25000))
	suite.Require().NoError(err)
	suite.Equal("Kz 25,000.00", formatted)
}

func (suite *SettingsServiceTestSuite) TestFormatAmountMaskedWhileHidden() {
	_, err := suite.service.UpdateSettings(suite.ctx, dto.UpdateSettingsRequest{HideValues: ptr(true)})
	suite.Require().NoError(err)

	formatted, err := suite.service.FormatAmount(suite.ctx, decimal.NewFromInt(25000))
	suite.Require().NoError(err)
	suite.Equal("•••••", formatted)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func TestFormatCurrency(t *testing.T) {
	aoa, _ := domain.FindCurrency("AOA")
	jpy, _ := domain.FindCurrency("JPY")

	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency domain.Currency
		want     string
	}{
		{"grouped with cents", decimal.NewFromFloat(1234567.5), aoa, "Kz 1,234,567.50"},
		{"zero-decimal currency rounds", decimal.NewFromFloat(1234567.5), jpy, "¥ 1,234,568"},
		{"negative sign ahead of symbol", decimal.NewFromInt(-450000), aoa, "-Kz 450,000.00"},
		{"no grouping under a thousand", decimal.NewFromInt(999), aoa, "Kz 999.00"},
		{"zero", decimal.Zero, aoa, "Kz 0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.FormatCurrency(tt.amount, tt.currency))
		})
	}
}
