package services

import (
	"context"

	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SettingsSvcFacade manages application settings and exposes the currency
// formatter collaborator.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (domain.AppSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.AppSettings, error)
	ListCurrencies(ctx context.Context) []domain.Currency

	// FormatAmount renders an amount in the selected currency. When the
	// hide-values setting is on it returns a fixed masking string regardless
	// of input.
	FormatAmount(ctx context.Context, amount decimal.Decimal) (string, error)
}
