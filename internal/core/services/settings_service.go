package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kwanzacontrol/kc_backend/internal/apperrors"
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	portssvc "github.com/kwanzacontrol/kc_backend/internal/core/ports/services"
	"github.com/kwanzacontrol/kc_backend/internal/dto"
)

// maskedValue is what the formatter returns while hide-values is active.
const maskedValue = "•••••"

// settingsServiceImpl implements the SettingsSvcFacade interface
type settingsServiceImpl struct {
	BaseService
	repo portsrepo.LedgerRepository
}

// NewSettingsService creates a new settings service over the given repository
func NewSettingsService(repo portsrepo.LedgerRepository) portssvc.SettingsSvcFacade {
	return &settingsServiceImpl{repo: repo}
}

// Ensure settingsServiceImpl implements the SettingsSvcFacade interface
var _ portssvc.SettingsSvcFacade = (*settingsServiceImpl)(nil)

func (s *settingsServiceImpl) GetSettings(ctx context.Context) (domain.AppSettings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *settingsServiceImpl) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.AppSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.AppSettings{}, err
	}

	if req.DefaultCurrencyCode != nil {
		if _, ok := domain.FindCurrency(*req.DefaultCurrencyCode); !ok {
			return domain.AppSettings{}, fmt.Errorf("unsupported currency %q: %w",
				*req.DefaultCurrencyCode, apperrors.ErrValidation)
		}
		settings.DefaultCurrencyCode = *req.DefaultCurrencyCode
	}
	if req.Fab != nil {
		if req.Fab.Visible != nil {
			settings.Fab.Visible = *req.Fab.Visible
		}
		if req.Fab.DefaultType != nil {
			settings.Fab.DefaultType = *req.Fab.DefaultType
		}
	}
	if req.HideValues != nil {
		settings.HideValues = *req.HideValues
	}

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save settings")
		return domain.AppSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

func (s *settingsServiceImpl) ListCurrencies(_ context.Context) []domain.Currency {
	currencies := make([]domain.Currency, len(domain.Currencies))
	copy(currencies, domain.Currencies)
	return currencies
}

// FormatAmount renders the amount in the selected currency: symbol prefix,
// thousands separators, the currency's decimal places. While hide-values is
// active it returns the masking string for every input.
func (s *settingsServiceImpl) FormatAmount(ctx context.Context, amount decimal.Decimal) (string, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	if settings.HideValues {
		return maskedValue, nil
	}

	currency, ok := domain.FindCurrency(settings.DefaultCurrencyCode)
	if !ok {
		currency, _ = domain.FindCurrency(domain.DefaultSettings().DefaultCurrencyCode)
	}
	return FormatCurrency(amount, currency), nil
}

// FormatCurrency renders an amount as "<symbol> <grouped number>", negative
// sign ahead of the symbol.
func FormatCurrency(amount decimal.Decimal, currency domain.Currency) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(currency.DecimalPlaces)
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	grouped := groupThousands(intPart)
	if hasFrac {
		grouped += "." + fracPart
	}
	return sign + currency.Symbol + " " + grouped
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
