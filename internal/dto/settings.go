package dto

import (
	"github.com/kwanzacontrol/kc_backend/internal/core/domain"
)

// UpdateFabRequest updates the floating action button preferences.
type UpdateFabRequest struct {
	Visible     *bool                   `json:"visible"`
	DefaultType *domain.TransactionType `json:"defaultType" binding:"omitempty,oneof=EXPENSE INCOME TRANSFER"`
}

// UpdateSettingsRequest defines the data allowed for updating app settings.
// The currency code must name a supported currency; the service validates it
// against the built-in catalogue.
type UpdateSettingsRequest struct {
	DefaultCurrencyCode *string          `json:"defaultCurrencyCode"`
	Fab                 *UpdateFabRequest `json:"fab"`
	HideValues          *bool            `json:"hideValues"`
}

// SettingsResponse mirrors domain.AppSettings.
type SettingsResponse struct {
	DefaultCurrencyCode string             `json:"defaultCurrencyCode"`
	Fab                 domain.FabSettings `json:"fab"`
	HideValues          bool               `json:"hideValues"`
}

// ToSettingsResponse converts domain.AppSettings to SettingsResponse DTO
func ToSettingsResponse(s domain.AppSettings) SettingsResponse {
	return SettingsResponse{
		DefaultCurrencyCode: s.DefaultCurrencyCode,
		Fab:                 s.Fab,
		HideValues:          s.HideValues,
	}
}

// CurrencyResponse describes one supported currency.
type CurrencyResponse struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Flag          string `json:"flag"`
	DecimalPlaces int32  `json:"decimalPlaces"`
}

// ToListCurrencyResponse converts the currency catalogue to response DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		res[i] = CurrencyResponse{
			Code:          c.Code,
			Name:          c.Name,
			Symbol:        c.Symbol,
			Flag:          c.Flag,
			DecimalPlaces: c.DecimalPlaces,
		}
	}
	return res
}

// FormatAmountResponse carries a rendered amount string.
type FormatAmountResponse struct {
	Formatted string `json:"formatted"`
}
