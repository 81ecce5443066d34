package domain

// Currency describes a display currency. DecimalPlaces drives the formatter's
// rounding; there is no conversion between currencies.
type Currency struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Flag          string `json:"flag"`
	DecimalPlaces int32  `json:"decimalPlaces"`
}

// Currencies is the built-in currency table.
var Currencies = []Currency{
	{Code: "AOA", Name: "Angolan Kwanza", Symbol: "Kz", Flag: "🇦🇴", DecimalPlaces: 2},
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸", DecimalPlaces: 2},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺", DecimalPlaces: 2},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Flag: "🇧🇷", DecimalPlaces: 2},
	{Code: "GBP", Name: "Pound Sterling", Symbol: "£", Flag: "🇬🇧", DecimalPlaces: 2},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵", DecimalPlaces: 0},
}

// FindCurrency looks up a currency by code.
func FindCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
