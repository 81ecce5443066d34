package domain

// FabSettings configures the floating action button of the client app. The
// backend only stores it.
type FabSettings struct {
	Visible     bool            `json:"visible"`
	DefaultType TransactionType `json:"defaultType"`
}

// AppSettings is the per-user application configuration. It is persisted like
// an entity collection but is a singleton and is not soft-deletable.
type AppSettings struct {
	DefaultCurrencyCode string      `json:"defaultCurrencyCode"`
	Fab                 FabSettings `json:"fab"`
	HideValues          bool        `json:"hideValues"`
}

// DefaultSettings returns the seed used when no settings exist in the
// persistence store.
func DefaultSettings() AppSettings {
	return AppSettings{
		DefaultCurrencyCode: "AOA",
		Fab: FabSettings{
			Visible:     true,
			DefaultType: Expense,
		},
		HideValues: false,
	}
}
