package domain

// DefaultFiatCurrency is the fiat display currency assigned to accounts
// that never chose one.
const DefaultFiatCurrency = "USD"

// DefaultLocale is the locale used when neither persistence nor the user's
// environment yields a supported one.
const DefaultLocale = "en"

// Settings is the single-row persisted application state restored at
// startup: the active locale and the last selected account.
type Settings struct {
	Locale          string
	SelectedAddress string
	FiatCurrency    string
	Network         string
}

// NewSettings returns settings with every field at its default.
func NewSettings() *Settings {
	return &Settings{
		Locale:       "",
		FiatCurrency: DefaultFiatCurrency,
	}
}
