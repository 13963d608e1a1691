package application_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	dbinmemory "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/storage/db/inmemory"
)

var supportedLocales = []string{"en", "it"}

func TestInitialLocaleResolution(t *testing.T) {
	tests := []struct {
		name      string
		persisted string
		preferred []string
		expected  string
	}{
		{
			name:      "persisted_wins",
			persisted: "it",
			preferred: []string{"en-US"},
			expected:  "it",
		},
		{
			name:      "preferred_matched",
			preferred: []string{"it-IT", "en"},
			expected:  "it",
		},
		{
			name:      "fallback_to_default",
			preferred: []string{"ja-JP"},
			expected:  "en",
		},
		{
			name:     "nothing_given",
			expected: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoManager := dbinmemory.NewDbManager()
			if len(tt.persisted) > 0 {
				err := repoManager.SettingsRepository().UpdateSettings(
					ctx, func(s *domain.Settings) (*domain.Settings, error) {
						s.Locale = tt.persisted
						return s, nil
					},
				)
				require.NoError(t, err)
			}

			svc := application.NewLocaleService(
				repoManager, newMockCatalogLoader(), supportedLocales, tt.preferred,
			)
			assert.Equal(t, tt.expected, svc.ActiveLocale())
		})
	}
}

func TestChangeLanguage(t *testing.T) {
	repoManager := dbinmemory.NewDbManager()
	svc := application.NewLocaleService(
		repoManager, newMockCatalogLoader(), supportedLocales, nil,
	)
	assert.Equal(t, "Hello", svc.Translate("hello"))

	err := svc.ChangeLanguage(ctx, "it")
	require.NoError(t, err)
	assert.Equal(t, "it", svc.ActiveLocale())
	assert.Equal(t, "Ciao", svc.Translate("hello"))

	// the choice is persisted
	settings, err := repoManager.SettingsRepository().GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "it", settings.Locale)
}

func TestChangeLanguageUnsupported(t *testing.T) {
	svc := application.NewLocaleService(
		dbinmemory.NewDbManager(), newMockCatalogLoader(), supportedLocales, nil,
	)

	err := svc.ChangeLanguage(ctx, "ja")
	assert.Equal(t, application.ErrUnsupportedLocale, err)
	assert.Equal(t, "en", svc.ActiveLocale())
}

func TestChangeLanguageSurvivesFailingLoad(t *testing.T) {
	loader := newMockCatalogLoader()
	svc := application.NewLocaleService(
		dbinmemory.NewDbManager(), loader, supportedLocales, nil,
	)

	loader.err = errors.New("catalog endpoint down")
	err := svc.ChangeLanguage(ctx, "it")
	require.NoError(t, err)

	// the locale switched anyway and the failure stays observable
	assert.Equal(t, "it", svc.ActiveLocale())
	require.Error(t, svc.TranslationError())

	// the default catalog still answers as fallback
	assert.Equal(t, "Bye", svc.Translate("bye"))
}

func TestCatalogLoadedOncePerLocale(t *testing.T) {
	loader := newMockCatalogLoader()
	svc := application.NewLocaleService(
		dbinmemory.NewDbManager(), loader, supportedLocales, nil,
	)

	require.NoError(t, svc.ChangeLanguage(ctx, "it"))
	require.NoError(t, svc.ChangeLanguage(ctx, "en"))
	require.NoError(t, svc.ChangeLanguage(ctx, "it"))
	svc.LoadTranslation(ctx, "it")

	assert.Equal(t, 1, loader.calls["en"])
	assert.Equal(t, 1, loader.calls["it"])
}

func TestTranslateFallsBackToKey(t *testing.T) {
	svc := application.NewLocaleService(
		dbinmemory.NewDbManager(), newMockCatalogLoader(), supportedLocales, nil,
	)

	assert.Equal(t, "unknown.key", svc.Translate("unknown.key"))

	// a key missing from the active catalog falls back to the default one
	require.NoError(t, svc.ChangeLanguage(ctx, "it"))
	assert.Equal(t, "Bye", svc.Translate("bye"))
}
