package application

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
)

// CatalogLoader fetches the message catalog of one locale. Implementations
// live in the infrastructure layer.
type CatalogLoader interface {
	Load(ctx context.Context, locale string) (map[string]string, error)
}

// LocaleService defines the methods of the application layer managing the
// active locale and its message catalog.
type LocaleService interface {
	// ActiveLocale returns the tag of the locale currently in use.
	ActiveLocale() string
	// SupportedLocales returns the tags the service accepts, in registration
	// order.
	SupportedLocales() []string
	// ChangeLanguage switches the active locale and loads its catalog. The
	// locale becomes active even when the catalog fails to load, the failure
	// stays observable through TranslationError.
	ChangeLanguage(ctx context.Context, locale string) error
	// LoadTranslation fetches the catalog of the given locale into the cache
	// without switching to it. Loading failures never propagate, they are
	// recorded and the cached or empty catalog stays in place.
	LoadTranslation(ctx context.Context, locale string)
	// Translate resolves a message key in the active catalog, falling back
	// to the key itself when missing.
	Translate(key string) string
	// TranslationError returns the failure of the last catalog load, nil
	// when it succeeded.
	TranslationError() error
}

type localeService struct {
	repoManager ports.DbManager
	loader      CatalogLoader
	supported   []string
	matcher     language.Matcher

	lock     *sync.RWMutex
	active   string
	catalogs map[string]map[string]string
	loadErr  error
}

// NewLocaleService is a constructor function for LocaleService. The active
// locale is resolved from the persisted settings first, then by matching the
// given preferred tags against the supported set, falling back to the
// default locale.
func NewLocaleService(
	repoManager ports.DbManager,
	loader CatalogLoader,
	supportedLocales []string,
	preferredTags []string,
) LocaleService {
	if len(supportedLocales) <= 0 {
		supportedLocales = []string{domain.DefaultLocale}
	}

	tags := make([]language.Tag, 0, len(supportedLocales))
	for _, l := range supportedLocales {
		tags = append(tags, language.Make(l))
	}

	svc := &localeService{
		repoManager: repoManager,
		loader:      loader,
		supported:   supportedLocales,
		matcher:     language.NewMatcher(tags),
		lock:        &sync.RWMutex{},
		catalogs:    map[string]map[string]string{},
	}
	svc.active = svc.resolveInitialLocale(preferredTags)
	svc.LoadTranslation(context.Background(), svc.active)

	return svc
}

func (s *localeService) resolveInitialLocale(preferredTags []string) string {
	settings, err := s.repoManager.SettingsRepository().GetSettings(context.Background())
	if err == nil && s.isSupported(settings.Locale) {
		return settings.Locale
	}

	preferred := make([]language.Tag, 0, len(preferredTags))
	for _, t := range preferredTags {
		if tag, err := language.Parse(t); err == nil {
			preferred = append(preferred, tag)
		}
	}
	if len(preferred) > 0 {
		_, index, confidence := s.matcher.Match(preferred...)
		if confidence > language.No {
			return s.supported[index]
		}
	}

	return domain.DefaultLocale
}

func (s *localeService) ActiveLocale() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.active
}

func (s *localeService) SupportedLocales() []string {
	locales := make([]string, len(s.supported))
	copy(locales, s.supported)
	return locales
}

func (s *localeService) ChangeLanguage(ctx context.Context, locale string) error {
	if !s.isSupported(locale) {
		return ErrUnsupportedLocale
	}

	s.lock.Lock()
	s.active = locale
	s.lock.Unlock()

	s.LoadTranslation(ctx, locale)

	return s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			settings.Locale = locale
			return settings, nil
		},
	)
}

func (s *localeService) LoadTranslation(ctx context.Context, locale string) {
	if !s.isSupported(locale) {
		s.setLoadErr(ErrUnsupportedLocale)
		return
	}

	s.lock.RLock()
	_, cached := s.catalogs[locale]
	s.lock.RUnlock()
	if cached {
		s.setLoadErr(nil)
		return
	}

	catalog, err := s.loader.Load(ctx, locale)
	if err != nil {
		log.WithError(err).WithField("locale", locale).Warn(
			"could not load message catalog",
		)
		s.setLoadErr(err)
		return
	}

	s.lock.Lock()
	s.catalogs[locale] = catalog
	s.loadErr = nil
	s.lock.Unlock()
}

func (s *localeService) Translate(key string) string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if catalog, ok := s.catalogs[s.active]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if s.active != domain.DefaultLocale {
		if catalog, ok := s.catalogs[domain.DefaultLocale]; ok {
			if msg, ok := catalog[key]; ok {
				return msg
			}
		}
	}
	return key
}

func (s *localeService) TranslationError() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loadErr
}

func (s *localeService) isSupported(locale string) bool {
	for _, l := range s.supported {
		if l == locale {
			return true
		}
	}
	return false
}

func (s *localeService) setLoadErr(err error) {
	s.lock.Lock()
	s.loadErr = err
	s.lock.Unlock()
}
