package domain

import "context"

// SettingsRepository persists the single Settings row. There must be exactly
// one owning instance per persisted store for the process lifetime.
type SettingsRepository interface {
	// GetSettings returns the stored settings, or a default row if none was
	// ever written.
	GetSettings(ctx context.Context) (*Settings, error)
	// UpdateSettings applies updateFn to the stored row in a transactional
	// way and persists the result.
	UpdateSettings(
		ctx context.Context,
		updateFn func(s *Settings) (*Settings, error),
	) error
}
