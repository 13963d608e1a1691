package inmemory

import (
	"context"
	"sync"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

// SettingsRepositoryImpl represents an in memory storage
type SettingsRepositoryImpl struct {
	settings *domain.Settings

	lock *sync.RWMutex
}

// NewSettingsRepositoryImpl returns a repository holding default settings
func NewSettingsRepositoryImpl() *SettingsRepositoryImpl {
	return &SettingsRepositoryImpl{
		settings: domain.NewSettings(),
		lock:     &sync.RWMutex{},
	}
}

func (r *SettingsRepositoryImpl) GetSettings(
	_ context.Context,
) (*domain.Settings, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	settings := *r.settings
	return &settings, nil
}

func (r *SettingsRepositoryImpl) UpdateSettings(
	_ context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	settings := *r.settings
	updated, err := updateFn(&settings)
	if err != nil {
		return err
	}
	r.settings = updated
	return nil
}
