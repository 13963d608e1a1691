package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

// settingsKey is the fixed key of the single settings row in the wallet
// store. Badgerhold namespaces keys by type, so it cannot collide with
// account entries.
const settingsKey = "settings"

type settingsRepositoryImpl struct {
	db *DbManager
}

// NewSettingsRepositoryImpl initializes a badger implementation of the
// domain.SettingsRepository
func NewSettingsRepositoryImpl(db *DbManager) domain.SettingsRepository {
	return settingsRepositoryImpl{
		db: db,
	}
}

func (r settingsRepositoryImpl) GetSettings(
	ctx context.Context,
) (*domain.Settings, error) {
	var err error
	var settings domain.Settings

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxGet(tx, settingsKey, &settings)
	} else {
		err = r.db.Store.Get(settingsKey, &settings)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.NewSettings(), nil
		}
		return nil, err
	}

	return &settings, nil
}

func (r settingsRepositoryImpl) UpdateSettings(
	ctx context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	currentSettings, err := r.GetSettings(ctx)
	if err != nil {
		return err
	}

	updatedSettings, err := updateFn(currentSettings)
	if err != nil {
		return err
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxUpsert(tx, settingsKey, updatedSettings)
	} else {
		err = r.db.Store.Upsert(settingsKey, updatedSettings)
	}
	if err != nil {
		return fmt.Errorf("trying to update settings: %w", err)
	}
	return nil
}
