package inmemory

import (
	"context"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
)

// DbManager is the in-memory counterpart of the badger manager, used by
// tests and ephemeral runs. Transactions are no-ops, every repository
// mutation is applied immediately.
type DbManager struct {
	accountRepository  domain.AccountRepository
	contactRepository  domain.ContactRepository
	settingsRepository domain.SettingsRepository
}

func NewDbManager() ports.DbManager {
	return &DbManager{
		accountRepository:  NewAccountRepositoryImpl(),
		contactRepository:  NewContactRepositoryImpl(),
		settingsRepository: NewSettingsRepositoryImpl(),
	}
}

func (d *DbManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *DbManager) ContactRepository() domain.ContactRepository {
	return d.contactRepository
}

func (d *DbManager) SettingsRepository() domain.SettingsRepository {
	return d.settingsRepository
}

func (d *DbManager) Close() {}

func (d *DbManager) NewTransaction() ports.Transaction {
	return noOpTransaction{}
}

func (d *DbManager) NewContactsTransaction() ports.Transaction {
	return noOpTransaction{}
}

func (d *DbManager) RunTransaction(
	ctx context.Context,
	_ bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return handler(ctx)
}

func (d *DbManager) RunContactsTransaction(
	ctx context.Context,
	_ bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return handler(ctx)
}

type noOpTransaction struct{}

func (noOpTransaction) Commit() error { return nil }
func (noOpTransaction) Discard()      {}
