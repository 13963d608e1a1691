package ports

import (
	"context"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

// DbManager interface gives access to every repository backed by the same
// datastore and to its transactional facilities.
type DbManager interface {
	AccountRepository() domain.AccountRepository
	ContactRepository() domain.ContactRepository
	SettingsRepository() domain.SettingsRepository

	Close()

	// NewTransaction starts a write transaction on the wallet store.
	NewTransaction() Transaction
	// NewContactsTransaction starts a write transaction on the contacts store.
	NewContactsTransaction() Transaction
	// RunTransaction executes handler inside a wallet-store transaction that
	// is committed if and only if handler returns no error. The transaction
	// travels in the context.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
	// RunContactsTransaction behaves like RunTransaction on the contacts store.
	RunContactsTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)
}

// Transaction interface defines the methods to commit or discard a database
// transaction.
type Transaction interface {
	Commit() error
	Discard()
}
