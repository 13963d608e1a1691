package domain

import "context"

// AccountRepository is the abstraction for any kind of database intended to
// persist Accounts.
type AccountRepository interface {
	// AddAccount inserts a new account. ErrAccountAlreadyExists is returned
	// when the address is already present.
	AddAccount(ctx context.Context, account *Account) error
	// GetAccount returns the account with the given address, nil if absent.
	GetAccount(ctx context.Context, address string) (*Account, error)
	// GetAllAccounts returns every tracked account in repository order.
	GetAllAccounts(ctx context.Context) ([]Account, error)
	// UpdateAccount applies updateFn to the stored account in a transactional
	// way and persists the result.
	UpdateAccount(
		ctx context.Context,
		address string, updateFn func(a *Account) (*Account, error),
	) error
	// UpsertAccount inserts or replaces the account by address.
	UpsertAccount(ctx context.Context, account *Account) error
	// DeleteAccount removes the account with the given address. Removing an
	// absent address is a no-op.
	DeleteAccount(ctx context.Context, address string) error
}
