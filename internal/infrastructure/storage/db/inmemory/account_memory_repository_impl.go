package inmemory

import (
	"context"
	"sync"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

// AccountRepositoryImpl represents an in memory storage
type AccountRepositoryImpl struct {
	accounts map[string]domain.Account
	order    []string

	lock *sync.RWMutex
}

// NewAccountRepositoryImpl returns a new empty AccountRepositoryImpl
func NewAccountRepositoryImpl() *AccountRepositoryImpl {
	return &AccountRepositoryImpl{
		accounts: map[string]domain.Account{},
		order:    []string{},
		lock:     &sync.RWMutex{},
	}
}

func (r *AccountRepositoryImpl) AddAccount(
	_ context.Context, account *domain.Account,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[account.Address]; ok {
		return domain.ErrAccountAlreadyExists
	}
	r.accounts[account.Address] = *account
	r.order = append(r.order, account.Address)
	return nil
}

func (r *AccountRepositoryImpl) GetAccount(
	_ context.Context, address string,
) (*domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	account, ok := r.accounts[address]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) GetAllAccounts(
	_ context.Context,
) ([]domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	accounts := make([]domain.Account, 0, len(r.accounts))
	for _, address := range r.order {
		accounts = append(accounts, r.accounts[address])
	}
	return accounts, nil
}

func (r *AccountRepositoryImpl) UpdateAccount(
	_ context.Context,
	address string,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	account, ok := r.accounts[address]
	if !ok {
		return domain.ErrAccountNotExist
	}

	updated, err := updateFn(&account)
	if err != nil {
		return err
	}

	r.accounts[address] = *updated
	return nil
}

func (r *AccountRepositoryImpl) UpsertAccount(
	_ context.Context, account *domain.Account,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[account.Address]; !ok {
		r.order = append(r.order, account.Address)
	}
	r.accounts[account.Address] = *account
	return nil
}

func (r *AccountRepositoryImpl) DeleteAccount(
	_ context.Context, address string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[address]; !ok {
		return nil
	}
	delete(r.accounts, address)
	for i, a := range r.order {
		if a == address {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
