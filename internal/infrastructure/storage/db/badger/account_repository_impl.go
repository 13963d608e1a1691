package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

type accountRepositoryImpl struct {
	db *DbManager
}

// NewAccountRepositoryImpl initializes a badger implementation of the
// domain.AccountRepository
func NewAccountRepositoryImpl(db *DbManager) domain.AccountRepository {
	return accountRepositoryImpl{
		db: db,
	}
}

func (r accountRepositoryImpl) AddAccount(
	ctx context.Context, account *domain.Account,
) error {
	if err := r.insertAccount(ctx, *account); err != nil {
		return err
	}
	return nil
}

func (r accountRepositoryImpl) GetAccount(
	ctx context.Context, address string,
) (*domain.Account, error) {
	return r.getAccount(ctx, address)
}

func (r accountRepositoryImpl) GetAllAccounts(
	ctx context.Context,
) ([]domain.Account, error) {
	query := &badgerhold.Query{}
	return r.findAccounts(ctx, query)
}

func (r accountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	address string,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	currentAccount, err := r.getAccount(ctx, address)
	if err != nil {
		return err
	}
	if currentAccount == nil {
		return domain.ErrAccountNotExist
	}

	updatedAccount, err := updateFn(currentAccount)
	if err != nil {
		return err
	}

	return r.updateAccount(ctx, address, *updatedAccount)
}

func (r accountRepositoryImpl) UpsertAccount(
	ctx context.Context, account *domain.Account,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxUpsert(tx, account.Address, account)
	} else {
		err = r.db.Store.Upsert(account.Address, account)
	}
	if err != nil {
		return fmt.Errorf("upserting account %s: %w", account.Address, err)
	}
	return nil
}

func (r accountRepositoryImpl) DeleteAccount(
	ctx context.Context, address string,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxDelete(tx, address, domain.Account{})
	} else {
		err = r.db.Store.Delete(address, domain.Account{})
	}
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("deleting account %s: %w", address, err)
	}
	return nil
}

func (r accountRepositoryImpl) insertAccount(
	ctx context.Context, account domain.Account,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxInsert(tx, account.Address, &account)
	} else {
		err = r.db.Store.Insert(account.Address, &account)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r accountRepositoryImpl) getAccount(
	ctx context.Context, address string,
) (*domain.Account, error) {
	var err error
	var account domain.Account

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxGet(tx, address, &account)
	} else {
		err = r.db.Store.Get(address, &account)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (r accountRepositoryImpl) updateAccount(
	ctx context.Context, address string, account domain.Account,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxUpdate(tx, address, account)
	} else {
		err = r.db.Store.Update(address, account)
	}
	if err != nil {
		return fmt.Errorf("trying to update account %s: %w", address, err)
	}
	return nil
}

func (r accountRepositoryImpl) findAccounts(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Account, error) {
	var accounts []domain.Account
	var err error

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.Store.TxFind(tx, &accounts, query)
	} else {
		err = r.db.Store.Find(&accounts, query)
	}

	return accounts, err
}
