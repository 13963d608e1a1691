package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
)

// DbManager holds all the badgerhold stores in a single data structure.
// Wallet state (accounts, settings) and the address book live in separate
// stores under distinct directories so writers never clobber each other.
type DbManager struct {
	Store        *badgerhold.Store
	ContactStore *badgerhold.Store

	accountRepository  domain.AccountRepository
	contactRepository  domain.ContactRepository
	settingsRepository domain.SettingsRepository
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	walletDb, err := createDb(baseDbDir+"/wallet", logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	contactDb, err := createDb(baseDbDir+"/contacts", logger)
	if err != nil {
		return nil, fmt.Errorf("opening contacts db: %w", err)
	}

	manager := &DbManager{
		Store:        walletDb,
		ContactStore: contactDb,
	}
	manager.accountRepository = NewAccountRepositoryImpl(manager)
	manager.contactRepository = NewContactRepositoryImpl(manager)
	manager.settingsRepository = NewSettingsRepositoryImpl(manager)

	return manager, nil
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

// Close closes the underlying badger stores.
func (d *DbManager) Close() {
	d.Store.Close()
	d.ContactStore.Close()
}

// NewTransaction implements the DbManager interface
func (d *DbManager) NewTransaction() ports.Transaction {
	return d.Store.Badger().NewTransaction(true)
}

// NewContactsTransaction implements the DbManager interface
func (d *DbManager) NewContactsTransaction() ports.Transaction {
	return d.ContactStore.Badger().NewTransaction(true)
}

// RunTransaction implements the DbManager interface
func (d *DbManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return d.runTransaction(ctx, d.Store, readOnly, handler)
}

// RunContactsTransaction implements the DbManager interface
func (d *DbManager) RunContactsTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return d.runTransaction(ctx, d.ContactStore, readOnly, handler)
}

func (d *DbManager) runTransaction(
	ctx context.Context,
	store *badgerhold.Store,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	txCtx := context.WithValue(ctx, "tx", tx)
	res, err := handler(txCtx)
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	de := json.NewDecoder(bytes.NewReader(data))
	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
