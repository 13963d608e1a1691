package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

type contactRepositoryImpl struct {
	db *DbManager
}

// NewContactRepositoryImpl initializes a badger implementation of the
// domain.ContactRepository
func NewContactRepositoryImpl(db *DbManager) domain.ContactRepository {
	return contactRepositoryImpl{
		db: db,
	}
}

func (r contactRepositoryImpl) UpsertContact(
	ctx context.Context, contact *domain.Contact,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.ContactStore.TxUpsert(tx, contact.Address, contact)
	} else {
		err = r.db.ContactStore.Upsert(contact.Address, contact)
	}
	if err != nil {
		return fmt.Errorf("upserting contact %s: %w", contact.Address, err)
	}
	return nil
}

func (r contactRepositoryImpl) GetContact(
	ctx context.Context, address string,
) (*domain.Contact, error) {
	var err error
	var contact domain.Contact

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.ContactStore.TxGet(tx, address, &contact)
	} else {
		err = r.db.ContactStore.Get(address, &contact)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &contact, nil
}

func (r contactRepositoryImpl) GetAllContacts(
	ctx context.Context,
) ([]domain.Contact, error) {
	var contacts []domain.Contact
	var err error

	query := &badgerhold.Query{}
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.ContactStore.TxFind(tx, &contacts, query)
	} else {
		err = r.db.ContactStore.Find(&contacts, query)
	}

	return contacts, err
}

func (r contactRepositoryImpl) DeleteContact(
	ctx context.Context, address string,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.ContactStore.TxDelete(tx, address, domain.Contact{})
	} else {
		err = r.db.ContactStore.Delete(address, domain.Contact{})
	}
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("deleting contact %s: %w", address, err)
	}
	return nil
}
