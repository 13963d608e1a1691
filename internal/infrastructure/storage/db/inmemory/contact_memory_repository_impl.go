package inmemory

import (
	"context"
	"sync"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

// ContactRepositoryImpl represents an in memory storage
type ContactRepositoryImpl struct {
	contacts map[string]domain.Contact
	order    []string

	lock *sync.RWMutex
}

// NewContactRepositoryImpl returns a new empty ContactRepositoryImpl
func NewContactRepositoryImpl() *ContactRepositoryImpl {
	return &ContactRepositoryImpl{
		contacts: map[string]domain.Contact{},
		order:    []string{},
		lock:     &sync.RWMutex{},
	}
}

func (r *ContactRepositoryImpl) UpsertContact(
	_ context.Context, contact *domain.Contact,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.contacts[contact.Address]; !ok {
		r.order = append(r.order, contact.Address)
	}
	r.contacts[contact.Address] = *contact
	return nil
}

func (r *ContactRepositoryImpl) GetContact(
	_ context.Context, address string,
) (*domain.Contact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	contact, ok := r.contacts[address]
	if !ok {
		return nil, nil
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) GetAllContacts(
	_ context.Context,
) ([]domain.Contact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	contacts := make([]domain.Contact, 0, len(r.contacts))
	for _, address := range r.order {
		contacts = append(contacts, r.contacts[address])
	}
	return contacts, nil
}

func (r *ContactRepositoryImpl) DeleteContact(
	_ context.Context, address string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.contacts[address]; !ok {
		return nil
	}
	delete(r.contacts, address)
	for i, a := range r.order {
		if a == address {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
