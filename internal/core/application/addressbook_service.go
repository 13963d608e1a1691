package application

import (
	"context"
	"sort"
	"strings"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
)

// DefaultSearchLimit caps the number of entries returned by a prefix search.
const DefaultSearchLimit = 5

// AddressBookService defines the methods of the application layer managing
// the mapping between ledger addresses and human readable names.
type AddressBookService interface {
	// SetContact adds or replaces the name bound to the given address.
	SetContact(ctx context.Context, address, name string) error
	// RemoveContact deletes the entry, a missing address is not an error.
	RemoveContact(ctx context.Context, address string) error
	// Contacts returns the whole address book ordered by name.
	Contacts(ctx context.Context) ([]ContactInfo, error)
	// Search returns at most limit entries whose name starts with the given
	// prefix. Matching is case sensitive. A non-positive limit falls back to
	// DefaultSearchLimit.
	Search(ctx context.Context, prefix string, limit int) ([]ContactInfo, error)
	// NameOf resolves an address to its contact name, empty when unknown.
	NameOf(ctx context.Context, address string) (string, error)
}

type addressBookService struct {
	repoManager ports.DbManager
}

// NewAddressBookService is a constructor function for AddressBookService.
func NewAddressBookService(repoManager ports.DbManager) AddressBookService {
	return &addressBookService{repoManager: repoManager}
}

func (s *addressBookService) SetContact(ctx context.Context, address, name string) error {
	contact, err := domain.NewContact(address, name)
	if err != nil {
		return err
	}
	return s.repoManager.ContactRepository().UpsertContact(ctx, contact)
}

func (s *addressBookService) RemoveContact(ctx context.Context, address string) error {
	return s.repoManager.ContactRepository().DeleteContact(ctx, address)
}

func (s *addressBookService) Contacts(ctx context.Context) ([]ContactInfo, error) {
	contacts, err := s.repoManager.ContactRepository().GetAllContacts(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]ContactInfo, 0, len(contacts))
	for _, c := range contacts {
		list = append(list, ContactInfo{Address: c.Address, Name: c.Name})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Address < list[j].Address
	})

	return list, nil
}

func (s *addressBookService) Search(
	ctx context.Context, prefix string, limit int,
) ([]ContactInfo, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	all, err := s.Contacts(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]ContactInfo, 0, limit)
	for _, c := range all {
		if !strings.HasPrefix(c.Name, prefix) {
			continue
		}
		matches = append(matches, c)
		if len(matches) >= limit {
			break
		}
	}

	return matches, nil
}

func (s *addressBookService) NameOf(ctx context.Context, address string) (string, error) {
	contact, err := s.repoManager.ContactRepository().GetContact(ctx, address)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return "", nil
	}
	return contact.Name, nil
}
