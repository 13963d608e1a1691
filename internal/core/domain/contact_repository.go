package domain

import "context"

// ContactRepository is the abstraction for any kind of database intended to
// persist the address book. Every mutation must be durable before the call
// returns.
type ContactRepository interface {
	// UpsertContact inserts or overwrites the entry keyed by its address.
	UpsertContact(ctx context.Context, contact *Contact) error
	// GetContact returns the entry with the given address, nil if absent.
	GetContact(ctx context.Context, address string) (*Contact, error)
	// GetAllContacts returns every entry in repository order.
	GetAllContacts(ctx context.Context) ([]Contact, error)
	// DeleteContact removes the entry by address, no-op if absent.
	DeleteContact(ctx context.Context, address string) error
}
