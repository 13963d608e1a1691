package domain

// Contact is one address book entry, a local mapping from a ledger address
// to a human readable name, independent of the ledger itself.
type Contact struct {
	// Address is the unique key of the entry.
	Address string `badgerhold:"key"`
	Name    string
}

// NewContact returns a contact after validating its address key.
func NewContact(address, name string) (*Contact, error) {
	if len(address) <= 0 {
		return nil, ErrInvalidAddress
	}
	return &Contact{Address: address, Name: name}, nil
}
