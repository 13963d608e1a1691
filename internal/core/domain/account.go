package domain

// AccessMode describes how the daemon can act on behalf of an account.
type AccessMode int

const (
	// FullAccess accounts were imported from a mnemonic and can sign.
	FullAccess AccessMode = iota
	// ReadOnly accounts are tracked by address only.
	ReadOnly
	// HardwareBacked accounts sign through an attached hardware device.
	HardwareBacked
)

// Account defines the entity data structure for one wallet identity tracked
// by the daemon.
type Account struct {
	// Address is the network-rendered identity, unique among all accounts.
	Address string `badgerhold:"key"`
	// PublicKey in hex format. Empty for read-only accounts never seen on chain.
	PublicKey string
	// Name is the user-assigned display name, may be empty.
	Name string
	// Pinned accounts sort before the others.
	Pinned bool
	// Balance is the confirmed balance in base units.
	Balance uint64
	// UnconfirmedBalance includes mempool transactions.
	UnconfirmedBalance uint64
	// Mode tells whether the account can sign.
	Mode AccessMode
	// FiatCurrency is the preferred fiat display currency (ISO 4217).
	FiatCurrency string
}

// NewAccount returns an account with the given identity and the default
// preferences. The address must be validated by the caller against the
// active network.
func NewAccount(address, publicKey string, mode AccessMode) (*Account, error) {
	if len(address) <= 0 {
		return nil, ErrInvalidAddress
	}

	return &Account{
		Address:      address,
		PublicKey:    publicKey,
		Mode:         mode,
		FiatCurrency: DefaultFiatCurrency,
	}, nil
}

// Rename sets the display name. An empty name is allowed and clears it.
func (a *Account) Rename(name string) {
	a.Name = name
}

// TogglePinned flips the pinned flag.
func (a *Account) TogglePinned() {
	a.Pinned = !a.Pinned
}

// UpdateBalance applies a fresh balance pair fetched from the ledger.
func (a *Account) UpdateBalance(confirmed, unconfirmed uint64) {
	a.Balance = confirmed
	a.UnconfirmedBalance = unconfirmed
}

// CanSign reports whether the daemon holds or can reach signing material
// for this account.
func (a *Account) CanSign() bool {
	return a.Mode != ReadOnly
}
