package wallet

import (
	"crypto/ed25519"
	"errors"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrNullNetworkSuffix ...
	ErrNullNetworkSuffix = errors.New("network address suffix must not be null")
	// ErrNullKeyPair ...
	ErrNullKeyPair = errors.New("wallet key pair is null")
	// ErrNullRecipient ...
	ErrNullRecipient = errors.New("recipient address must not be null")
	// ErrZeroAmount ...
	ErrZeroAmount = errors.New("amount must be greater than zero")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not a valid network address")
)

// Wallet holds the deterministic key pair derived from a mnemonic along with
// the network suffix used to render addresses.
type Wallet struct {
	mnemonic      []string
	privateKey    ed25519.PrivateKey
	publicKey     ed25519.PublicKey
	networkSuffix string
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method.
type NewWalletFromMnemonicOpts struct {
	Mnemonic      []string
	NetworkSuffix string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	if len(o.NetworkSuffix) <= 0 {
		return ErrNullNetworkSuffix
	}
	return nil
}

// NewWalletFromMnemonic derives the ed25519 key pair of the given mnemonic.
// The derivation is deterministic, the same mnemonic always yields the same
// key pair and therefore the same address.
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	privateKey, publicKey := deriveKeyPair(opts.Mnemonic)

	return &Wallet{
		mnemonic:      opts.Mnemonic,
		privateKey:    privateKey,
		publicKey:     publicKey,
		networkSuffix: opts.NetworkSuffix,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.privateKey) <= 0 || len(w.publicKey) <= 0 {
		return ErrNullKeyPair
	}
	return nil
}

// Mnemonic returns the mnemonic the wallet was derived from.
func (w *Wallet) Mnemonic() []string {
	return w.mnemonic
}
