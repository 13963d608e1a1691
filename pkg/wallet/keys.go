package wallet

import (
	"crypto/ed25519"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
)

// PublicKey returns the wallet's ed25519 public key in hex format.
func (w *Wallet) PublicKey() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return hex.EncodeToString(w.publicKey), nil
}

// Address returns the network address of the wallet's public key.
func (w *Wallet) Address() (string, error) {
	if err := w.validate(); err != nil {
		return "", err
	}
	return AddressFromPublicKey(w.publicKey, w.networkSuffix), nil
}

// AddressFromPublicKey renders the address of an ed25519 public key: the
// first 8 bytes of its SHA-256 digest, reversed and read as an unsigned
// 64 bit integer, followed by the network suffix.
func AddressFromPublicKey(publicKey []byte, networkSuffix string) string {
	digest := hashBytes(publicKey)

	var id uint64
	for i := 7; i >= 0; i-- {
		id = id<<8 | uint64(digest[i])
	}

	return strconv.FormatUint(id, 10) + networkSuffix
}

// AddressFromMnemonic is a shortcut deriving the address of a mnemonic
// without keeping the intermediate wallet around.
func AddressFromMnemonic(mnemonic []string, networkSuffix string) (string, error) {
	w, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic:      mnemonic,
		NetworkSuffix: networkSuffix,
	})
	if err != nil {
		return "", err
	}
	return w.Address()
}

// IsValidAddress reports whether the given string is a well formed network
// address, ie. a base-10 unsigned integer followed by the expected suffix.
func IsValidAddress(address, networkSuffix string) bool {
	if !strings.HasSuffix(address, networkSuffix) {
		return false
	}
	numeric := strings.TrimSuffix(address, networkSuffix)
	if len(numeric) <= 0 {
		return false
	}
	for _, r := range numeric {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	_, err := strconv.ParseUint(numeric, 10, 64)
	return err == nil
}

func deriveKeyPair(mnemonic []string) (ed25519.PrivateKey, ed25519.PublicKey) {
	seed := hashBytes([]byte(normalizeMnemonic(mnemonic)))
	privateKey := ed25519.NewKeyFromSeed(seed[:])
	publicKey := privateKey.Public().(ed25519.PublicKey)
	return privateKey, publicKey
}
