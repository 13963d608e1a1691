package wallet

import (
	"crypto/sha256"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

func isMnemonicValid(mnemonic []string) bool {
	m := strings.Join(mnemonic, " ")
	return bip39.IsMnemonicValid(m)
}

func normalizeMnemonic(mnemonic []string) string {
	words := make([]string, 0, len(mnemonic))
	for _, w := range mnemonic {
		words = append(words, strings.ToLower(strings.TrimSpace(w)))
	}
	return strings.Join(words, " ")
}

func hashBytes(b []byte) [32]byte {
	return sha256.Sum256(b)
}
