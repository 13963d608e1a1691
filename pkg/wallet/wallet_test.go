package wallet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/pkg/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon about"

func TestNewMnemonic(t *testing.T) {
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: 256})
	require.NoError(t, err)
	assert.Equal(t, 24, len(mnemonic))
	assert.True(t, wallet.IsMnemonicValid(mnemonic))

	mnemonic, err = wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	require.NoError(t, err)
	assert.Equal(t, 12, len(mnemonic))
}

func TestFailingNewMnemonic(t *testing.T) {
	tests := []struct {
		name        string
		entropySize int
	}{
		{"entropy_too_small", 64},
		{"entropy_too_big", 512},
		{"entropy_not_multiple_of_32", 129},
		{"entropy_negative", -1},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
				EntropySize: tt.entropySize,
			})
			require.EqualError(t, err, wallet.ErrInvalidEntropySize.Error())
		})
	}
}

func TestNewWalletFromMnemonic(t *testing.T) {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:      strings.Split(testMnemonic, " "),
		NetworkSuffix: "R",
	})
	require.NoError(t, err)

	address, err := w.Address()
	require.NoError(t, err)
	assert.True(t, wallet.IsValidAddress(address, "R"))

	pubkey, err := w.PublicKey()
	require.NoError(t, err)
	assert.Equal(t, 64, len(pubkey))

	// same mnemonic, same identity
	other, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:      strings.Split(testMnemonic, " "),
		NetworkSuffix: "R",
	})
	require.NoError(t, err)
	otherAddress, err := other.Address()
	require.NoError(t, err)
	assert.Equal(t, address, otherAddress)
}

func TestFailingNewWalletFromMnemonic(t *testing.T) {
	tests := []struct {
		name string
		opts wallet.NewWalletFromMnemonicOpts
		err  error
	}{
		{
			"null_mnemonic",
			wallet.NewWalletFromMnemonicOpts{NetworkSuffix: "R"},
			wallet.ErrNullMnemonic,
		},
		{
			"invalid_mnemonic",
			wallet.NewWalletFromMnemonicOpts{
				Mnemonic:      []string{"not", "a", "mnemonic"},
				NetworkSuffix: "R",
			},
			wallet.ErrInvalidMnemonic,
		},
		{
			"null_network_suffix",
			wallet.NewWalletFromMnemonicOpts{
				Mnemonic: strings.Split(testMnemonic, " "),
			},
			wallet.ErrNullNetworkSuffix,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := wallet.NewWalletFromMnemonic(tt.opts)
			require.EqualError(t, err, tt.err.Error())
		})
	}
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, wallet.IsValidAddress("12514437623813375861R", "R"))
	assert.False(t, wallet.IsValidAddress("12514437623813375861", "R"))
	assert.False(t, wallet.IsValidAddress("R", "R"))
	assert.False(t, wallet.IsValidAddress("12ab34R", "R"))
	assert.False(t, wallet.IsValidAddress("", "R"))
}

func TestSignTransaction(t *testing.T) {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:      strings.Split(testMnemonic, " "),
		NetworkSuffix: "R",
	})
	require.NoError(t, err)

	recipient, err := w.Address()
	require.NoError(t, err)

	signed, err := w.SignTransaction(wallet.SignTransactionOpts{
		Type:        wallet.TxTypeSend,
		Timestamp:   73838163,
		RecipientID: recipient,
		Amount:      150000000,
		Fee:         10000000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, signed.ID)
	assert.NotEmpty(t, signed.Signature)
	assert.Equal(t, recipient, signed.RecipientID)

	// signing is deterministic for a fixed timestamp
	again, err := w.SignTransaction(wallet.SignTransactionOpts{
		Type:        wallet.TxTypeSend,
		Timestamp:   73838163,
		RecipientID: recipient,
		Amount:      150000000,
		Fee:         10000000,
	})
	require.NoError(t, err)
	assert.Equal(t, signed.ID, again.ID)
	assert.Equal(t, signed.Signature, again.Signature)
}

func TestFailingSignTransaction(t *testing.T) {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:      strings.Split(testMnemonic, " "),
		NetworkSuffix: "R",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts wallet.SignTransactionOpts
		err  error
	}{
		{
			"null_recipient",
			wallet.SignTransactionOpts{Type: wallet.TxTypeSend, Amount: 1},
			wallet.ErrNullRecipient,
		},
		{
			"zero_amount",
			wallet.SignTransactionOpts{
				Type: wallet.TxTypeSend, RecipientID: "123R",
			},
			wallet.ErrZeroAmount,
		},
		{
			"invalid_recipient",
			wallet.SignTransactionOpts{
				Type: wallet.TxTypeSend, RecipientID: "xyzR", Amount: 1,
			},
			wallet.ErrInvalidAddress,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.SignTransaction(tt.opts)
			require.EqualError(t, err, tt.err.Error())
		})
	}
}
