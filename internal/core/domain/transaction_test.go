package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

func TestTransactionStatus(t *testing.T) {
	tests := []struct {
		name          string
		confirmations int64
		want          domain.TxStatus
	}{
		{"mempool", 0, domain.TxUnconfirmed},
		{"first_confirmation", 1, domain.TxUnsettled},
		{"below_threshold", domain.SettledConfirmations - 1, domain.TxUnsettled},
		{"at_threshold", domain.SettledConfirmations, domain.TxSettled},
		{"deep", 100000, domain.TxSettled},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			tx := domain.Transaction{Confirmations: tt.confirmations}
			assert.Equal(t, tt.want, tx.Status())
		})
	}
}

func TestTransactionIsIncoming(t *testing.T) {
	tx := domain.Transaction{SenderID: "111R", RecipientID: "222R"}
	assert.True(t, tx.IsIncoming("222R"))
	assert.False(t, tx.IsIncoming("111R"))

	selfTransfer := domain.Transaction{SenderID: "111R", RecipientID: "111R"}
	assert.True(t, selfTransfer.IsIncoming("111R"))
}

func TestTxTypeFromLedger(t *testing.T) {
	assert.Equal(t, domain.TxSend, domain.TxTypeFromLedger(0))
	assert.Equal(t, domain.TxVote, domain.TxTypeFromLedger(3))
	assert.Equal(t, domain.TxUnknown, domain.TxTypeFromLedger(42))
}

func TestNewAccount(t *testing.T) {
	account, err := domain.NewAccount("123R", "ab01", domain.FullAccess)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFiatCurrency, account.FiatCurrency)
	assert.True(t, account.CanSign())
	assert.False(t, account.Pinned)

	account.TogglePinned()
	assert.True(t, account.Pinned)

	readOnly, err := domain.NewAccount("456R", "", domain.ReadOnly)
	require.NoError(t, err)
	assert.False(t, readOnly.CanSign())

	_, err = domain.NewAccount("", "", domain.FullAccess)
	require.EqualError(t, err, domain.ErrInvalidAddress.Error())
}
