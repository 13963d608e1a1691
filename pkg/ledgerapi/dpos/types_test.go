package dpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

func TestDecodeAccountEnvelope(t *testing.T) {
	body := `{
		"success": true,
		"account": {
			"address": "12514437623813375861R",
			"publicKey": "b1f0a366vb",
			"balance": "150000000",
			"unconfirmedBalance": "140000000"
		}
	}`

	var payload accountResponse
	err := decodeEnvelope(body, &payload)
	require.NoError(t, err)

	account, err := parseAccount(payload.Account)
	require.NoError(t, err)
	assert.Equal(t, "12514437623813375861R", account.Address)
	assert.Equal(t, uint64(150000000), account.Balance)
	assert.Equal(t, uint64(140000000), account.UnconfirmedBalance)
}

func TestDecodeNotFoundEnvelope(t *testing.T) {
	body := `{"success": false, "error": "Account not found"}`

	var payload accountResponse
	err := decodeEnvelope(body, &payload)
	require.ErrorIs(t, err, ledgerapi.ErrAccountNotFound)
}

func TestDecodeRejectedEnvelope(t *testing.T) {
	body := `{"success": false, "error": "Invalid transaction amount"}`

	var payload broadcastResponse
	err := decodeEnvelope(body, &payload)
	require.ErrorIs(t, err, ledgerapi.ErrRejected)
	assert.NotErrorIs(t, err, ledgerapi.ErrAccountNotFound)
}

func TestDecodeMalformedEnvelope(t *testing.T) {
	var payload accountResponse
	err := decodeEnvelope("<html>bad gateway</html>", &payload)
	require.ErrorIs(t, err, ledgerapi.ErrMalformedResponse)
}

func TestDecodeTransactionsEnvelope(t *testing.T) {
	body := `{
		"success": true,
		"count": 2,
		"transactions": [
			{
				"id": "1234",
				"blockId": "99",
				"type": 0,
				"senderId": "111R",
				"recipientId": "222R",
				"amount": 500,
				"fee": 10000000,
				"confirmations": 12
			},
			{
				"id": "5678",
				"type": 3,
				"senderId": "222R",
				"amount": 0,
				"fee": 100000000,
				"confirmations": 0
			}
		]
	}`

	var payload transactionsResponse
	err := decodeEnvelope(body, &payload)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Count)

	tx := parseTransaction(payload.Transactions[0])
	assert.Equal(t, "1234", tx.ID)
	assert.Equal(t, uint64(500), tx.Amount)
	assert.Equal(t, int64(12), tx.Confirmations)
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), amount)

	amount, err = parseAmount("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), amount)

	_, err = parseAmount("12.5")
	require.ErrorIs(t, err, ledgerapi.ErrMalformedResponse)
}

func TestWebsocketURL(t *testing.T) {
	assert.Equal(t, "wss://node.example.com/socket", websocketURL("https://node.example.com"))
	assert.Equal(t, "ws://127.0.0.1:5555/socket", websocketURL("http://127.0.0.1:5555"))
}
