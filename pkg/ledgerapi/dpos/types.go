package dpos

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

// envelope is the discriminated reply shape every ledger endpoint uses:
// { "success": true, ...payload } or { "success": false, "error": "..." }.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (e envelope) check() error {
	if e.Success {
		return nil
	}
	if isNotFoundError(e.Error) {
		return ledgerapi.ErrAccountNotFound
	}
	return fmt.Errorf("%w: %s", ledgerapi.ErrRejected, e.Error)
}

type successChecker interface {
	check() error
}

func decodeEnvelope(body string, out successChecker) error {
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("%w: %s", ledgerapi.ErrMalformedResponse, err)
	}
	return out.check()
}

func isNotFoundError(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "not found")
}

type accountJSON struct {
	Address            string `json:"address"`
	PublicKey          string `json:"publicKey"`
	SecondPublicKey    string `json:"secondPublicKey"`
	Balance            string `json:"balance"`
	UnconfirmedBalance string `json:"unconfirmedBalance"`
}

type transactionJSON struct {
	ID              string                 `json:"id"`
	BlockID         string                 `json:"blockId"`
	Type            int                    `json:"type"`
	Timestamp       int64                  `json:"timestamp"`
	SenderID        string                 `json:"senderId"`
	SenderPublicKey string                 `json:"senderPublicKey"`
	RecipientID     string                 `json:"recipientId"`
	Amount          uint64                 `json:"amount"`
	Fee             uint64                 `json:"fee"`
	Confirmations   int64                  `json:"confirmations"`
	Asset           map[string]interface{} `json:"asset"`
}

type delegateJSON struct {
	Username       string `json:"username"`
	Address        string `json:"address"`
	PublicKey      string `json:"publicKey"`
	Rate           int    `json:"rate"`
	Vote           string `json:"vote"`
	ProducedBlocks int    `json:"producedblocks"`
	MissedBlocks   int    `json:"missedblocks"`
}
