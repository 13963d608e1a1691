package dpos

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

type transactionsResponse struct {
	envelope
	Transactions []transactionJSON `json:"transactions"`
	Count        int               `json:"count"`
}

type broadcastResponse struct {
	envelope
	TransactionID string `json:"transactionId"`
}

func (d *dposNode) GetTransactions(
	address string, limit, offset int,
) ([]*ledgerapi.Transaction, int, error) {
	if limit <= 0 {
		limit = 25
	}
	query := url.Values{}
	query.Set("senderId", address)
	query.Set("recipientId", address)
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("offset", fmt.Sprintf("%d", offset))
	query.Set("orderBy", "height:desc")
	reqURL := fmt.Sprintf("%s/api/transactions?%s", d.apiURL, query.Encode())

	var payload transactionsResponse
	if err := d.get(reqURL, &payload); err != nil {
		return nil, 0, err
	}

	txs := make([]*ledgerapi.Transaction, 0, len(payload.Transactions))
	for _, t := range payload.Transactions {
		txs = append(txs, parseTransaction(t))
	}

	return txs, payload.Count, nil
}

func (d *dposNode) BroadcastTransaction(tx ledgerapi.BroadcastTx) (string, error) {
	reqURL := fmt.Sprintf("%s/api/transactions", d.apiURL)

	body, err := json.Marshal(map[string]interface{}{"transaction": tx})
	if err != nil {
		return "", err
	}

	var payload broadcastResponse
	if err := d.post(reqURL, string(body), &payload); err != nil {
		return "", err
	}

	txid := payload.TransactionID
	if len(txid) <= 0 {
		txid = tx.ID
	}
	return txid, nil
}

func parseTransaction(t transactionJSON) *ledgerapi.Transaction {
	return &ledgerapi.Transaction{
		ID:              t.ID,
		BlockID:         t.BlockID,
		Type:            t.Type,
		Timestamp:       t.Timestamp,
		SenderID:        t.SenderID,
		SenderPublicKey: t.SenderPublicKey,
		RecipientID:     t.RecipientID,
		Amount:          t.Amount,
		Fee:             t.Fee,
		Confirmations:   t.Confirmations,
		Asset:           t.Asset,
	}
}
