package wallet

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
)

// Transfer types recognized by the ledger.
const (
	TxTypeSend                 = 0
	TxTypeSecondSignature      = 1
	TxTypeDelegateRegistration = 2
	TxTypeVote                 = 3
)

// SignTransactionOpts is the struct given to the SignTransaction method.
type SignTransactionOpts struct {
	Type        uint8
	Timestamp   uint32
	RecipientID string
	Amount      uint64
	Fee         uint64
	Asset       []byte
}

func (o SignTransactionOpts) validate(networkSuffix string) error {
	if o.Type == TxTypeSend {
		if len(o.RecipientID) <= 0 {
			return ErrNullRecipient
		}
		if o.Amount <= 0 {
			return ErrZeroAmount
		}
	}
	if len(o.RecipientID) > 0 && !IsValidAddress(o.RecipientID, networkSuffix) {
		return ErrInvalidAddress
	}
	return nil
}

// SignedTransaction is the outcome of SignTransaction, ready to be
// serialized and broadcasted to the ledger.
type SignedTransaction struct {
	ID              string
	Type            uint8
	Timestamp       uint32
	SenderPublicKey string
	RecipientID     string
	Amount          uint64
	Fee             uint64
	Signature       string
}

// SignTransaction serializes the transfer into its canonical byte layout and
// signs the SHA-256 digest of it with the wallet's private key.
func (w *Wallet) SignTransaction(opts SignTransactionOpts) (*SignedTransaction, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(w.networkSuffix); err != nil {
		return nil, err
	}

	unsigned := serializeTransaction(
		opts.Type, opts.Timestamp, w.publicKey,
		opts.RecipientID, w.networkSuffix, opts.Amount, opts.Asset, nil,
	)
	digest := hashBytes(unsigned)
	signature := ed25519.Sign(w.privateKey, digest[:])

	signed := serializeTransaction(
		opts.Type, opts.Timestamp, w.publicKey,
		opts.RecipientID, w.networkSuffix, opts.Amount, opts.Asset, signature,
	)

	return &SignedTransaction{
		ID:              transactionID(signed),
		Type:            opts.Type,
		Timestamp:       opts.Timestamp,
		SenderPublicKey: hex.EncodeToString(w.publicKey),
		RecipientID:     opts.RecipientID,
		Amount:          opts.Amount,
		Fee:             opts.Fee,
		Signature:       hex.EncodeToString(signature),
	}, nil
}

// serializeTransaction writes the canonical byte layout of a transfer:
// type(1) | timestamp(4 LE) | senderPubKey(32) | recipientID(8 BE) |
// amount(8 LE) | asset | signature.
func serializeTransaction(
	txType uint8, timestamp uint32, senderPubKey []byte,
	recipientID, networkSuffix string, amount uint64,
	asset, signature []byte,
) []byte {
	buf := new(bytes.Buffer)

	buf.WriteByte(txType)
	binary.Write(buf, binary.LittleEndian, timestamp)
	buf.Write(senderPubKey)

	var recipient uint64
	if len(recipientID) > 0 {
		numeric := strings.TrimSuffix(recipientID, networkSuffix)
		recipient, _ = strconv.ParseUint(numeric, 10, 64)
	}
	binary.Write(buf, binary.BigEndian, recipient)
	binary.Write(buf, binary.LittleEndian, amount)
	buf.Write(asset)
	buf.Write(signature)

	return buf.Bytes()
}

// transactionID derives the id of a signed transaction: the first 8 bytes
// of its SHA-256 digest reversed and rendered as an unsigned integer.
func transactionID(signed []byte) string {
	digest := hashBytes(signed)

	var id uint64
	for i := 7; i >= 0; i-- {
		id = id<<8 | uint64(digest[i])
	}

	return strconv.FormatUint(id, 10)
}
