package domain

// TxType classifies a ledger transaction.
type TxType int

const (
	TxSend TxType = iota
	TxSecondSignature
	TxDelegateRegistration
	TxVote
	TxUnknown
)

// TxTypeFromLedger maps the ledger's raw type code to a TxType.
func TxTypeFromLedger(code int) TxType {
	switch code {
	case 0:
		return TxSend
	case 1:
		return TxSecondSignature
	case 2:
		return TxDelegateRegistration
	case 3:
		return TxVote
	default:
		return TxUnknown
	}
}

// TxStatus is the settlement category of a transaction, derived from its
// confirmation count.
type TxStatus int

const (
	// TxUnconfirmed transactions sit in the mempool.
	TxUnconfirmed TxStatus = iota
	// TxUnsettled transactions are included but below the settlement threshold.
	TxUnsettled
	// TxSettled transactions are final for display purposes.
	TxSettled
)

// SettledConfirmations is the confirmation count from which a transaction
// counts as settled.
const SettledConfirmations = 101

// Transaction defines the entity data structure for one ledger transaction
// relevant to a tracked account. Instances are read-only snapshots, a
// settled transaction never changes.
type Transaction struct {
	ID            string
	BlockID       string
	Type          TxType
	Timestamp     int64
	SenderID      string
	SenderName    string
	RecipientID   string
	RecipientName string
	Amount        uint64
	Fee           uint64
	Confirmations int64
}

// IsIncoming reports whether the transaction credits the given owner
// address. Self-transfers count as incoming.
func (t Transaction) IsIncoming(owner string) bool {
	return t.RecipientID == owner
}

// Status derives the settlement category from the confirmation count.
func (t Transaction) Status() TxStatus {
	if t.Confirmations <= 0 {
		return TxUnconfirmed
	}
	if t.Confirmations < SettledConfirmations {
		return TxUnsettled
	}
	return TxSettled
}
