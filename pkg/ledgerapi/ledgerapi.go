package ledgerapi

// Account is the state of an address on the remote ledger.
type Account struct {
	Address            string
	PublicKey          string
	SecondPublicKey    string
	Balance            uint64
	UnconfirmedBalance uint64
}

// Transaction is one confirmed or pending ledger transaction.
type Transaction struct {
	ID              string
	BlockID         string
	Type            int
	Timestamp       int64
	SenderID        string
	SenderPublicKey string
	RecipientID     string
	Amount          uint64
	Fee             uint64
	Confirmations   int64
	Asset           map[string]interface{}
}

// Delegate is a registered forging delegate on the ledger.
type Delegate struct {
	Username       string
	Address        string
	PublicKey      string
	Rank           int
	Vote           uint64
	ProducedBlocks int
	MissedBlocks   int
}

// Status is the current state of the remote node.
type Status struct {
	Height  int64
	Loaded  bool
	Version string
}

// BroadcastTx is the payload accepted by the ledger's broadcast endpoint.
type BroadcastTx struct {
	ID              string                 `json:"id"`
	Type            int                    `json:"type"`
	Timestamp       int64                  `json:"timestamp"`
	SenderPublicKey string                 `json:"senderPublicKey"`
	RecipientID     string                 `json:"recipientId,omitempty"`
	Amount          uint64                 `json:"amount"`
	Fee             uint64                 `json:"fee"`
	Signature       string                 `json:"signature"`
	Asset           map[string]interface{} `json:"asset,omitempty"`
}

// BlockEvent is a live notification about a new block accepted by the node.
type BlockEvent struct {
	Height         int64
	BlockID        string
	TransactionIDs []string
}

// Service is the representation of a remote ledger node that allows to look
// up accounts and their transaction history, to search delegates and to
// broadcast signed transactions.
type Service interface {
	// GetAccount fetches the current state of the given address. It returns
	// ErrAccountNotFound if the address has never appeared on the ledger.
	GetAccount(address string) (*Account, error)
	// GetTransactions returns the list of txs the given address took part in,
	// most recent first, limited to the given page.
	GetTransactions(address string, limit, offset int) ([]*Transaction, int, error)
	// SearchDelegates returns the delegates whose username matches the query.
	SearchDelegates(query string, limit int) ([]*Delegate, error)
	// BroadcastTransaction attempts to add the given signed tx to the ledger
	// mempool and returns its id.
	BroadcastTransaction(tx BroadcastTx) (string, error)
	// GetStatus returns the current state of the remote node.
	GetStatus() (*Status, error)
}

// StreamService is the optional live-update capability of a ledger node.
type StreamService interface {
	// SubscribeBlocks opens a stream of new-block events. The stream is closed
	// when done is closed or the underlying connection drops.
	SubscribeBlocks(done <-chan struct{}) (<-chan BlockEvent, error)
}
