package ledgerapi

import "errors"

var (
	// ErrAccountNotFound is returned when the remote ledger replies that the
	// requested address has no on-chain state yet. It is a domain condition,
	// distinct from any transport failure.
	ErrAccountNotFound = errors.New("account not found on the ledger")
	// ErrUnreachable wraps any transport-level failure: network errors,
	// timeouts, non-2xx statuses without a valid envelope.
	ErrUnreachable = errors.New("ledger node is unreachable")
	// ErrMalformedResponse is returned when the node replies with a body that
	// does not match the expected envelope.
	ErrMalformedResponse = errors.New("malformed response from ledger node")
	// ErrRejected is returned when the node refuses a broadcasted transaction.
	ErrRejected = errors.New("transaction rejected by the ledger node")
)
