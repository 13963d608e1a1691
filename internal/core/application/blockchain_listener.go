package application

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

// BlockchainListener consumes the live block feed of the ledger node and
// refreshes the tracked accounts as new blocks arrive, so balances and
// confirmation counts move without polling.
type BlockchainListener interface {
	StartObservation()
	StopObservation()
}

type blockchainListener struct {
	walletSvc WalletService
	streamSvc ledgerapi.StreamService

	lock    *sync.Mutex
	done    chan struct{}
	started bool
}

// NewBlockchainListener is a constructor function for BlockchainListener.
func NewBlockchainListener(
	walletSvc WalletService, streamSvc ledgerapi.StreamService,
) BlockchainListener {
	return &blockchainListener{
		walletSvc: walletSvc,
		streamSvc: streamSvc,
		lock:      &sync.Mutex{},
	}
}

func (b *blockchainListener) StartObservation() {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.started {
		return
	}

	b.done = make(chan struct{})
	b.started = true
	go b.observe(b.done)
}

func (b *blockchainListener) StopObservation() {
	b.lock.Lock()
	defer b.lock.Unlock()
	if !b.started {
		return
	}

	close(b.done)
	b.started = false
}

func (b *blockchainListener) observe(done chan struct{}) {
	events, err := b.streamSvc.SubscribeBlocks(done)
	if err != nil {
		log.WithError(err).Warn("could not subscribe to the block feed")
		return
	}

	for event := range events {
		b.onBlock(event)
	}
	log.Debug("block feed closed")
}

func (b *blockchainListener) onBlock(event ledgerapi.BlockEvent) {
	id := uuid.New().String()
	ctx := context.Background()

	accounts, err := b.walletSvc.ListAccounts(ctx)
	if err != nil {
		log.WithError(err).WithField("event_id", id).Warn(
			"could not list accounts on new block",
		)
		return
	}

	log.WithFields(log.Fields{
		"event_id": id,
		"height":   event.Height,
		"txs":      len(event.TransactionIDs),
	}).Debug("new block")

	for _, account := range accounts {
		if err := b.walletSvc.RefreshAccount(ctx, account.Address); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event_id": id,
				"address":  account.Address,
			}).Warn("account refresh failed on new block")
		}
	}
}
