package application_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
	dbbadger "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/storage/db/badger"
	dbinmemory "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

var ctx = context.Background()

const testSuffix = "R"

// mockLedgerService serves canned per-address replies and counts calls.
type mockLedgerService struct {
	lock sync.Mutex

	accounts map[string]*ledgerapi.Account
	txs      map[string][]*ledgerapi.Transaction

	getAccountCalls map[string]int
	broadcasted     []ledgerapi.BroadcastTx
	broadcastID     string
	err             error
}

func newMockLedgerService() *mockLedgerService {
	return &mockLedgerService{
		accounts:        map[string]*ledgerapi.Account{},
		txs:             map[string][]*ledgerapi.Transaction{},
		getAccountCalls: map[string]int{},
		broadcastID:     "mock-txid",
	}
}

func (m *mockLedgerService) setAccount(a *ledgerapi.Account) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.accounts[a.Address] = a
}

func (m *mockLedgerService) GetAccount(address string) (*ledgerapi.Account, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.getAccountCalls[address]++
	if m.err != nil {
		return nil, m.err
	}
	account, ok := m.accounts[address]
	if !ok {
		return nil, ledgerapi.ErrAccountNotFound
	}
	return account, nil
}

func (m *mockLedgerService) GetTransactions(
	address string, limit, offset int,
) ([]*ledgerapi.Transaction, int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	txs := m.txs[address]
	if len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, len(m.txs[address]), nil
}

func (m *mockLedgerService) SearchDelegates(
	query string, limit int,
) ([]*ledgerapi.Delegate, error) {
	return nil, nil
}

func (m *mockLedgerService) BroadcastTransaction(tx ledgerapi.BroadcastTx) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.broadcasted = append(m.broadcasted, tx)
	return m.broadcastID, nil
}

func (m *mockLedgerService) GetStatus() (*ledgerapi.Status, error) {
	return &ledgerapi.Status{Loaded: true}, nil
}

// mockPriceService returns a fixed spot rate.
type mockPriceService struct {
	rate decimal.Decimal
}

func (m mockPriceService) SpotRate(currency string) (decimal.Decimal, error) {
	return m.rate, nil
}

// mockCatalogLoader serves fixed catalogs and counts loads per locale.
type mockCatalogLoader struct {
	lock     sync.Mutex
	catalogs map[string]map[string]string
	calls    map[string]int
	err      error
}

func newMockCatalogLoader() *mockCatalogLoader {
	return &mockCatalogLoader{
		catalogs: map[string]map[string]string{
			"en": {"hello": "Hello", "bye": "Bye"},
			"it": {"hello": "Ciao"},
		},
		calls: map[string]int{},
	}
}

func (m *mockCatalogLoader) Load(
	_ context.Context, locale string,
) (map[string]string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.calls[locale]++
	if m.err != nil {
		return nil, m.err
	}
	catalog, ok := m.catalogs[locale]
	if !ok {
		return map[string]string{}, nil
	}
	return catalog, nil
}

func newTestWalletService(
	ledgerSvc ledgerapi.Service,
) (application.WalletService, ports.DbManager) {
	repoManager := dbinmemory.NewDbManager()
	svc := application.NewWalletService(
		repoManager, ledgerSvc, mockPriceService{rate: decimal.NewFromInt(2)},
		testSuffix, 25,
	)
	return svc, repoManager
}

// newBadgerWalletService builds the wallet service over a real badger store
// in a temp dir, for tests that rely on transactional rollbacks the
// in-memory double does not perform.
func newBadgerWalletService(
	t *testing.T, ledgerSvc ledgerapi.Service,
) (application.WalletService, ports.DbManager) {
	t.Helper()

	dir, err := os.MkdirTemp("", "wallet-daemon-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	repoManager, err := dbbadger.NewDbManager(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(repoManager.Close)

	svc := application.NewWalletService(
		repoManager, ledgerSvc, mockPriceService{rate: decimal.NewFromInt(2)},
		testSuffix, 25,
	)
	return svc, repoManager
}

func addAccount(
	repoManager ports.DbManager, address, name string, pinned bool,
) *domain.Account {
	account, _ := domain.NewAccount(address, "", domain.FullAccess)
	account.Name = name
	account.Pinned = pinned
	if err := repoManager.AccountRepository().AddAccount(ctx, account); err != nil {
		panic(err)
	}
	return account
}
