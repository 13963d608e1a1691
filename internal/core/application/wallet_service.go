package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
	"github.com/dpos-wallet/wallet-daemon/internal/core/ports"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
	"github.com/dpos-wallet/wallet-daemon/pkg/pricefeed"
	"github.com/dpos-wallet/wallet-daemon/pkg/wallet"
)

// WalletService defines the methods of the application layer coordinating
// the set of tracked accounts, the selection and per-account refresh state.
type WalletService interface {
	// ListAccounts returns every tracked account, pinned first, then by
	// display name ascending.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// SelectAccount marks the given account as selected if it exists. An
	// unknown address leaves the selection untouched.
	SelectAccount(ctx context.Context, address string) error
	// SelectedAccount returns the selected account, nil when no selection.
	SelectedAccount(ctx context.Context) (*domain.Account, error)
	// RefreshAccount re-fetches balance and recent transactions of one
	// account. Each part commits independently as its response arrives.
	RefreshAccount(ctx context.Context, address string) error
	// Login fetches the account state from the ledger and registers it. The
	// first registered account becomes selected. Logging into an address that
	// is already tracked refreshes its ledger state but keeps its
	// presentation fields (name, pin, fiat currency) unless the opts set them.
	Login(
		ctx context.Context, address string, opts LoginOpts, isNewAccount bool,
	) (*domain.Account, error)
	// RegisterAccount derives the address of the given mnemonic, without any
	// network round trip.
	RegisterAccount(mnemonic []string) (string, error)
	// RemoveAccount deletes the account, clearing the selection if it
	// pointed at the removed address.
	RemoveAccount(ctx context.Context, address string) error
	// RenameAccount sets the display name of an account.
	RenameAccount(ctx context.Context, address, name string) error
	// ToggleAccountPin flips the pinned flag of an account.
	ToggleAccountPin(ctx context.Context, address string) error
	// Transactions returns the cached transaction list of the account.
	Transactions(ctx context.Context, address string) ([]domain.Transaction, error)
	// Send signs a transfer with the given mnemonic and broadcasts it.
	Send(ctx context.Context, opts SendOpts) (string, error)
	// FiatValue converts the confirmed balance of the account into its
	// preferred fiat currency.
	FiatValue(ctx context.Context, address string) (decimal.Decimal, error)
	// ImportData merges a backup document into the store.
	ImportData(ctx context.Context, doc BackupDocument, overrideExisting bool) error
	// ExportData serializes the account set, optionally with contacts.
	ExportData(ctx context.Context, includeContacts bool) (*BackupDocument, error)
	// AccountError returns the observable error state of the account's last
	// refresh, nil when the last refresh succeeded.
	AccountError(address string) error
	// IsRefreshing reports whether a refresh for the address is in flight.
	IsRefreshing(address string) bool
}

type walletService struct {
	repoManager   ports.DbManager
	ledgerSvc     ledgerapi.Service
	priceSvc      pricefeed.Service
	networkSuffix string
	txPageSize    int

	lock            *sync.RWMutex
	selectedAddress string
	txsByAddress    map[string][]domain.Transaction
	errByAddress    map[string]error
	refreshing      map[string]int
}

// NewWalletService is a constructor function for WalletService.
func NewWalletService(
	repoManager ports.DbManager,
	ledgerSvc ledgerapi.Service,
	priceSvc pricefeed.Service,
	networkSuffix string,
	txPageSize int,
) WalletService {
	if txPageSize <= 0 {
		txPageSize = 25
	}

	svc := &walletService{
		repoManager:   repoManager,
		ledgerSvc:     ledgerSvc,
		priceSvc:      priceSvc,
		networkSuffix: networkSuffix,
		txPageSize:    txPageSize,
		lock:          &sync.RWMutex{},
		txsByAddress:  map[string][]domain.Transaction{},
		errByAddress:  map[string]error{},
		refreshing:    map[string]int{},
	}
	svc.restoreSelection()

	return svc
}

func (s *walletService) restoreSelection() {
	ctx := context.Background()
	settings, err := s.repoManager.SettingsRepository().GetSettings(ctx)
	if err != nil {
		log.WithError(err).Warn("could not restore account selection")
		return
	}
	if len(settings.SelectedAddress) <= 0 {
		return
	}
	account, err := s.repoManager.AccountRepository().GetAccount(
		ctx, settings.SelectedAddress,
	)
	if err != nil || account == nil {
		return
	}
	s.selectedAddress = account.Address
}

func (s *walletService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].Pinned != accounts[j].Pinned {
			return accounts[i].Pinned
		}
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].Address < accounts[j].Address
	})

	return accounts, nil
}

func (s *walletService) SelectAccount(ctx context.Context, address string) error {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, address)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}

	s.lock.Lock()
	s.selectedAddress = address
	s.lock.Unlock()

	return s.persistSelection(ctx, address)
}

func (s *walletService) SelectedAccount(ctx context.Context) (*domain.Account, error) {
	s.lock.RLock()
	selected := s.selectedAddress
	s.lock.RUnlock()

	if len(selected) <= 0 {
		return nil, nil
	}
	return s.repoManager.AccountRepository().GetAccount(ctx, selected)
}

func (s *walletService) RefreshAccount(ctx context.Context, address string) error {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, address)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotExist
	}

	s.lock.Lock()
	s.refreshing[address]++
	s.lock.Unlock()
	defer func() {
		s.lock.Lock()
		s.refreshing[address]--
		s.lock.Unlock()
	}()

	// Both parts are fetched concurrently and committed as they arrive.
	// Results are keyed by the address they were requested for, a response
	// that raced with a selection change still only touches its own account.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		remote, err := s.ledgerSvc.GetAccount(address)
		if err != nil {
			return err
		}
		return s.commitBalance(gctx, address, remote.Balance, remote.UnconfirmedBalance)
	})

	g.Go(func() error {
		txs, _, err := s.ledgerSvc.GetTransactions(address, s.txPageSize, 0)
		if err != nil {
			return err
		}
		s.commitTransactions(gctx, address, txs)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.setAccountError(address, err)
		return err
	}

	s.setAccountError(address, nil)
	return nil
}

func (s *walletService) commitBalance(
	ctx context.Context, address string, confirmed, unconfirmed uint64,
) error {
	return s.repoManager.AccountRepository().UpdateAccount(
		ctx, address,
		func(a *domain.Account) (*domain.Account, error) {
			a.UpdateBalance(confirmed, unconfirmed)
			return a, nil
		},
	)
}

func (s *walletService) commitTransactions(
	ctx context.Context, address string, txs []*ledgerapi.Transaction,
) {
	resolved := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		resolved = append(resolved, s.toDomainTransaction(ctx, tx))
	}

	s.lock.Lock()
	s.txsByAddress[address] = resolved
	s.lock.Unlock()
}

func (s *walletService) toDomainTransaction(
	ctx context.Context, tx *ledgerapi.Transaction,
) domain.Transaction {
	return domain.Transaction{
		ID:            tx.ID,
		BlockID:       tx.BlockID,
		Type:          domain.TxTypeFromLedger(tx.Type),
		Timestamp:     tx.Timestamp,
		SenderID:      tx.SenderID,
		SenderName:    s.resolveName(ctx, tx.SenderID),
		RecipientID:   tx.RecipientID,
		RecipientName: s.resolveName(ctx, tx.RecipientID),
		Amount:        tx.Amount,
		Fee:           tx.Fee,
		Confirmations: tx.Confirmations,
	}
}

// resolveName maps an address to a display name, preferring the address
// book over account names. Unknown addresses yield an empty name.
func (s *walletService) resolveName(ctx context.Context, address string) string {
	if len(address) <= 0 {
		return ""
	}
	if contact, err := s.repoManager.ContactRepository().GetContact(ctx, address); err == nil && contact != nil {
		return contact.Name
	}
	if account, err := s.repoManager.AccountRepository().GetAccount(ctx, address); err == nil && account != nil {
		return account.Name
	}
	return ""
}

func (s *walletService) Login(
	ctx context.Context, address string, opts LoginOpts, isNewAccount bool,
) (*domain.Account, error) {
	remote, err := s.ledgerSvc.GetAccount(address)
	if err != nil {
		// a brand new account has no on-chain state yet, that is expected
		if err != ledgerapi.ErrAccountNotFound || !isNewAccount {
			return nil, err
		}
		remote = &ledgerapi.Account{Address: address}
	}

	// upsert and first-account selection commit or roll back together
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			existing, err := s.repoManager.AccountRepository().GetAccount(ctx, address)
			if err != nil {
				return nil, err
			}

			account, err := mergeLoginAccount(existing, remote, opts)
			if err != nil {
				return nil, err
			}

			all, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
			if err != nil {
				return nil, err
			}

			if err := s.repoManager.AccountRepository().UpsertAccount(ctx, account); err != nil {
				return nil, err
			}

			isFirst := len(all) == 0
			if isFirst {
				err := s.repoManager.SettingsRepository().UpdateSettings(
					ctx, func(settings *domain.Settings) (*domain.Settings, error) {
						settings.SelectedAddress = address
						return settings, nil
					},
				)
				if err != nil {
					return nil, err
				}
			}

			return loginResult{account: account, isFirst: isFirst}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	result := res.(loginResult)
	if result.isFirst {
		s.lock.Lock()
		s.selectedAddress = address
		s.lock.Unlock()
	}

	log.WithField("address", address).Debug("account registered")
	return result.account, nil
}

type loginResult struct {
	account *domain.Account
	isFirst bool
}

// mergeLoginAccount builds the account to persist for a login. Logging into
// an already-tracked address keeps its presentation fields unless the opts
// explicitly override them.
func mergeLoginAccount(
	existing *domain.Account, remote *ledgerapi.Account, opts LoginOpts,
) (*domain.Account, error) {
	account := existing
	if account == nil {
		var err error
		account, err = domain.NewAccount(remote.Address, remote.PublicKey, opts.Mode)
		if err != nil {
			return nil, err
		}
	} else {
		account.Mode = opts.Mode
		if len(remote.PublicKey) > 0 {
			account.PublicKey = remote.PublicKey
		}
	}

	if len(opts.Name) > 0 || existing == nil {
		account.Name = opts.Name
	}
	if len(opts.FiatCurrency) > 0 {
		account.FiatCurrency = opts.FiatCurrency
	}
	account.UpdateBalance(remote.Balance, remote.UnconfirmedBalance)

	return account, nil
}

func (s *walletService) RegisterAccount(mnemonic []string) (string, error) {
	return wallet.AddressFromMnemonic(mnemonic, s.networkSuffix)
}

func (s *walletService) RemoveAccount(ctx context.Context, address string) error {
	if err := s.repoManager.AccountRepository().DeleteAccount(ctx, address); err != nil {
		return err
	}

	s.lock.Lock()
	delete(s.txsByAddress, address)
	delete(s.errByAddress, address)
	cleared := s.selectedAddress == address
	if cleared {
		s.selectedAddress = ""
	}
	s.lock.Unlock()

	if cleared {
		return s.persistSelection(ctx, "")
	}
	return nil
}

func (s *walletService) RenameAccount(ctx context.Context, address, name string) error {
	return s.repoManager.AccountRepository().UpdateAccount(
		ctx, address,
		func(a *domain.Account) (*domain.Account, error) {
			a.Rename(name)
			return a, nil
		},
	)
}

func (s *walletService) ToggleAccountPin(ctx context.Context, address string) error {
	return s.repoManager.AccountRepository().UpdateAccount(
		ctx, address,
		func(a *domain.Account) (*domain.Account, error) {
			a.TogglePinned()
			return a, nil
		},
	)
}

func (s *walletService) Transactions(
	ctx context.Context, address string,
) ([]domain.Transaction, error) {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotExist
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	txs := make([]domain.Transaction, len(s.txsByAddress[address]))
	copy(txs, s.txsByAddress[address])
	return txs, nil
}

func (s *walletService) Send(ctx context.Context, opts SendOpts) (string, error) {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:      opts.Mnemonic,
		NetworkSuffix: s.networkSuffix,
	})
	if err != nil {
		return "", err
	}

	address, err := w.Address()
	if err != nil {
		return "", err
	}

	account, err := s.repoManager.AccountRepository().GetAccount(ctx, address)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrAccountNotExist
	}
	if !account.CanSign() {
		return "", ErrReadOnlyAccount
	}

	signed, err := w.SignTransaction(wallet.SignTransactionOpts{
		Type:        wallet.TxTypeSend,
		Timestamp:   ledgerTimestamp(),
		RecipientID: opts.RecipientID,
		Amount:      opts.Amount,
		Fee:         opts.Fee,
	})
	if err != nil {
		return "", err
	}

	txid, err := s.ledgerSvc.BroadcastTransaction(ledgerapi.BroadcastTx{
		ID:              signed.ID,
		Type:            int(signed.Type),
		Timestamp:       int64(signed.Timestamp),
		SenderPublicKey: signed.SenderPublicKey,
		RecipientID:     signed.RecipientID,
		Amount:          signed.Amount,
		Fee:             signed.Fee,
		Signature:       signed.Signature,
	})
	if err != nil {
		return "", err
	}

	log.WithField("txid", txid).Info("transaction broadcasted")
	return txid, nil
}

func (s *walletService) FiatValue(
	ctx context.Context, address string,
) (decimal.Decimal, error) {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	if account == nil {
		return decimal.Zero, ErrAccountNotExist
	}

	rate, err := s.priceSvc.SpotRate(account.FiatCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.New(int64(account.Balance), -baseUnitExponent)
	return balance.Mul(rate), nil
}

func (s *walletService) ImportData(
	ctx context.Context, doc BackupDocument, overrideExisting bool,
) error {
	if doc.Version != BackupVersion {
		return ErrUnsupportedBackupVersion
	}

	// each store merges in a single transaction, a bad record rolls back
	// every account (or contact) of the document
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			for _, record := range doc.Accounts {
				if len(record.Address) <= 0 {
					return nil, domain.ErrInvalidAddress
				}
				existing, err := s.repoManager.AccountRepository().GetAccount(
					ctx, record.Address,
				)
				if err != nil {
					return nil, err
				}
				if existing != nil && !overrideExisting {
					continue
				}
				if err := s.repoManager.AccountRepository().UpsertAccount(
					ctx, recordToAccount(record),
				); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	); err != nil {
		return err
	}

	if len(doc.Contacts) <= 0 {
		return nil
	}

	_, err := s.repoManager.RunContactsTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			for _, record := range doc.Contacts {
				contact, err := domain.NewContact(record.Address, record.Name)
				if err != nil {
					return nil, err
				}
				existing, err := s.repoManager.ContactRepository().GetContact(
					ctx, record.Address,
				)
				if err != nil {
					return nil, err
				}
				if existing != nil && !overrideExisting {
					continue
				}
				if err := s.repoManager.ContactRepository().UpsertContact(
					ctx, contact,
				); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	)
	return err
}

func (s *walletService) ExportData(
	ctx context.Context, includeContacts bool,
) (*BackupDocument, error) {
	accounts, err := s.repoManager.AccountRepository().GetAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	doc := &BackupDocument{
		Version:  BackupVersion,
		Accounts: make([]AccountRecord, 0, len(accounts)),
	}
	for _, a := range accounts {
		doc.Accounts = append(doc.Accounts, accountToRecord(a))
	}

	if includeContacts {
		contacts, err := s.repoManager.ContactRepository().GetAllContacts(ctx)
		if err != nil {
			return nil, err
		}
		doc.Contacts = make([]ContactRecord, 0, len(contacts))
		for _, c := range contacts {
			doc.Contacts = append(doc.Contacts, ContactRecord{
				Address: c.Address, Name: c.Name,
			})
		}
	}

	return doc, nil
}

func (s *walletService) AccountError(address string) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.errByAddress[address]
}

func (s *walletService) IsRefreshing(address string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.refreshing[address] > 0
}

func (s *walletService) setAccountError(address string, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err != nil {
		s.errByAddress[address] = err
		return
	}
	delete(s.errByAddress, address)
}

func (s *walletService) persistSelection(ctx context.Context, address string) error {
	err := s.repoManager.SettingsRepository().UpdateSettings(
		ctx, func(settings *domain.Settings) (*domain.Settings, error) {
			settings.SelectedAddress = address
			return settings, nil
		},
	)
	if err != nil {
		return fmt.Errorf("persisting selection: %w", err)
	}
	return nil
}
