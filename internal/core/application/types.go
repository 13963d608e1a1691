package application

import (
	"time"

	"github.com/dpos-wallet/wallet-daemon/internal/core/domain"
)

// BackupVersion is the version written into every exported document.
const BackupVersion = 1

// baseUnitExponent is the number of decimal places of the ledger's base
// unit, 1 coin = 10^8 base units.
const baseUnitExponent = 8

// ledgerEpoch is the network genesis instant, tx timestamps are expressed
// as seconds elapsed since it.
var ledgerEpoch = time.Date(2016, time.May, 24, 17, 0, 0, 0, time.UTC)

func ledgerTimestamp() uint32 {
	return uint32(time.Since(ledgerEpoch) / time.Second)
}

// LoginOpts carries the optional presentation fields of a login request.
type LoginOpts struct {
	Name         string
	Mode         domain.AccessMode
	FiatCurrency string
}

// SendOpts is the request to build, sign and broadcast a transfer.
type SendOpts struct {
	Mnemonic    []string
	RecipientID string
	Amount      uint64
	Fee         uint64
}

// AccountRecord is the backup representation of one account.
type AccountRecord struct {
	Address      string `json:"id"`
	PublicKey    string `json:"publicKey,omitempty"`
	Name         string `json:"name,omitempty"`
	Pinned       bool   `json:"pinned,omitempty"`
	Mode         int    `json:"mode"`
	FiatCurrency string `json:"fiatCurrency,omitempty"`
}

// ContactRecord is the backup representation of one address book entry.
type ContactRecord struct {
	Address string `json:"id"`
	Name    string `json:"name"`
}

// BackupDocument is the self-describing JSON document produced by
// ExportData and accepted by ImportData. It is sufficient to fully
// reconstruct the account set and, optionally, the address book.
type BackupDocument struct {
	Version  int             `json:"version"`
	Accounts []AccountRecord `json:"accounts"`
	Contacts []ContactRecord `json:"contacts,omitempty"`
}

// ContactInfo is the list form of an address book entry.
type ContactInfo struct {
	Address string
	Name    string
}

func accountToRecord(a domain.Account) AccountRecord {
	return AccountRecord{
		Address:      a.Address,
		PublicKey:    a.PublicKey,
		Name:         a.Name,
		Pinned:       a.Pinned,
		Mode:         int(a.Mode),
		FiatCurrency: a.FiatCurrency,
	}
}

func recordToAccount(r AccountRecord) *domain.Account {
	fiat := r.FiatCurrency
	if len(fiat) <= 0 {
		fiat = domain.DefaultFiatCurrency
	}
	return &domain.Account{
		Address:      r.Address,
		PublicKey:    r.PublicKey,
		Name:         r.Name,
		Pinned:       r.Pinned,
		Mode:         domain.AccessMode(r.Mode),
		FiatCurrency: fiat,
	}
}
