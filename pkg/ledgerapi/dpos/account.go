package dpos

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

type accountResponse struct {
	envelope
	Account accountJSON `json:"account"`
}

func (d *dposNode) GetAccount(address string) (*ledgerapi.Account, error) {
	reqURL := fmt.Sprintf(
		"%s/api/accounts?address=%s", d.apiURL, url.QueryEscape(address),
	)

	var payload accountResponse
	if err := d.get(reqURL, &payload); err != nil {
		return nil, err
	}

	return parseAccount(payload.Account)
}

func parseAccount(a accountJSON) (*ledgerapi.Account, error) {
	balance, err := parseAmount(a.Balance)
	if err != nil {
		return nil, err
	}
	unconfirmed, err := parseAmount(a.UnconfirmedBalance)
	if err != nil {
		return nil, err
	}

	return &ledgerapi.Account{
		Address:            a.Address,
		PublicKey:          a.PublicKey,
		SecondPublicKey:    a.SecondPublicKey,
		Balance:            balance,
		UnconfirmedBalance: unconfirmed,
	}, nil
}

// parseAmount decodes a base-unit amount the node renders as a decimal
// string. An empty string counts as zero.
func parseAmount(s string) (uint64, error) {
	if len(s) <= 0 {
		return 0, nil
	}
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ledgerapi.ErrMalformedResponse, s)
	}
	return amount, nil
}
