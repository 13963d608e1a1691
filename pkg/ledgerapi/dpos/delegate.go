package dpos

import (
	"fmt"
	"net/url"

	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

type delegatesResponse struct {
	envelope
	Delegates []delegateJSON `json:"delegates"`
}

func (d *dposNode) SearchDelegates(query string, limit int) ([]*ledgerapi.Delegate, error) {
	if limit <= 0 {
		limit = 10
	}
	reqURL := fmt.Sprintf(
		"%s/api/delegates/search?q=%s&limit=%d",
		d.apiURL, url.QueryEscape(query), limit,
	)

	var payload delegatesResponse
	if err := d.get(reqURL, &payload); err != nil {
		return nil, err
	}

	delegates := make([]*ledgerapi.Delegate, 0, len(payload.Delegates))
	for _, dj := range payload.Delegates {
		vote, err := parseAmount(dj.Vote)
		if err != nil {
			return nil, err
		}
		delegates = append(delegates, &ledgerapi.Delegate{
			Username:       dj.Username,
			Address:        dj.Address,
			PublicKey:      dj.PublicKey,
			Rank:           dj.Rate,
			Vote:           vote,
			ProducedBlocks: dj.ProducedBlocks,
			MissedBlocks:   dj.MissedBlocks,
		})
	}

	return delegates, nil
}
