package coinbasefeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dpos-wallet/wallet-daemon/pkg/httputil"
	"github.com/dpos-wallet/wallet-daemon/pkg/pricefeed"
)

const defaultAPIURL = "https://api.coinbase.com"

type service struct {
	apiURL string
	ticker string
}

// NewService returns a pricefeed.Service fetching spot rates from the
// Coinbase public ticker for the given coin symbol (eg. "BTC").
func NewService(apiURL, coinSymbol string) pricefeed.Service {
	if len(apiURL) <= 0 {
		apiURL = defaultAPIURL
	}
	return &service{
		apiURL: apiURL,
		ticker: strings.ToUpper(coinSymbol),
	}
}

type spotResponse struct {
	Data struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (s *service) SpotRate(currency string) (decimal.Decimal, error) {
	url := fmt.Sprintf(
		"%s/v2/prices/%s-%s/spot", s.apiURL, s.ticker, strings.ToUpper(currency),
	)

	status, resp, err := httputil.NewHTTPRequest(http.MethodGet, url, "", nil)
	if err != nil {
		return decimal.Zero, err
	}
	if status == http.StatusNotFound {
		return decimal.Zero, pricefeed.ErrUnknownCurrency
	}
	if status != http.StatusOK {
		return decimal.Zero, fmt.Errorf("spot rate: status %d", status)
	}

	var payload spotResponse
	if err := json.Unmarshal([]byte(resp), &payload); err != nil {
		return decimal.Zero, fmt.Errorf("spot rate: %w", err)
	}
	if len(payload.Errors) > 0 {
		return decimal.Zero, fmt.Errorf("spot rate: %s", payload.Errors[0].Message)
	}

	rate, err := decimal.NewFromString(payload.Data.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("spot rate: %w", err)
	}

	return rate, nil
}
