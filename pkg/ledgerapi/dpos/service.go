package dpos

import (
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/dpos-wallet/wallet-daemon/pkg/circuitbreaker"
	"github.com/dpos-wallet/wallet-daemon/pkg/httputil"
	"github.com/dpos-wallet/wallet-daemon/pkg/ledgerapi"
)

type dposNode struct {
	apiURL  string
	breaker *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// Opts defines the parameters needed for creating a ledger service with the
// NewService method.
type Opts struct {
	APIURL            string
	RequestsPerSecond int
}

func (o Opts) validate() error {
	if len(o.APIURL) <= 0 {
		return fmt.Errorf("api url must not be null")
	}
	return nil
}

// NewService returns a new dpos node client as a ledgerapi.Service interface.
// The client paces its requests with a leaky-bucket limiter and trips a
// circuit breaker when the node keeps failing.
func NewService(opts Opts) (ledgerapi.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	service := &dposNode{
		apiURL:  opts.APIURL,
		breaker: circuitbreaker.NewCircuitBreaker("ledger"),
		limiter: ratelimit.New(rps),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (d *dposNode) healthCheck() error {
	_, err := d.GetStatus()
	return err
}

func (d *dposNode) GetStatus() (*ledgerapi.Status, error) {
	url := fmt.Sprintf("%s/api/loader/status/sync", d.apiURL)

	var payload struct {
		envelope
		Height  int64 `json:"height"`
		Syncing bool  `json:"syncing"`
	}
	if err := d.get(url, &payload); err != nil {
		return nil, err
	}

	return &ledgerapi.Status{
		Height: payload.Height,
		Loaded: !payload.Syncing,
	}, nil
}

// get performs a rate-limited GET through the circuit breaker and decodes
// the ledger envelope into out, which must embed envelope.
func (d *dposNode) get(url string, out successChecker) error {
	d.limiter.Take()

	body, err := d.breaker.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(http.MethodGet, url, "", nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ledgerapi.ErrUnreachable, err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ledgerapi.ErrUnreachable, status)
		}
		return resp, nil
	})
	if err != nil {
		return err
	}

	return decodeEnvelope(body.(string), out)
}

func (d *dposNode) post(url, bodyString string, out successChecker) error {
	d.limiter.Take()

	headers := map[string]string{"Content-Type": "application/json"}
	body, err := d.breaker.Execute(func() (interface{}, error) {
		status, resp, err := httputil.NewHTTPRequest(
			http.MethodPost, url, bodyString, headers,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ledgerapi.ErrUnreachable, err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ledgerapi.ErrUnreachable, status)
		}
		return resp, nil
	})
	if err != nil {
		return err
	}

	return decodeEnvelope(body.(string), out)
}
