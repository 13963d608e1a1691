package pricefeed

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCurrency ...
	ErrUnknownCurrency = errors.New("fiat currency is not supported by the feed")
	// ErrStaleRate ...
	ErrStaleRate = errors.New("no rate fetched yet for the currency")
)

// Service is the representation of a fiat spot-rate source. Rates express
// how much one whole coin is worth in the given fiat currency.
type Service interface {
	// SpotRate returns the latest known rate for the given fiat currency
	// (ISO 4217 code, eg. "USD").
	SpotRate(currency string) (decimal.Decimal, error)
}

// CachingService decorates a Service with a time-based cache so display
// refreshes do not hammer the upstream ticker.
type CachingService struct {
	inner Service
	ttl   time.Duration

	lock  sync.RWMutex
	rates map[string]cachedRate
}

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// NewCachingService wraps the given source with a cache of the given ttl.
func NewCachingService(inner Service, ttl time.Duration) *CachingService {
	return &CachingService{
		inner: inner,
		ttl:   ttl,
		rates: make(map[string]cachedRate),
	}
}

func (c *CachingService) SpotRate(currency string) (decimal.Decimal, error) {
	c.lock.RLock()
	cached, ok := c.rates[currency]
	c.lock.RUnlock()
	if ok && time.Since(cached.fetchedAt) < c.ttl {
		return cached.rate, nil
	}

	rate, err := c.inner.SpotRate(currency)
	if err != nil {
		if ok {
			// fall back to the stale rate rather than showing nothing
			return cached.rate, nil
		}
		return decimal.Zero, err
	}

	c.lock.Lock()
	c.rates[currency] = cachedRate{rate: rate, fetchedAt: time.Now()}
	c.lock.Unlock()

	return rate, nil
}
