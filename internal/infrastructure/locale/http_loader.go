package localeloader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
	"github.com/dpos-wallet/wallet-daemon/pkg/httputil"
)

type httpLoader struct {
	baseURL string
}

// NewHTTPLoader returns a CatalogLoader fetching catalogs from
// <baseURL>/<locale>.json. Catalogs are flat JSON objects mapping message
// keys to translated strings.
func NewHTTPLoader(baseURL string) application.CatalogLoader {
	return &httpLoader{baseURL: baseURL}
}

func (l *httpLoader) Load(
	_ context.Context, locale string,
) (map[string]string, error) {
	url := fmt.Sprintf("%s/%s.json", l.baseURL, locale)
	status, body, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned status %d", status)
	}

	catalog := map[string]string{}
	if err := json.Unmarshal([]byte(body), &catalog); err != nil {
		return nil, fmt.Errorf("malformed catalog for locale %s: %w", locale, err)
	}
	return catalog, nil
}
