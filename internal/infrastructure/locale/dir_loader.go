package localeloader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dpos-wallet/wallet-daemon/internal/core/application"
)

type dirLoader struct {
	dir string
}

// NewDirLoader returns a CatalogLoader reading <dir>/<locale>.json from the
// local filesystem. Used for bundled catalogs and tests.
func NewDirLoader(dir string) application.CatalogLoader {
	return &dirLoader{dir: dir}
}

func (l *dirLoader) Load(
	_ context.Context, locale string,
) (map[string]string, error) {
	path := filepath.Join(l.dir, fmt.Sprintf("%s.json", locale))
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	catalog := map[string]string{}
	if err := json.Unmarshal(buf, &catalog); err != nil {
		return nil, fmt.Errorf("malformed catalog for locale %s: %w", locale, err)
	}
	return catalog, nil
}
