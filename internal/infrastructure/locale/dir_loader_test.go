package localeloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	localeloader "github.com/dpos-wallet/wallet-daemon/internal/infrastructure/locale"
)

func TestDirLoader(t *testing.T) {
	dir, err := os.MkdirTemp("", "catalogs")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	catalog := `{"hello": "Hello", "bye": "Bye"}`
	err = os.WriteFile(filepath.Join(dir, "en.json"), []byte(catalog), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "it.json"), []byte(`{bad`), 0644)
	require.NoError(t, err)

	loader := localeloader.NewDirLoader(dir)

	messages, err := loader.Load(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", messages["hello"])
	assert.Len(t, messages, 2)

	_, err = loader.Load(context.Background(), "it")
	require.Error(t, err)

	_, err = loader.Load(context.Background(), "de")
	require.Error(t, err)
}
