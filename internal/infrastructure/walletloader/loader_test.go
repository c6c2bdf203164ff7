package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAddresses(t *testing.T) {
	a := "0x" + strings.Repeat("a", 64)
	b := "0x" + strings.Repeat("B", 64)
	content := strings.Join([]string{
		"# wallets to roast",
		"",
		"  " + a + "  ",
		"0x1234",
		b,
		"   # indented comment",
	}, "\n")
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var skipped []any
	loader := NewAddressFileLoader(path, func(msg string, args ...any) {
		if strings.HasPrefix(msg, "Skipping") {
			skipped = append(skipped, args...)
		}
	})

	got, err := loader.GetAddresses()
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, got)
	assert.Contains(t, skipped, "0x1234")
	assert.Contains(t, skipped, 4)
}

func TestGetAddresses_MissingFile(t *testing.T) {
	loader := NewAddressFileLoader(filepath.Join(t.TempDir(), "none.txt"), nil)
	_, err := loader.GetAddresses()
	assert.Error(t, err)
}
