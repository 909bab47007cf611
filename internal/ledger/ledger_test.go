// File: internal/ledger/ledger_test.go
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/Volas171/handlegen/internal/config"
	"github.com/Volas171/handlegen/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var lineRE = regexp.MustCompile(`^USER: [A-Za-z]+[0-9]{5} PWD: [A-Za-z0-9]{16}$`)

func TestFormatLine(t *testing.T) {
	id := identity.Identity{Name: "Hastin", Suffix: 42424, Password: "abcDEF0123456789"}
	assert.Equal(t, "USER: Hastin42424 PWD: abcDEF0123456789\n", FormatLine(id))
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "names.txt")
	l := New(path, zaptest.NewLogger(t))

	first := identity.Identity{Name: "Alpha", Suffix: 10000, Password: "aaaaaaaaaaaaaaaa"}
	second := identity.Identity{Name: "Betagam", Suffix: 99999, Password: "BBBBBBBBBBBBBBBB"}
	require.NoError(t, l.Append(first))
	require.NoError(t, l.Append(second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatLine(first)+FormatLine(second), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
}

func TestAppend_PreservesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("USER: Old12345 PWD: 0000000000000000\n"), filePerm))

	l := New(path, nil)
	require.NoError(t, l.Append(identity.Identity{Name: "New", Suffix: 54321, Password: "1111111111111111"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "USER: Old12345 PWD: 0000000000000000\nUSER: New54321 PWD: 1111111111111111\n", string(data))
}

func TestAppend_GeneratedIdentitiesMatchTemplate(t *testing.T) {
	gen, err := identity.NewGenerator(config.NewDefaultConfig().Identity)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "names.txt")
	l := New(path, nil)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := gen.Derive(fmt.Sprintf("Article number %d about Things", i))
			if assert.NoError(t, err) {
				assert.NoError(t, l.Append(id))
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 50)
	for _, line := range lines {
		assert.Regexp(t, lineRE, line)
	}
}

func TestAppend_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the file makes the open fail.
	path := filepath.Join(dir, "names.txt")
	require.NoError(t, os.Mkdir(path, 0o700))

	err := New(path, nil).Append(identity.Identity{Name: "X", Suffix: 1, Password: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening ledger")
}
