// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Volas171/handlegen/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerLineRE = regexp.MustCompile(`^USER: ([A-Za-z]{1,7})([0-9]{5}) PWD: [A-Za-z0-9]{16}$`)

// runRoot executes a pristine command tree with args from an empty working directory.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newTitleServer(t *testing.T, titles ...string) *httptest.Server {
	t.Helper()
	i := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		heading := titles[i%len(titles)]
		i++
		fmt.Fprintf(w, `<html><body><h1 class="firstHeading">%s</h1></body></html>`, heading)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := runRoot(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "handlegen version "+Version+"\n", out)
}

func TestRootCmd_NoArgs(t *testing.T) {
	out, err := runRoot(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Generates handles from random article titles")
}

func TestGenerateCmd(t *testing.T) {
	server := newTitleServer(t, "Battle of Hastings", "Treaty of Versailles (1919)")
	ledgerPath := filepath.Join(t.TempDir(), "out", "names.txt")

	out, err := runRoot(t, "generate", "--count", "2", "--title-url", server.URL, "--ledger", ledgerPath)
	require.NoError(t, err)

	handles := strings.Fields(out)
	require.Len(t, handles, 2)
	assert.Regexp(t, `^Battl[A-Za-z]{0,2}[0-9]{5}$`, handles[0])
	assert.Regexp(t, `^Treat[A-Za-z]{0,2}[0-9]{5}$`, handles[1])

	data, err := os.ReadFile(ledgerPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		m := ledgerLineRE.FindStringSubmatch(line)
		require.NotNil(t, m, "ledger line %q does not match template", line)
		assert.Equal(t, handles[i], m[1]+m[2])
	}
}

func TestGenerateCmd_EmptyTitlesExhaustAttempts(t *testing.T) {
	server := newTitleServer(t, "1999", "(2000)")
	ledgerPath := filepath.Join(t.TempDir(), "names.txt")
	t.Setenv("HANDLEGEN_TITLE_MAX_ATTEMPTS", "2")
	t.Setenv("HANDLEGEN_TITLE_RATE_PER_SECOND", "0")

	_, err := runRoot(t, "generate", "--title-url", server.URL, "--ledger", ledgerPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable title")
	assert.NoFileExists(t, ledgerPath)
}

func TestGenerateCmd_InvalidCount(t *testing.T) {
	_, err := runRoot(t, "generate", "--count", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}

func TestGenerateCmd_InvalidConfig(t *testing.T) {
	_, err := runRoot(t, "generate", "--driver", "ftp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title.driver")
}

func TestGenerateCmd_ConfigFile(t *testing.T) {
	server := newTitleServer(t, "Alpha Centauri")
	dir := t.TempDir()
	ledgerPath := filepath.Join(dir, "from-file.txt")
	cfgPath := filepath.Join(dir, "handlegen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
title:
  url: %s
ledger:
  path: %s
identity:
  password_length: 16
  name_min_length: 5
  name_max_length: 5
`, server.URL, ledgerPath)), 0o600))

	out, err := runRoot(t, "--config", cfgPath, "generate")
	require.NoError(t, err)
	assert.Regexp(t, `^Alpha[0-9]{5}\n$`, out)
	assert.FileExists(t, ledgerPath)
}

func TestPasswordCmd(t *testing.T) {
	t.Run("default length", func(t *testing.T) {
		out, err := runRoot(t, "password")
		require.NoError(t, err)
		pw := strings.TrimSpace(out)
		assert.Len(t, pw, 16)
		assert.Regexp(t, `^[`+regexp.QuoteMeta(identity.Alphabet)+`]+$`, pw)
	})

	t.Run("explicit length", func(t *testing.T) {
		out, err := runRoot(t, "password", "-l", "32")
		require.NoError(t, err)
		assert.Len(t, strings.TrimSpace(out), 32)
	})

	t.Run("invalid length", func(t *testing.T) {
		_, err := runRoot(t, "password", "-l", "0")
		assert.Error(t, err)
	})
}
