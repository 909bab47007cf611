// File: internal/ledger/ledger.go
package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Volas171/handlegen/internal/identity"
	"go.uber.org/zap"
)

// filePerm keeps the ledger readable by its owner only; it holds passwords.
const filePerm = 0o600

// Ledger is an append-only text file of generated credentials, one line per identity.
type Ledger struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// New returns a Ledger writing to path. The file is created on first append.
func New(path string, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{path: path, logger: logger.Named("ledger")}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string { return l.path }

// FormatLine renders the ledger line for id, including the trailing newline.
func FormatLine(id identity.Identity) string {
	return fmt.Sprintf("USER: %s%d PWD: %s\n", id.Name, id.Suffix, id.Password)
}

// Append writes one line for id. Each call opens the file in append mode so
// concurrent processes never overwrite each other's lines.
func (l *Ledger) Append(id identity.Identity) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("opening ledger %s: %w", l.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing ledger: %w", cerr))
		}
	}()

	if _, err := f.WriteString(FormatLine(id)); err != nil {
		return fmt.Errorf("writing ledger %s: %w", l.path, err)
	}

	l.logger.Debug("Recorded identity", zap.String("username", id.Username()), zap.String("path", l.path))
	return nil
}
