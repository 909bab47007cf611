// File: internal/title/title.go
package title

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Volas171/handlegen/internal/config"
	"go.uber.org/zap"
)

// ErrNoTitle is returned when the page loaded but the selector matched nothing.
var ErrNoTitle = errors.New("no title found on page")

// Source yields the heading text of a randomly chosen article.
type Source interface {
	RandomTitle(ctx context.Context) (string, error)
}

// NewSource builds the Source selected by cfg.Title.Driver.
func NewSource(cfg *config.Config, logger *zap.Logger) (Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Title.Driver {
	case config.DriverHTTP:
		return NewHTTPSource(cfg.Title, nil, logger), nil
	case config.DriverBrowser:
		return NewBrowserSource(cfg.Title, cfg.Browser, logger), nil
	default:
		return nil, fmt.Errorf("unknown title driver %q", cfg.Title.Driver)
	}
}

func cleanText(s string) string {
	return strings.TrimSpace(s)
}
