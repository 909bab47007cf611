// File: internal/title/browser.go
package title

import (
	"context"
	"fmt"
	"time"

	"github.com/Volas171/handlegen/internal/config"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// BrowserSource renders the page in headless Chrome and reads the heading once
// it is visible. Use it when the title is filled in by script.
type BrowserSource struct {
	cfg     config.TitleConfig
	browser config.BrowserConfig
	logger  *zap.Logger
}

// NewBrowserSource returns a BrowserSource. Each call to RandomTitle starts
// and tears down its own browser process.
func NewBrowserSource(cfg config.TitleConfig, browser config.BrowserConfig, logger *zap.Logger) *BrowserSource {
	return &BrowserSource{cfg: cfg, browser: browser, logger: logger.Named("title.browser")}
}

// allocatorOptions builds the exec allocator flags for this source.
func (s *BrowserSource) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", s.browser.Headless))
	if s.browser.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(s.browser.ExecPath))
	}
	if s.browser.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.browser.UserAgent))
	}
	return opts
}

// RandomTitle implements Source.
func (s *BrowserSource) RandomTitle(ctx context.Context) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := s.browser.NavigationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	runCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var text, location string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(s.cfg.URL),
		chromedp.WaitVisible(s.cfg.Selector, chromedp.ByQuery),
		chromedp.Text(s.cfg.Selector, &text, chromedp.ByQuery),
		chromedp.Location(&location),
	)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return "", fmt.Errorf("waiting for %q timed out after %s: %w", s.cfg.Selector, timeout, err)
		}
		return "", fmt.Errorf("reading title from %s: %w", s.cfg.URL, err)
	}

	text = cleanText(text)
	if text == "" {
		return "", fmt.Errorf("%w: selector %q at %s", ErrNoTitle, s.cfg.Selector, location)
	}

	s.logger.Debug("Fetched title", zap.String("title", text), zap.String("url", location))
	return text, nil
}
