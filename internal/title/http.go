// File: internal/title/http.go
package title

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/Volas171/handlegen/internal/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "handlegen/1.0 (+https://github.com/Volas171/handlegen)"

// HTTPSource fetches the page with a plain HTTP client and reads the heading
// from the parsed document. The random-article URL redirects, which the
// client follows.
type HTTPSource struct {
	cfg     config.TitleConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPSource returns an HTTPSource. A nil client gets one with cfg.Timeout.
func NewHTTPSource(cfg config.TitleConfig, client *http.Client, logger *zap.Logger) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	return &HTTPSource{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.Named("title.http"),
	}
}

// RandomTitle implements Source.
func (s *HTTPSource) RandomTitle(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", s.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", s.cfg.URL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", resp.Request.URL, err)
	}

	text := cleanText(doc.Find(s.cfg.Selector).First().Text())
	if text == "" {
		return "", fmt.Errorf("%w: selector %q at %s", ErrNoTitle, s.cfg.Selector, resp.Request.URL)
	}

	s.logger.Debug("Fetched title", zap.String("title", text), zap.String("url", resp.Request.URL.String()))
	return text, nil
}
