package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"fomcdots/internal/infrastructure"
)

// Config controls fetching behavior.
type Config struct {
	// BaseURL is the site root; relative hrefs are resolved against it.
	BaseURL string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// RequestsPerSecond caps the fetch rate against federalreserve.gov.
	RequestsPerSecond float64
	// Burst is the rate limiter burst size.
	Burst int
	// Concurrency bounds parallel page fetches in ScrapeAll.
	Concurrency int
	// UserAgent identifies the scraper to the server.
	UserAgent string
}

// DefaultConfig returns polite defaults for scraping the Fed's site.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://www.federalreserve.gov",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 2,
		Burst:             1,
		Concurrency:       4,
		UserAgent:         "fomcdots/1.0",
	}
}

// Client fetches and parses FOMC projection pages.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    *infrastructure.PipelineMetrics
}

// NewClient creates a scrape client. Zero-value config fields fall back to
// defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaults.Concurrency
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:     infrastructure.WithComponent(logger, "scrape"),
	}
}

// WithMetrics attaches pipeline metrics to the client so fetches and scraped
// meetings are counted. Returns the client for chaining.
func (c *Client) WithMetrics(metrics *infrastructure.PipelineMetrics) *Client {
	c.metrics = metrics
	return c
}

// FetchDocument retrieves the raw HTML for a URL, honoring the shared rate
// limit and the caller's context. Every attempt is counted, success or not.
func (c *Client) FetchDocument(ctx context.Context, url string) (string, error) {
	body, err := c.fetchDocument(ctx, url)
	infrastructure.RecordScrapeFetch(ctx, c.metrics, err)
	return body, err
}

func (c *Client) fetchDocument(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	c.logger.DebugContext(ctx, "fetched document",
		slog.String("url", url),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", time.Since(start)))

	return string(body), nil
}
