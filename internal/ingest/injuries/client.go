// Package injuries scrapes the league injury report.
package injuries

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/fortuna/delphi/internal/store"
)

const (
	// DefaultURL is ESPN's NBA injury report
	DefaultURL = "https://www.espn.com/nba/injuries"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	fetchTimeout = 45 * time.Second
)

// Client renders the injury page in headless Chrome
type Client struct {
	url    string
	logger zerolog.Logger

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a scraper for url
func NewClient(url string, logger zerolog.Logger) *Client {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		url:      url,
		logger:   logger.With().Str("component", "injuries").Logger(),
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Close releases the browser
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Fetch scrapes and parses the current report
func (c *Client) Fetch(ctx context.Context) ([]*store.InjuryReport, error) {
	html, err := c.fetchPage(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := Parse(html)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Int("injuries", len(reports)).Msg("injury report scraped")
	return reports, nil
}

func (c *Client) fetchPage(ctx context.Context) (string, error) {
	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, fetchTimeout)
	defer cancel()

	// stop the browser when the caller gives up
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(c.url),
		chromedp.WaitReady(`table`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}

	return htmlContent, nil
}
