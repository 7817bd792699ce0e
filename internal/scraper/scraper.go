// Package scraper turns a listing page into a draft InternshipListing.
// Fetching needs a headless Chrome; parsing works on any HTML string.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/khrees2412/internly/internal/logger"
)

const (
	pageLoadTimeout = 30 * time.Second
	renderDelay     = 2 * time.Second
)

// Fetcher returns the rendered HTML of a page
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// BrowserFetcher renders pages in headless Chrome
type BrowserFetcher struct {
	Timeout time.Duration
}

// NewBrowserFetcher returns a fetcher with the given page timeout; zero means 30s
func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = pageLoadTimeout
	}
	return &BrowserFetcher{Timeout: timeout}
}

// createBrowserContext creates a new browser context with appropriate options
func createBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	log := logger.Component("scraper")
	ctx, cancel2 := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		// chromedp is noisy about CDP events it cannot decode
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		log.Debug().Msg(msg)
	}))

	return ctx, func() {
		cancel2()
		cancel()
	}
}

// FetchHTML navigates to url, waits for the body and returns the page HTML
func (f *BrowserFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	ctx, cancel := createBrowserContext(ctx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	logger.Info().Str("url", url).Msg("fetching listing page")

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(renderDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}
	return html, nil
}
