// Package browser provides headless browser rendering for script-driven pages.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Page holds the rendered document from a single navigation.
type Page struct {
	URL        string
	StatusCode int
	HTML       string
}

// Renderer loads a URL in a browser and returns the rendered document.
// Implementations treat every call as an isolated navigation.
type Renderer interface {
	RenderPage(ctx context.Context, url string) (*Page, error)
}

// Chrome renders pages in a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type Chrome struct {
	// Timeout bounds a single page load. Zero means no deadline beyond the
	// caller's context.
	Timeout time.Duration
	Verbose bool
}

// RenderPage navigates to url in a fresh browser context, waits for the DOM
// to be ready, and returns the rendered document with the navigation status.
// Each call launches and tears down its own browser, so no session state
// leaks between requests.
func (c *Chrome) RenderPage(ctx context.Context, url string) (*Page, error) {
	if c.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if c.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
		defer cancel()
	}

	// RunResponse waits for the navigation response so the HTTP status of the
	// document request is known even after redirects.
	resp, err := chromedp.RunResponse(browserCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, fmt.Errorf("browser navigation failed: %w", err)
	}

	var html string
	err = chromedp.Run(browserCtx,
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	page := &Page{URL: url, HTML: html}
	if resp != nil {
		page.StatusCode = int(resp.Status)
	}

	if c.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes (status %d)", len(html), page.StatusCode)
	}

	return page, nil
}
