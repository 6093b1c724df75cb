// Package series resolves a series landing page into its feed URL and title.
package series

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/liweichen/series-harvester/internal/browser"
	"github.com/liweichen/series-harvester/internal/extract"
	"github.com/liweichen/series-harvester/internal/site"
)

// UnknownTitle is the sentinel for a landing page without a recognizable
// series title. The pipeline replaces it with the feed's own channel title.
const UnknownTitle = "Unknown Series"

// Info holds what a landing page reveals about its series.
type Info struct {
	FeedURL string
	Title   string
}

// ResolveError represents a failure resolving a series landing page.
type ResolveError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolve error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("resolve error for %s: %s", e.URL, e.Message)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// Resolve renders a series landing page and locates its feed link and series
// title. The feed link is required; a missing or unrecognizable title falls
// back to UnknownTitle so the caller can substitute the feed's channel title.
func Resolve(ctx context.Context, renderer browser.Renderer, publisher site.Publisher, landingURL string) (*Info, error) {
	page, err := renderer.RenderPage(ctx, landingURL)
	if err != nil {
		return nil, &ResolveError{
			URL:     landingURL,
			Message: "failed to load page",
			Cause:   err,
		}
	}
	if page == nil {
		return nil, &ResolveError{
			URL:     landingURL,
			Message: "no response from page load",
		}
	}
	if page.StatusCode != 200 {
		return nil, &ResolveError{
			URL:     landingURL,
			Message: fmt.Sprintf("page returned status %d", page.StatusCode),
		}
	}

	feedURL := extract.FirstAttr(page.HTML, site.FeedLinkSelectors(publisher), "href")
	if feedURL == "" {
		return nil, &ResolveError{
			URL:     landingURL,
			Message: "no feed link found",
		}
	}
	if !strings.HasPrefix(feedURL, "http") {
		feedURL = absolutize(landingURL, feedURL)
	}

	title := extract.FirstText(page.HTML, site.TitleSelectors(publisher))
	if title != "" {
		title = site.TrimSeriesTitle(publisher, title)
	}
	if title == "" {
		title = UnknownTitle
	}

	return &Info{FeedURL: feedURL, Title: title}, nil
}

// absolutize resolves href against the page URL that carried it.
func absolutize(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
