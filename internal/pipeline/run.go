// Package pipeline provides the high-level orchestration for harvesting
// content series into per-series Markdown archives.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/liweichen/series-harvester/internal/browser"
	"github.com/liweichen/series-harvester/internal/document"
	"github.com/liweichen/series-harvester/internal/extract"
	"github.com/liweichen/series-harvester/internal/feed"
	"github.com/liweichen/series-harvester/internal/fetch"
	"github.com/liweichen/series-harvester/internal/images"
	"github.com/liweichen/series-harvester/internal/series"
	"github.com/liweichen/series-harvester/internal/site"
)

// Options configures a harvest run.
type Options struct {
	// SeriesURLs are the series landing pages to harvest, processed in order.
	SeriesURLs []string

	// OutputDir is the archive root; each series gets a subdirectory named
	// after its sanitized title.
	OutputDir string

	// Timeout bounds each feed fetch and image download. Zero uses the fetch
	// package default.
	Timeout time.Duration

	// InsecureTLS skips certificate verification on feed and image fetches.
	InsecureTLS bool

	// Verbose enables diagnostic logging throughout the run.
	Verbose bool
}

// SeriesReport summarizes the outcome of one series.
type SeriesReport struct {
	SeriesURL string
	FeedURL   string
	Title     string
	Listed    int
	Saved     int
	Images    images.Stats
}

// RunReport sums a whole harvest run.
type RunReport struct {
	SeriesCount int
	TotalSaved  int
	Series      []SeriesReport
}

// Run harvests every configured series in order and returns the aggregated
// report. Individual series failures are reported and skipped; the run always
// completes.
func Run(ctx context.Context, renderer browser.Renderer, opts Options) *RunReport {
	report := &RunReport{}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Series harvest: feeds to Markdown")
	fmt.Println(strings.Repeat("=", 60))

	if len(opts.SeriesURLs) == 0 {
		fmt.Println("No series URLs configured, nothing to do")
		return report
	}
	fmt.Printf("Found %d series\n", len(opts.SeriesURLs))

	for _, seriesURL := range opts.SeriesURLs {
		seriesReport := ProcessSeries(ctx, renderer, seriesURL, opts)
		report.SeriesCount++
		report.TotalSaved += seriesReport.Saved
		report.Series = append(report.Series, *seriesReport)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("Done! Saved %d articles\n", report.TotalSaved)
	fmt.Printf("Output directory: %s\n", opts.OutputDir)
	fmt.Println(strings.Repeat("=", 60))

	return report
}

// ProcessSeries harvests one series: resolve the landing page, enumerate the
// feed, harvest each article, then localize the images. Every failure mode
// short-circuits the affected article or series and never aborts the batch.
func ProcessSeries(ctx context.Context, renderer browser.Renderer, seriesURL string, opts Options) *SeriesReport {
	report := &SeriesReport{SeriesURL: seriesURL}
	publisher := site.Detect(seriesURL)
	fetchOpts := fetchOptions(publisher, opts)

	fmt.Printf("\nProcessing series: %s\n", seriesURL)

	fmt.Println("  Step 1: Resolving series info...")
	info, err := series.Resolve(ctx, renderer, publisher, seriesURL)
	if err != nil {
		fmt.Printf("  Warning: %v\n", err)
		fmt.Println("  Skipping series")
		return report
	}
	report.FeedURL = info.FeedURL
	fmt.Printf("  Feed URL: %s\n", info.FeedURL)
	fmt.Printf("  Series title: %s\n", info.Title)

	fmt.Println("  Step 2: Fetching feed article list...")
	var feedTitle string
	var articles []feed.Article

	result, err := fetch.URL(ctx, info.FeedURL, fetchOpts)
	if err != nil {
		fmt.Printf("  Warning: failed to fetch feed: %v\n", err)
	} else {
		parsed, err := feed.Parse(result.Body)
		if err != nil {
			fmt.Printf("  Warning: %v\n", err)
		} else {
			feedTitle = site.TrimFeedTitle(publisher, parsed.Title)
			articles = parsed.Articles
			fmt.Printf("  Feed lists %d articles\n", len(articles))
		}
	}

	// The landing page title wins unless it came back as the sentinel.
	title := info.Title
	if title == series.UnknownTitle && feedTitle != "" {
		title = feedTitle
	}
	report.Title = title
	report.Listed = len(articles)

	if len(articles) == 0 {
		fmt.Println("  No articles found, skipping series")
		return report
	}

	seriesDir := filepath.Join(opts.OutputDir, document.SanitizeName(title))
	if err := os.MkdirAll(seriesDir, 0755); err != nil {
		fmt.Printf("  Warning: failed to create series directory: %v\n", err)
		return report
	}
	fmt.Printf("  Output directory: %s\n", seriesDir)

	fmt.Printf("  Step 3: Harvesting %d articles...\n", len(articles))
	for i, article := range articles {
		fmt.Printf("    (%d/%d) %.50s...\n", i+1, len(articles), article.Title)

		if article.Link == "" {
			fmt.Println("      Skipping: no link")
			continue
		}

		page, err := renderer.RenderPage(ctx, article.Link)
		if err != nil {
			fmt.Printf("      Warning: failed to load page: %v\n", err)
			continue
		}
		if page == nil || page.StatusCode != 200 {
			fmt.Printf("      Warning: failed to load page %s\n", article.Link)
			continue
		}

		fragment := extract.FirstInnerHTML(page.HTML, site.ContentSelectors(publisher))
		if fragment == "" {
			fmt.Println("      Warning: no content found")
			continue
		}
		if opts.Verbose {
			fmt.Printf("      [VERBOSE] Extracted %d bytes of content\n", len(fragment))
		}

		markdown, err := document.ToMarkdown(fragment)
		if err != nil {
			fmt.Printf("      Warning: %v\n", err)
			continue
		}
		if markdown == "" {
			fmt.Println("      Warning: converted content is empty")
			continue
		}

		doc := document.Build(article.Title, article.Link, markdown)
		if _, err := document.Write(seriesDir, article.Title, doc); err != nil {
			fmt.Printf("      Warning: %v\n", err)
			continue
		}
		report.Saved++
	}

	fmt.Println("  Step 4: Processing article images...")
	stats, err := images.ProcessSeriesDir(ctx, seriesDir, fetchOpts, make(images.Registry), opts.Verbose)
	if err != nil {
		fmt.Printf("  Warning: image pass failed: %v\n", err)
	} else {
		report.Images = stats
		fmt.Printf("    Image stats: articles=%d, images=%d, downloaded=%d, failed=%d\n",
			stats.ArticleCount, stats.ImageCount, stats.DownloadSuccess, stats.DownloadFailed)
	}

	return report
}

// fetchOptions builds the raw HTTP options for a publisher's feed and image
// fetches.
func fetchOptions(publisher site.Publisher, opts Options) *fetch.Options {
	fo := fetch.DefaultOptions()
	if opts.Timeout > 0 {
		fo.Timeout = opts.Timeout
	}
	fo.InsecureTLS = opts.InsecureTLS
	fo.Referer = site.Referer(publisher)
	return fo
}
