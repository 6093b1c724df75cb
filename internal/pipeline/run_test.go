package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liweichen/series-harvester/internal/browser"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// fakeRenderer serves canned pages by exact URL.
type fakeRenderer struct {
	pages map[string]*browser.Page
}

func (f *fakeRenderer) RenderPage(ctx context.Context, url string) (*browser.Page, error) {
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return nil, errors.New("no route to " + url)
}

func page(html string) *browser.Page {
	return &browser.Page{StatusCode: 200, HTML: html}
}

// newSeriesServer serves a feed document at /feed.xml and a PNG at any other
// path.
func newSeriesServer(t *testing.T, feedXML *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/feed.xml" {
			if *feedXML == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(*feedXML))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	t.Cleanup(server.Close)
	return server
}

func landingHTML(feedURL, title string) string {
	titleTag := ""
	if title != "" {
		titleTag = `<h3 class="qa-list__title">` + title + `</h3>`
	}
	return `<html><body>` + titleTag +
		`<a class="btn-rss btn-no-border" href="` + feedURL + `">RSS</a></body></html>`
}

func articleHTML(body string) string {
	return `<html><body><div class="markdown-body">` + body + `</div></body></html>`
}

func TestProcessSeries_EndToEnd(t *testing.T) {
	feedXML := ""
	server := newSeriesServer(t, &feedXML)
	landingURL := "https://ithelp.ithome.com.tw/users/20100000/ironman/42"

	feedXML = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>30 天學會 Go :: 2024 iThome 鐵人賽</title>
    <item>
      <title>Day 1: Hello</title>
      <link>https://ithelp.ithome.com.tw/articles/10001?utm_source=rss</link>
    </item>
    <item>
      <title>Day 2: Images</title>
      <link>https://ithelp.ithome.com.tw/articles/10002</link>
    </item>
    <item>
      <title>Day 3: No Link</title>
    </item>
    <item>
      <title>Day 4: Broken</title>
      <link>https://ithelp.ithome.com.tw/articles/10004</link>
    </item>
    <item>
      <title>Day 5: Empty</title>
      <link>https://ithelp.ithome.com.tw/articles/10005</link>
    </item>
  </channel>
</rss>`)

	renderer := &fakeRenderer{pages: map[string]*browser.Page{
		landingURL: page(landingHTML(server.URL+"/feed.xml", "30 天學會 Go 系列")),
		"https://ithelp.ithome.com.tw/articles/10001": page(articleHTML("<p>Hello world.</p>")),
		"https://ithelp.ithome.com.tw/articles/10002": page(articleHTML(
			`<p>With a picture:</p><img src="` + server.URL + `/img/logo.png" alt="logo">`)),
		"https://ithelp.ithome.com.tw/articles/10005": page(`<html><body><div class="sidebar">nothing here</div></body></html>`),
	}}

	outputDir := t.TempDir()
	report := ProcessSeries(context.Background(), renderer, landingURL, Options{OutputDir: outputDir})

	assert.Equal(t, server.URL+"/feed.xml", report.FeedURL)
	assert.Equal(t, "30 天學會 Go", report.Title)
	assert.Equal(t, 5, report.Listed)
	assert.Equal(t, 2, report.Saved)

	seriesDir := filepath.Join(outputDir, "30 天學會 Go")
	require.DirExists(t, seriesDir)

	// The tracking query was stripped before the page load and the saved
	// document carries the clean link.
	first, err := os.ReadFile(filepath.Join(seriesDir, "Day 1_ Hello.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(first),
		"# Day 1: Hello\n\n> 原文連結: https://ithelp.ithome.com.tw/articles/10001\n\n"))
	assert.Contains(t, string(first), "Hello world.")

	second, err := os.ReadFile(filepath.Join(seriesDir, "Day 2_ Images.md"))
	require.NoError(t, err)
	assert.Regexp(t, `!\[logo\]\(media/[0-9a-f-]{36}\.png\)`, string(second))
	assert.NotContains(t, string(second), server.URL)

	media, err := os.ReadDir(filepath.Join(seriesDir, "media"))
	require.NoError(t, err)
	assert.Len(t, media, 1)
	assert.Equal(t, 1, report.Images.DownloadSuccess)

	assert.NoFileExists(t, filepath.Join(seriesDir, "Day 3_ No Link.md"))
	assert.NoFileExists(t, filepath.Join(seriesDir, "Day 4_ Broken.md"))
	assert.NoFileExists(t, filepath.Join(seriesDir, "Day 5_ Empty.md"))
}

func TestProcessSeries_ResolveFailureSkips(t *testing.T) {
	renderer := &fakeRenderer{pages: map[string]*browser.Page{}}
	outputDir := t.TempDir()

	report := ProcessSeries(context.Background(), renderer,
		"https://ithelp.ithome.com.tw/users/20100000/ironman/42", Options{OutputDir: outputDir})

	assert.Equal(t, 0, report.Listed)
	assert.Equal(t, 0, report.Saved)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no series directory should be created")
}

func TestProcessSeries_FeedFetchFailureSkips(t *testing.T) {
	feedXML := "" // server will 404 the feed
	server := newSeriesServer(t, &feedXML)
	landingURL := "https://ithelp.ithome.com.tw/users/20100000/ironman/42"
	renderer := &fakeRenderer{pages: map[string]*browser.Page{
		landingURL: page(landingHTML(server.URL+"/feed.xml", "30 天學會 Go 系列")),
	}}
	outputDir := t.TempDir()

	report := ProcessSeries(context.Background(), renderer, landingURL, Options{OutputDir: outputDir})

	assert.Equal(t, 0, report.Listed)
	assert.Equal(t, 0, report.Saved)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessSeries_SentinelTitleReplacedByFeedTitle(t *testing.T) {
	feedXML := ""
	server := newSeriesServer(t, &feedXML)
	landingURL := "https://ithelp.ithome.com.tw/users/20100000/ironman/42"

	feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Go 大冒險 :: 2024 iThome 鐵人賽</title>
    <item>
      <title>Day 1</title>
      <link>https://ithelp.ithome.com.tw/articles/10001</link>
    </item>
  </channel>
</rss>`

	renderer := &fakeRenderer{pages: map[string]*browser.Page{
		// Landing page has a feed link but nothing usable as a title.
		landingURL: page(landingHTML(server.URL+"/feed.xml", "")),
		"https://ithelp.ithome.com.tw/articles/10001": page(articleHTML("<p>content</p>")),
	}}
	outputDir := t.TempDir()

	report := ProcessSeries(context.Background(), renderer, landingURL, Options{OutputDir: outputDir})

	assert.Equal(t, "Go 大冒險", report.Title)
	assert.Equal(t, 1, report.Saved)
	assert.DirExists(t, filepath.Join(outputDir, "Go 大冒險"))
}

func TestRun_AggregatesAcrossSeries(t *testing.T) {
	feedXML := ""
	server := newSeriesServer(t, &feedXML)
	goodLanding := "https://ithelp.ithome.com.tw/users/20100000/ironman/42"
	badLanding := "https://ithelp.ithome.com.tw/users/20100001/ironman/43"

	feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Feed</title>
    <item>
      <title>Day 1</title>
      <link>https://ithelp.ithome.com.tw/articles/10001</link>
    </item>
  </channel>
</rss>`

	renderer := &fakeRenderer{pages: map[string]*browser.Page{
		goodLanding: page(landingHTML(server.URL+"/feed.xml", "好系列 系列")),
		"https://ithelp.ithome.com.tw/articles/10001": page(articleHTML("<p>content</p>")),
	}}

	report := Run(context.Background(), renderer, Options{
		SeriesURLs: []string{goodLanding, badLanding},
		OutputDir:  t.TempDir(),
	})

	assert.Equal(t, 2, report.SeriesCount)
	assert.Equal(t, 1, report.TotalSaved)
	require.Len(t, report.Series, 2)
	assert.Equal(t, 1, report.Series[0].Saved)
	assert.Equal(t, 0, report.Series[1].Saved)
}

func TestRun_NoSeriesConfigured(t *testing.T) {
	renderer := &fakeRenderer{pages: map[string]*browser.Page{}}

	report := Run(context.Background(), renderer, Options{OutputDir: t.TempDir()})

	assert.Equal(t, 0, report.SeriesCount)
	assert.Equal(t, 0, report.TotalSaved)
	assert.Empty(t, report.Series)
}
