// Package site provides publisher detection and publisher-specific selectors.
package site

import (
	"net/url"
	"regexp"
	"strings"
)

// Publisher represents a known content publisher.
type Publisher string

const (
	// PublisherITHelp is the iThome ironman contest site
	PublisherITHelp Publisher = "ithelp"
	// PublisherGeneric is an unrecognized publisher
	PublisherGeneric Publisher = "generic"
)

// ithelpOrigin is the site root used to absolutize feed links and as the
// Referer for asset downloads.
const ithelpOrigin = "https://ithelp.ithome.com.tw"

var (
	// ithelpSeriesSuffix matches the decorative tail on series landing titles.
	ithelpSeriesSuffix = regexp.MustCompile(`\s*系列\s*$`)
	// ithelpFeedSuffix matches the contest suffix appended to feed channel titles.
	ithelpFeedSuffix = regexp.MustCompile(`\s*::\s*\d+\s*iThome\s*鐵人賽.*$`)
)

// Detect identifies the publisher from a series landing page URL.
func Detect(urlStr string) Publisher {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PublisherGeneric
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "ithelp.ithome.com.tw") {
		return PublisherITHelp
	}

	return PublisherGeneric
}

// Referer returns the Referer header to send when downloading a publisher's assets.
func Referer(p Publisher) string {
	switch p {
	case PublisherITHelp:
		return ithelpOrigin + "/"
	default:
		return ""
	}
}

// FeedLinkSelectors returns the ordered selectors used to locate a series feed
// link on a landing page. The final entry is the standard autodiscovery tag.
func FeedLinkSelectors(p Publisher) []string {
	switch p {
	case PublisherITHelp:
		return []string{
			"a.btn-rss.btn-no-border", // Primary feed button
			`a[href*="/rss/series/"]`, // Fallback by href pattern
			`link[type="application/rss+xml"]`,
		}
	default:
		return []string{
			`link[type="application/rss+xml"]`,
			`link[type="application/atom+xml"]`,
			`a[href$="/rss"]`,
			`a[href$="/feed"]`,
		}
	}
}

// TitleSelectors returns the ordered selectors used to locate the series title
// on a landing page.
func TitleSelectors(p Publisher) []string {
	switch p {
	case PublisherITHelp:
		return []string{
			"h3.qa-list__title",
			"h2.ir-profile-content__title",
			".profile-header__name",
			"h1",
		}
	default:
		return []string{
			"h1",
			"title",
		}
	}
}

// ContentSelectors returns the ordered selectors for the primary content
// region of a publisher's article pages.
func ContentSelectors(p Publisher) []string {
	switch p {
	case PublisherITHelp:
		return []string{
			"div.markdown-body",
			"div.qa-markdown",
			"article.article-content",
			"div.article-content",
		}
	default:
		return []string{
			"article",
			"main",
			".post-content",
			".entry-content",
			".content",
		}
	}
}

// TrimSeriesTitle strips the publisher's decorative suffix from a landing page title.
func TrimSeriesTitle(p Publisher, title string) string {
	switch p {
	case PublisherITHelp:
		return ithelpSeriesSuffix.ReplaceAllString(title, "")
	default:
		return title
	}
}

// TrimFeedTitle strips the publisher's contest suffix from a feed channel title.
func TrimFeedTitle(p Publisher, title string) string {
	switch p {
	case PublisherITHelp:
		return strings.TrimSpace(ithelpFeedSuffix.ReplaceAllString(title, ""))
	default:
		return strings.TrimSpace(title)
	}
}
