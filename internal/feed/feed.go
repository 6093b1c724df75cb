// Package feed parses syndication feed documents into article lists.
package feed

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// untitled is the placeholder for items that carry no title.
const untitled = "Untitled"

// Article is a single feed item reduced to what the harvester needs.
type Article struct {
	Title string
	Link  string
	// Content carries the feed's embedded full-content payload,
	// content:encoded when present and the item description otherwise. Only
	// the offline converter uses it; the crawl pipeline fetches article
	// pages instead.
	Content string
}

// Feed is a parsed syndication feed.
type Feed struct {
	Title    string
	Articles []Article
}

// ParseError represents a failure to parse a feed document.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("feed parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("feed parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Parse parses an RSS or Atom document. Item titles default to a placeholder
// when missing; item links are truncated at the first query separator to drop
// feed tracking parameters.
func Parse(document string) (*Feed, error) {
	parser := gofeed.NewParser()
	parsed, err := parser.ParseString(document)
	if err != nil {
		return nil, &ParseError{
			Message: "failed to parse feed document",
			Cause:   err,
		}
	}

	feed := &Feed{
		Title:    strings.TrimSpace(parsed.Title),
		Articles: make([]Article, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = untitled
		}

		link := strings.TrimSpace(item.Link)
		if idx := strings.Index(link, "?"); idx >= 0 {
			link = link[:idx]
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		feed.Articles = append(feed.Articles, Article{
			Title:   title,
			Link:    link,
			Content: content,
		})
	}

	return feed, nil
}
