// Package extract provides ordered CSS selector queries over fetched HTML.
// Selectors are tried in order and the first non-empty match wins; selector
// errors and empty matches fall through to the next candidate.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstInnerHTML returns the inner markup of the first element matched by the
// selector list. It returns an empty string when nothing matches or every
// match is empty.
func FirstInnerHTML(html string, selectors []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		inner, err := selection.First().Html()
		if err != nil || strings.TrimSpace(inner) == "" {
			continue
		}
		return inner
	}

	return ""
}

// FirstText returns the trimmed text of the first element matched by the
// selector list, or an empty string when nothing matches.
func FirstText(html string, selectors []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(selection.First().Text())
		if text == "" {
			continue
		}
		return text
	}

	return ""
}

// FirstAttr returns the named attribute of the first element matched by the
// selector list, or an empty string when no match carries a non-empty value.
func FirstAttr(html string, selectors []string, attr string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, selector := range selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		value, exists := selection.First().Attr(attr)
		value = strings.TrimSpace(value)
		if !exists || value == "" {
			continue
		}
		return value
	}

	return ""
}
