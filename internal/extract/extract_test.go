package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstInnerHTML_PrimarySelector(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="markdown-body"><p>Primary content.</p></div>
			<div class="article-content"><p>Fallback content.</p></div>
		</body>
	</html>`

	inner := FirstInnerHTML(html, []string{"div.markdown-body", "div.article-content"})
	assert.Contains(t, inner, "<p>Primary content.</p>")
	assert.NotContains(t, inner, "Fallback content")
}

func TestFirstInnerHTML_FallsThroughMissingSelector(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="article-content"><p>Fallback content.</p></div>
		</body>
	</html>`

	inner := FirstInnerHTML(html, []string{"div.markdown-body", "div.article-content"})
	assert.Contains(t, inner, "Fallback content")
}

func TestFirstInnerHTML_EmptyMatchFallsThrough(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="markdown-body">   </div>
			<div class="article-content"><p>Real content.</p></div>
		</body>
	</html>`

	inner := FirstInnerHTML(html, []string{"div.markdown-body", "div.article-content"})
	assert.Contains(t, inner, "Real content")
}

func TestFirstInnerHTML_NoMatch(t *testing.T) {
	html := `<html><body><p>Plain page.</p></body></html>`

	inner := FirstInnerHTML(html, []string{"div.markdown-body", "div.qa-markdown"})
	assert.Empty(t, inner)
}

func TestFirstInnerHTML_FirstOfMultipleMatches(t *testing.T) {
	html := `
	<html>
		<body>
			<article class="article-content"><p>First article.</p></article>
			<article class="article-content"><p>Second article.</p></article>
		</body>
	</html>`

	inner := FirstInnerHTML(html, []string{"article.article-content"})
	assert.Contains(t, inner, "First article")
	assert.NotContains(t, inner, "Second article")
}

func TestFirstText_OrderedFallback(t *testing.T) {
	html := `
	<html>
		<body>
			<h2 class="ir-profile-content__title">  Series Title 系列  </h2>
			<h1>Site Banner</h1>
		</body>
	</html>`

	text := FirstText(html, []string{"h3.qa-list__title", "h2.ir-profile-content__title", "h1"})
	assert.Equal(t, "Series Title 系列", text)
}

func TestFirstText_SkipsEmptyElements(t *testing.T) {
	html := `
	<html>
		<body>
			<h3 class="qa-list__title">   </h3>
			<h1>Real Title</h1>
		</body>
	</html>`

	text := FirstText(html, []string{"h3.qa-list__title", "h1"})
	assert.Equal(t, "Real Title", text)
}

func TestFirstText_NoMatch(t *testing.T) {
	text := FirstText("<html><body></body></html>", []string{"h1", "h2"})
	assert.Empty(t, text)
}

func TestFirstAttr_Href(t *testing.T) {
	html := `
	<html>
		<body>
			<a class="btn-rss btn-no-border" href="/rss/series/1234">RSS</a>
			<a href="/other">Other</a>
		</body>
	</html>`

	href := FirstAttr(html, []string{"a.btn-rss.btn-no-border"}, "href")
	assert.Equal(t, "/rss/series/1234", href)
}

func TestFirstAttr_AttributePatternFallback(t *testing.T) {
	html := `
	<html>
		<body>
			<a href="/rss/series/5678">Feed</a>
		</body>
	</html>`

	selectors := []string{"a.btn-rss.btn-no-border", `a[href*="/rss/series/"]`}
	href := FirstAttr(html, selectors, "href")
	assert.Equal(t, "/rss/series/5678", href)
}

func TestFirstAttr_AutodiscoveryLink(t *testing.T) {
	html := `
	<html>
		<head>
			<link rel="alternate" type="application/rss+xml" href="https://example.com/feed.xml">
		</head>
		<body></body>
	</html>`

	href := FirstAttr(html, []string{`link[type="application/rss+xml"]`}, "href")
	assert.Equal(t, "https://example.com/feed.xml", href)
}

func TestFirstAttr_MissingAttributeFallsThrough(t *testing.T) {
	html := `
	<html>
		<body>
			<a class="btn-rss btn-no-border">No href here</a>
			<a href="/rss/series/42">Feed</a>
		</body>
	</html>`

	selectors := []string{"a.btn-rss.btn-no-border", `a[href*="/rss/series/"]`}
	href := FirstAttr(html, selectors, "href")
	assert.Equal(t, "/rss/series/42", href)
}

func TestFirstAttr_NoMatch(t *testing.T) {
	href := FirstAttr("<html><body></body></html>", []string{"a.btn-rss"}, "href")
	assert.Empty(t, href)
}
