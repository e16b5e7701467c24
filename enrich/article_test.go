package enrich

import (
	"strings"
	"testing"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Understanding Contexts</title></head>
<body>
<nav><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article>
<h1>Understanding Contexts</h1>
<p>Contexts carry deadlines, cancellation signals, and request-scoped values
across API boundaries. Every blocking operation in a well-behaved service
accepts one, and every server honors it during shutdown. Passing a context
explicitly keeps the call graph honest about what can be interrupted.</p>
<p>The second rule is never to store a context inside a struct. Contexts are
scoped to a single call chain, and stashing one defeats the deadline model
the whole mechanism is built on.</p>
</article>
<footer>All rights reserved.</footer>
</body>
</html>`

func TestArticle_ExtractsMainContent(t *testing.T) {
	article, err := Article(articlePage, "https://blog.example.com/contexts")
	if err != nil {
		t.Fatalf("Article: %v", err)
	}

	if article.Title == "" {
		t.Error("expected a title")
	}
	if !strings.Contains(article.TextContent, "Contexts carry deadlines") {
		t.Errorf("main content missing: %q", article.TextContent)
	}
	if strings.Contains(article.TextContent, "All rights reserved") {
		t.Errorf("footer chrome leaked into the article: %q", article.TextContent)
	}
}

func TestArticle_TooShortFails(t *testing.T) {
	page := `<html><body><p>hi</p></body></html>`

	if _, err := Article(page, "https://example.com"); err == nil {
		t.Fatal("expected an error for a page with no real article")
	}
}

func TestArticle_BadURLFails(t *testing.T) {
	if _, err := Article(articlePage, "://no-scheme"); err == nil {
		t.Fatal("expected an error for an unparseable page URL")
	}
}
