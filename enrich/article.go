package enrich

import (
	"fmt"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/pageshot/pageshot/models"
)

// minArticleLength is the minimum extracted text length (in characters) for
// readability output to count as a real article. Below it we assume the
// algorithm failed to locate the main content.
const minArticleLength = 50

// Article runs the Mozilla Readability algorithm on the captured markup and
// returns the main-article fields. It errors rather than guessing when the
// page has no recognizable article, so the snapshot simply omits the field.
func Article(rawHTML string, pageURL string) (*models.ArticleInfo, error) {
	parsedURL, err := nurl.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < minArticleLength {
		return nil, fmt.Errorf("extracted article too short (%d chars)", len(text))
	}

	return &models.ArticleInfo{
		Title:       article.Title,
		Byline:      article.Byline,
		Excerpt:     article.Excerpt,
		SiteName:    article.SiteName,
		TextContent: text,
	}, nil
}
