// Package enrich derives optional snapshot fields (links, article, markdown,
// selector-narrowed text) from captured page markup. Everything here operates
// on the already-extracted HTML string; nothing talks to the browser.
package enrich

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pageshot/pageshot/models"
)

// Links parses the captured markup and separates anchors into internal and
// external based on whether their host matches the page URL's host.
func Links(rawHTML string, pageURL string) models.PageLinks {
	result := models.PageLinks{
		Internal: []models.Link{},
		External: []models.Link{},
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return result
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		// Resolve relative URLs against the page URL.
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}

		absURL := resolved.String()
		// Skip fragments, javascript:, mailto:, tel: etc.
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		// Deduplicate.
		if _, ok := seen[absURL]; ok {
			return
		}
		seen[absURL] = struct{}{}

		text := strings.TrimSpace(s.Text())
		link := models.Link{Href: absURL, Text: text}

		if strings.EqualFold(resolved.Host, base.Host) {
			result.Internal = append(result.Internal, link)
		} else {
			result.External = append(result.External, link)
		}
	})

	return result
}
