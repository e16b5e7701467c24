package capture

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pageshot/pageshot/browser"
	"github.com/pageshot/pageshot/models"
)

// metaNameAllowList is the fixed set of name-attribute meta tags recorded in
// the snapshot. Open-Graph property tags are collected separately and keyed
// by their literal property string.
var metaNameAllowList = []string{"description", "keywords", "author", "viewport"}

// extractContent reads the content model out of the settled page. Every read
// is best-effort: a failing element is skipped, a failing category left
// empty, and neither aborts the others.
func extractContent(p browser.Page, req *models.CaptureRequest) *models.PageSnapshot {
	snap := &models.PageSnapshot{URL: req.URL}

	if u := p.URL(); u != "" {
		snap.URL = u
	}
	snap.Title = p.Title()
	snap.Meta = extractMeta(p)
	snap.Images = extractImages(p)
	snap.Headings = extractHeadings(p)

	if text, err := p.BodyText(); err != nil {
		slog.Warn("extracting body text failed", "error", err)
	} else {
		snap.TextContent = text
	}
	if markup, err := p.HTML(); err != nil {
		slog.Warn("extracting page markup failed", "error", err)
	} else {
		snap.HTML = markup
	}
	snap.StatusCode = p.StatusCode()

	return snap
}

// extractMeta collects the allow-listed name-attribute tags plus every
// Open-Graph property tag. A tag with an empty value is not recorded.
func extractMeta(p browser.Page) map[string]string {
	meta := make(map[string]string)

	for _, name := range metaNameAllowList {
		els, err := p.Elements(fmt.Sprintf("meta[name=%q]", name))
		if err != nil || len(els) == 0 {
			continue
		}
		content, err := els[0].Attribute("content")
		if err != nil || content == "" {
			continue
		}
		meta[name] = content
	}

	ogEls, err := p.Elements(`meta[property^="og:"]`)
	if err != nil {
		return meta
	}
	for _, el := range ogEls {
		prop, err := el.Attribute("property")
		if err != nil || prop == "" {
			continue
		}
		content, err := el.Attribute("content")
		if err != nil || content == "" {
			continue
		}
		meta[prop] = content
	}

	return meta
}

// extractImages keeps only images with a non-empty src. Alt, width and
// height ride along as raw attribute strings, empty when absent.
func extractImages(p browser.Page) []models.ImageInfo {
	els, err := p.Elements("img")
	if err != nil {
		slog.Warn("querying images failed", "error", err)
		return nil
	}
	images := make([]models.ImageInfo, 0, len(els))
	for _, el := range els {
		src, err := el.Attribute("src")
		if err != nil || src == "" {
			continue
		}
		images = append(images, models.ImageInfo{
			Src:    src,
			Alt:    attrOrEmpty(el, "alt"),
			Width:  attrOrEmpty(el, "width"),
			Height: attrOrEmpty(el, "height"),
		})
	}
	return images
}

// extractHeadings maps h1..h6 to their trimmed, non-empty texts in document
// order. Levels with no usable text are left out entirely.
func extractHeadings(p browser.Page) map[string][]string {
	headings := make(map[string][]string)
	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		els, err := p.Elements(tag)
		if err != nil {
			continue
		}
		var texts []string
		for _, el := range els {
			text, err := el.Text()
			if err != nil {
				continue
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				texts = append(texts, trimmed)
			}
		}
		if len(texts) > 0 {
			headings[tag] = texts
		}
	}
	return headings
}

// attrOrEmpty reads an attribute, swallowing errors.
func attrOrEmpty(el browser.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil {
		return ""
	}
	return v
}
