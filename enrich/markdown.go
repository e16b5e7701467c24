package enrich

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// markdownConverter is created once and reused across snapshots; the
// converter is goroutine-safe.
var markdownConverter = newMarkdownConverter()

// newMarkdownConverter configures the html-to-markdown v2 pipeline:
//
//   - base plugin: strips script, style, iframe, noscript, head and HTML
//     comments, none of which belong in a content rendition.
//   - commonmark plugin: standard Markdown rendering (headings, lists,
//     links, code blocks, emphasis, blockquotes).
//   - table plugin: keeps table structure with minimal cell padding.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
}

// Markdown converts the captured markup to Markdown. The page URL resolves
// relative links and image sources into absolute ones, so the output is
// self-contained.
func Markdown(rawHTML string, pageURL string) (string, error) {
	return markdownConverter.ConvertString(rawHTML, converter.WithDomain(pageURL))
}
