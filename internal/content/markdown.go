package content

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderHTML converts merchandiser-authored markdown, such as product
// descriptions and section blurbs, to HTML for the preview surface.
// Empty or whitespace-only input renders to an empty string.
func RenderHTML(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	// Parser instances are single-use, so build one per document.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(source))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	})

	return strings.TrimSpace(string(markdown.Render(doc, renderer)))
}
