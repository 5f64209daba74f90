package service

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

// RenderExcerptHTML renders a post excerpt from markdown to HTML for
// list/detail responses. Raw HTML embedded in the markdown is dropped,
// excerpts are plain prose. The content tree itself is never rendered
// at this layer.
func RenderExcerptHTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	htmlFlags := html.CommonFlags | html.HrefTargetBlank | html.SkipHTML
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return strings.TrimSpace(string(markdown.ToHTML([]byte(md), nil, renderer)))
}
