package web

import (
	"bytes"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Schema descriptions come from the operator's schema file, not from form
// users, but still pass through the sanitizer. Raw HTML in the source is
// dropped, single newlines are kept as line breaks, and links to other sites
// open in a new tab so the half-filled form stays put.
var (
	descriptionMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	descriptionPolicy = bluemonday.UGCPolicy().AddTargetBlankToFullyQualifiedLinks(true)
)

// RenderDescription converts a schema description written in markdown to
// sanitized HTML. A blank description renders as "".
func RenderDescription(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := descriptionMarkdown.Convert([]byte(src), &buf); err != nil {
		return "<p>" + templ.EscapeString(src) + "</p>"
	}
	return descriptionPolicy.Sanitize(buf.String())
}
