package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goliatone/go-view/pkg/render"
	"github.com/goliatone/go-view/pkg/render/template"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown converts src to HTML and sanitizes the result.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markup: convert markdown: %w", err)
	}
	return Sanitize(buf.String()), nil
}

// MarkdownHelper is the helper form of Markdown.
func MarkdownHelper(_ template.View, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: helper %q expects 1 argument, got %d", render.ErrInvalidArgument, HelperMarkdown, len(args))
	}
	html, err := Markdown(render.ToString(args[0]))
	if err != nil {
		return nil, err
	}
	return template.Markup(html), nil
}
