// Package render converts merchant-authored markdown into HTML and plain
// text for product and ad descriptions.
package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Raw HTML in descriptions stays escaped. Merchant input is untrusted.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown renders a markdown description to HTML.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Excerpt extracts the leading plain text of a markdown description,
// truncated to at most limit runes. Headings, emphasis markers and link
// targets are dropped.
func Excerpt(source string, limit int) string {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	plain := strings.Join(strings.Fields(sb.String()), " ")
	runes := []rune(plain)
	if limit > 0 && len(runes) > limit {
		return strings.TrimRight(string(runes[:limit]), " ") + "…"
	}
	return plain
}
