// Package richtext converts the opaque rich-text fragments delivered by the
// content repository into sanitized HTML. Fragments carry Markdown source;
// goldmark renders it and a bluemonday UGC policy strips anything unsafe, so
// page templates can embed the result without further escaping.
package richtext

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/eringen/waypost/content"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	policy = bluemonday.UGCPolicy()
)

// Convert renders a fragment sequence as a templ component. Fragments are
// emitted in slice order.
func Convert(fragments []content.Fragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, f := range fragments {
			out, err := Render(f)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, out); err != nil {
				return err
			}
		}
		return nil
	})
}

// Render converts a single fragment to sanitized HTML.
func Render(f content.Fragment) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(f.Text), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// PlainText extracts the readable text of a fragment by walking the Markdown
// AST, so markup characters do not inflate word counts.
func PlainText(f content.Fragment) string {
	source := []byte(f.Text)
	root := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *gmast.CodeBlock:
			writeLines(&b, source, node)
		case *gmast.FencedCodeBlock:
			writeLines(&b, source, node)
		case *gmast.CodeSpan, *gmast.Paragraph, *gmast.Heading, *gmast.ListItem:
			b.WriteByte('\n')
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

func writeLines(b *strings.Builder, source []byte, n gmast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
}
