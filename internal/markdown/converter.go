package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Converter renders markdown two ways: an HTML fragment for publishing and a
// plaintext projection for grammar checking.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a converter with GFM extensions and raw HTML
// passthrough.
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ToHTML renders markdown to an HTML fragment.
func (c *Converter) ToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPlaintext projects markdown onto prose-only text. Block boundaries
// become blank lines so downstream segmentation can cut at paragraph breaks.
// Fenced and indented code blocks, raw HTML, and tables are omitted; inline
// code stays, since it reads as part of its sentence.
func (c *Converter) ToPlaintext(src []byte) string {
	doc := c.md.Parser().Parse(text.NewReader(src))

	var w plainWriter
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.Blockquote, *ast.ThematicBreak, *ast.List:
			w.breakParagraph()

		case *ast.ListItem:
			w.breakLine()

		case *ast.Text:
			w.b.Write(node.Segment.Value(src))
			if node.HardLineBreak() {
				w.breakLine()
			} else if node.SoftLineBreak() {
				// A wrapped line continues the same sentence.
				w.b.WriteByte(' ')
			}

		case *ast.String:
			w.b.Write(node.Value)

		case *ast.AutoLink:
			w.b.Write(node.Label(src))

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil

		case *extast.Table:
			// Table cells are layout, not prose.
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(w.b.String())
}

// plainWriter accumulates plaintext while collapsing block separators.
type plainWriter struct {
	b strings.Builder
}

func (w *plainWriter) breakParagraph() {
	s := w.b.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		w.b.WriteString("\n")
		return
	}
	w.b.WriteString("\n\n")
}

func (w *plainWriter) breakLine() {
	s := w.b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	w.b.WriteString("\n")
}
