package htmlproc

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options configure one post-processing pass over a rendered fragment.
type Options struct {
	// CanonicalRootURL, when set, is the base that relative hrefs and srcs
	// are resolved against. Directory roots should end with a slash.
	CanonicalRootURL string
	// SearchTerm, when set, is wrapped in <mark> wherever it appears in
	// prose text, case-insensitively.
	SearchTerm string
}

// Heading is one document heading found while processing, in document order.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// skipHighlight lists elements whose text is never search-highlighted.
var skipHighlight = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Pre:      true,
	atom.Code:     true,
	atom.Textarea: true,
	atom.Mark:     true,
	atom.Title:    true,
}

// Process parses an HTML fragment and applies, in one walk: slug IDs on
// headings (author-set IDs win, duplicates get -2, -3, ... suffixes),
// relative URL resolution against the canonical root, and search-term
// highlighting. It returns the reserialized fragment and the headings found.
func Process(fragment []byte, opts Options) ([]byte, []Heading, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse html fragment: %w", err)
	}

	var base *url.URL
	if opts.CanonicalRootURL != "" {
		base, err = url.Parse(opts.CanonicalRootURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse canonical root url: %w", err)
		}
	}

	p := &processor{
		base: base,
		term: opts.SearchTerm,
		seen: make(map[string]int),
	}
	for _, n := range nodes {
		p.walk(n)
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return nil, nil, fmt.Errorf("failed to render html fragment: %w", err)
		}
	}

	return []byte(b.String()), p.headings, nil
}

type processor struct {
	base     *url.URL
	term     string
	seen     map[string]int
	headings []Heading
}

func (p *processor) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			p.anchorHeading(n)
		case atom.A:
			p.rewriteAttr(n, "href")
		case atom.Img, atom.Script, atom.Source:
			p.rewriteAttr(n, "src")
		}
	}

	// Children are walked off a snapshot of the sibling chain because
	// highlighting splices new nodes in.
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode && p.term != "" && !skipHighlight[n.DataAtom] {
			p.highlight(n, c)
		} else {
			p.walk(c)
		}
		c = next
	}
}

// anchorHeading gives a heading a stable id derived from its text and
// records it. An id the author already set is kept as-is.
func (p *processor) anchorHeading(n *html.Node) {
	level := int(n.Data[1] - '0')
	text := collectText(n)

	id := attrValue(n, "id")
	if id == "" {
		id = p.uniqueSlug(text)
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}

	p.headings = append(p.headings, Heading{Level: level, ID: id, Text: text})
}

func (p *processor) uniqueSlug(text string) string {
	s := slug.Make(text)
	if s == "" {
		s = "section"
	}
	p.seen[s]++
	if count := p.seen[s]; count > 1 {
		return fmt.Sprintf("%s-%d", s, count)
	}
	return s
}

// rewriteAttr resolves a relative URL attribute against the canonical root.
// Absolute URLs and fragment-only links stay untouched.
func (p *processor) rewriteAttr(n *html.Node, key string) {
	if p.base == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Key != key || a.Val == "" || strings.HasPrefix(a.Val, "#") {
			continue
		}
		ref, err := url.Parse(a.Val)
		if err != nil || ref.IsAbs() {
			continue
		}
		n.Attr[i].Val = p.base.ResolveReference(ref).String()
	}
}

// highlight replaces one text node with text and <mark> nodes around each
// case-insensitive occurrence of the search term.
func (p *processor) highlight(parent, textNode *html.Node) {
	text := textNode.Data
	lower := strings.ToLower(text)
	term := strings.ToLower(p.term)
	// Case folding that changes byte lengths would skew offsets; skip
	// highlighting such nodes.
	if term == "" || len(lower) != len(text) || !strings.Contains(lower, term) {
		return
	}

	var nodes []*html.Node
	for rest, restLower := text, lower; ; {
		i := strings.Index(restLower, term)
		if i < 0 {
			if rest != "" {
				nodes = append(nodes, &html.Node{Type: html.TextNode, Data: rest})
			}
			break
		}
		if i > 0 {
			nodes = append(nodes, &html.Node{Type: html.TextNode, Data: rest[:i]})
		}
		mark := &html.Node{Type: html.ElementNode, Data: "mark", DataAtom: atom.Mark}
		mark.AppendChild(&html.Node{Type: html.TextNode, Data: rest[i : i+len(term)]})
		nodes = append(nodes, mark)
		rest, restLower = rest[i+len(term):], restLower[i+len(term):]
	}

	for _, n := range nodes {
		parent.InsertBefore(n, textNode)
	}
	parent.RemoveChild(textNode)
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collectText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.TrimSpace(b.String())
}
