package markdown

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// PageMeta is the YAML frontmatter of a document.
type PageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Split separates a leading frontmatter block from the body. A document
// whose first line is exactly "---" has everything up to the next "---" line
// parsed as YAML. Missing or unterminated frontmatter leaves the whole
// source as body; malformed YAML is an error.
func Split(src []byte) (PageMeta, []byte, error) {
	var meta PageMeta

	first, rest, found := bytes.Cut(src, []byte("\n"))
	if !found || string(bytes.TrimRight(first, "\r")) != "---" {
		return meta, src, nil
	}

	// The prepended newline lets an empty block close on the line right
	// after the opener.
	block, body, found := bytes.Cut(append([]byte("\n"), rest...), []byte("\n---"))
	if !found {
		return meta, src, nil
	}

	if err := yaml.Unmarshal(block, &meta); err != nil {
		return meta, nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body = bytes.TrimPrefix(body, []byte("\n"))
	return meta, body, nil
}
