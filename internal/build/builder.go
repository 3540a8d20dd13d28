package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"markwright/internal/contextutil"
	"markwright/internal/htmlproc"
	"markwright/internal/markdown"
)

// Options configures rendering behavior shared by every build of a document.
type Options struct {
	CanonicalURL string
	SearchTerm   string
	LiveReload   bool
}

// Result summarizes one completed build.
type Result struct {
	OutputPath string
	Words      int
	Headings   []htmlproc.Heading
	// Plaintext is the prose extracted from the source, ready for the
	// grammar check pipeline.
	Plaintext string
}

// Builder renders a markdown source file into a standalone HTML page.
// A Builder is reused across rebuilds in watch mode.
type Builder struct {
	conv *markdown.Converter
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		conv: markdown.NewConverter(),
		opts: opts,
	}
}

// DefaultOutputPath derives the output file for input by replacing its
// extension with .html.
func DefaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
}

// Build renders inputPath into outputPath and reports document stats.
func (b *Builder) Build(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	meta, body, err := markdown.Split(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	htmlBody, err := b.conv.ToHTML(body)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	processed, headings, err := htmlproc.Process(htmlBody, htmlproc.Options{
		CanonicalRootURL: b.opts.CanonicalURL,
		SearchTerm:       b.opts.SearchTerm,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post-process HTML: %w", err)
	}

	if meta.Title == "" {
		meta.Title = fallbackTitle(headings, inputPath)
	}

	page, err := markdown.RenderPage(meta, processed, b.opts.CanonicalURL, b.opts.LiveReload)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, page, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	plain := b.conv.ToPlaintext(body)
	words := markdown.CountWords(plain)

	logger.InfoContext(ctx, "document built",
		"input", inputPath,
		"output", outputPath,
		"words", words,
		"headings", len(headings))

	return &Result{
		OutputPath: outputPath,
		Words:      words,
		Headings:   headings,
		Plaintext:  plain,
	}, nil
}

// fallbackTitle picks a page title when the front matter has none: the first
// heading if present, otherwise the file name.
func fallbackTitle(headings []htmlproc.Heading, inputPath string) string {
	if len(headings) > 0 {
		return headings[0].Text
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
