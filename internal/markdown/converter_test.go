package markdown

import (
	"strings"
	"testing"
)

func TestConverter_ToPlaintext(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty document",
			src:  "",
			want: "",
		},
		{
			name: "heading and paragraphs get blank-line breaks",
			src:  "# Title\n\nFirst paragraph here.\n\nSecond paragraph.",
			want: "Title\n\nFirst paragraph here.\n\nSecond paragraph.",
		},
		{
			name: "soft-wrapped lines keep their sentence together",
			src:  "line one\nline two",
			want: "line one line two",
		},
		{
			name: "hard break becomes a newline",
			src:  "one\\\ntwo",
			want: "one\ntwo",
		},
		{
			name: "code blocks are omitted",
			src:  "Before.\n\n```\nfunc main() {}\n```\n\nAfter.",
			want: "Before.\n\nAfter.",
		},
		{
			name: "inline code stays in the sentence",
			src:  "Use `go build` daily.",
			want: "Use go build daily.",
		},
		{
			name: "list items become lines",
			src:  "- alpha\n- beta\n\ntail",
			want: "alpha\nbeta\n\ntail",
		},
		{
			name: "link labels and emphasis keep their text",
			src:  "Read [the docs](https://example.com) *now*.",
			want: "Read the docs now.",
		},
		{
			name: "tables are omitted",
			src:  "Intro.\n\n| a | b |\n|---|---|\n| c | d |\n\nOutro.",
			want: "Intro.\n\nOutro.",
		},
		{
			name: "raw html is omitted",
			src:  "Before.\n\n<div class=\"x\">markup</div>\n\nAfter.",
			want: "Before.\n\nAfter.",
		},
		{
			name: "consecutive headings",
			src:  "## A\n## B",
			want: "A\n\nB",
		},
		{
			name: "blockquote text flows as prose",
			src:  "> quoted text\n\nplain",
			want: "quoted text\n\nplain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ToPlaintext([]byte(tt.src))
			if got != tt.want {
				t.Errorf("ToPlaintext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConverter_ToHTML(t *testing.T) {
	c := NewConverter()

	out, err := c.ToHTML([]byte("# Hi\n\n**bold** and ~~gone~~\n\n<div>raw</div>"))
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	html := string(out)
	for _, want := range []string{"<h1>Hi</h1>", "<strong>bold</strong>", "<del>gone</del>", "<div>raw</div>"} {
		if !strings.Contains(html, want) {
			t.Errorf("ToHTML() output missing %q:\n%s", want, html)
		}
	}
}

func TestConverter_ToHTML_Table(t *testing.T) {
	c := NewConverter()

	out, err := c.ToHTML([]byte("| a | b |\n|---|---|\n| c | d |"))
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("ToHTML() did not render a table:\n%s", out)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name  string
		plain string
		want  int
	}{
		{name: "empty", plain: "", want: 0},
		{name: "simple prose", plain: "three short words", want: 3},
		{name: "newlines separate words", plain: "one\ntwo\n\nthree", want: 3},
		{name: "extra whitespace collapses", plain: "  a   b  ", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.plain); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.plain, got, tt.want)
			}
		})
	}
}
