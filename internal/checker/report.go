package checker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"markwright/internal/languagetool"
)

// Presenter renders a report for a terminal. Styles are bound to the output
// writer, so colors drop out automatically when output is piped.
type Presenter struct {
	w         io.Writer
	header    lipgloss.Style
	highlight lipgloss.Style
	sentence  lipgloss.Style
	message   lipgloss.Style
	value     lipgloss.Style
}

// NewPresenter creates a presenter writing to w.
func NewPresenter(w io.Writer) *Presenter {
	r := lipgloss.NewRenderer(w)
	return &Presenter{
		w:         w,
		header:    r.NewStyle().Foreground(lipgloss.Color("14")), // bright cyan
		highlight: r.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
		sentence:  r.NewStyle().Foreground(lipgloss.Color("7")),  // white
		message:   r.NewStyle().Foreground(lipgloss.Color("12")),
		value:     r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Render writes the report's findings for path in document order: rule
// description, context with the flagged span highlighted, the enclosing
// sentence, the message, and any replacement suggestions. Write errors are
// returned to the caller.
func (p *Presenter) Render(path string, report *Report) error {
	if len(report.Matches) == 0 {
		_, err := fmt.Fprintf(p.w, "No problems found in %s.\n", path)
		return err
	}

	var b strings.Builder

	noun := "problems"
	if len(report.Matches) == 1 {
		noun = "problem"
	}
	fmt.Fprintf(&b, "%d %s found in %s:\n", len(report.Matches), noun, path)

	for _, m := range report.Matches {
		p.renderMatch(&b, m)
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Presenter) renderMatch(b *strings.Builder, m languagetool.Match) {
	header := m.RuleDescription
	if m.ShortMessage != "" {
		header = fmt.Sprintf("%s (%s)", header, p.header.Render(m.ShortMessage))
	}

	fmt.Fprintf(b, "\n  * %s:\n", header)
	fmt.Fprintf(b, "    %s\n", p.highlightContext(m))
	if m.Sentence != "" {
		fmt.Fprintf(b, "    %s\n", p.sentence.Render(m.Sentence))
	}
	fmt.Fprintf(b, "    %s\n", p.message.Render(m.Message))

	if len(m.Replacements) > 0 {
		b.WriteString("    replacements:\n")
		for _, r := range m.Replacements {
			fmt.Fprintf(b, "        - %s\n", p.value.Render(r))
		}
	}
}

// highlightContext recolors the flagged span inside the context window. A
// match whose offsets fall outside the window renders unhighlighted.
func (p *Presenter) highlightContext(m languagetool.Match) string {
	span := m.Span()
	if span == "" {
		return m.ContextText
	}
	start := m.ContextOffset
	end := m.ContextOffset + m.ContextLength
	return m.ContextText[:start] + p.highlight.Render(span) + m.ContextText[end:]
}
