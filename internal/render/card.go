package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled value on a card.
type Field struct {
	Label string
	Value string
}

// F is shorthand for a Field.
func F(label, value string) Field { return Field{Label: label, Value: value} }

// Card prints a bordered summary card.
func (p *Printer) Card(title string, fields ...Field) {
	fmt.Fprintln(p.w, p.CardString(title, fields...))
}

// Cards prints several cards side by side.
func (p *Printer) Cards(cards ...string) {
	fmt.Fprintln(p.w, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

// CardString renders a card without printing it.
func (p *Printer) CardString(title string, fields ...Field) string {
	width := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.Label); w > width {
			width = w
		}
	}
	label := p.r.NewStyle().Faint(true).Width(width + 1)

	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, p.r.NewStyle().Bold(true).Render(title))
	for _, f := range fields {
		lines = append(lines, label.Render(f.Label)+" "+f.Value)
	}
	box := p.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		MarginRight(1)
	return box.Render(strings.Join(lines, "\n"))
}
