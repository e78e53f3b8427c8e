package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var badgeColours = map[string]lipgloss.Color{
	"active":    "2",
	"approved":  "2",
	"paid":      "2",
	"completed": "2",
	"success":   "2",
	"read":      "2",
	"running":   "2",

	"pending":        "3",
	"processing":     "3",
	"partially_paid": "3",
	"unread":         "3",
	"trial":          "3",

	"overdue":   "1",
	"rejected":  "1",
	"declined":  "1",
	"failed":    "1",
	"suspended": "1",
	"expired":   "1",
	"cancelled": "1",
}

// Badge renders a status as an upper-case coloured label.
func (p *Printer) Badge(status string) string {
	key := strings.ToLower(strings.TrimSpace(status))
	text := strings.ToUpper(strings.ReplaceAll(key, "_", " "))
	if text == "" {
		text = "-"
	}
	style := p.r.NewStyle().Bold(true)
	if c, ok := badgeColours[key]; ok {
		style = style.Foreground(c)
	} else {
		style = style.Faint(true)
	}
	return style.Render(text)
}

// Swatch renders a colour sample next to its hex code.
func (p *Printer) Swatch(hex string) string {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return "-"
	}
	return p.r.NewStyle().Foreground(lipgloss.Color(hex)).Render("██") + " " + hex
}
