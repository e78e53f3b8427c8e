package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Printer renders results to w.
type Printer struct {
	w        io.Writer
	r        *lipgloss.Renderer
	currency string
	json     bool
}

// New returns a Printer for w. Unknown formats fall back to table output.
func New(w io.Writer, currency, format string) *Printer {
	return &Printer{
		w:        w,
		r:        lipgloss.NewRenderer(w),
		currency: strings.ToUpper(strings.TrimSpace(currency)),
		json:     strings.EqualFold(format, FormatJSON),
	}
}

// JSONMode reports whether raw JSON output was requested.
func (p *Printer) JSONMode() bool { return p.json }

// Emit prints v as indented JSON in JSON mode, otherwise calls text.
func (p *Printer) Emit(v any, text func() error) error {
	if p.json {
		return p.JSON(v)
	}
	return text()
}

// JSON prints v as indented JSON.
func (p *Printer) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success prints a confirmation line, the terminal counterpart of a toast.
func (p *Printer) Success(format string, args ...any) {
	style := p.r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	fmt.Fprintln(p.w, style.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	style := p.r.NewStyle().Foreground(lipgloss.Color("3"))
	fmt.Fprintln(p.w, style.Render("! "+fmt.Sprintf(format, args...)))
}
