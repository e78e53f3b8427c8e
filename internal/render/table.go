package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"coopdesk/internal/domain"
)

// Table prints rows under headers. An empty result prints emptyText.
func (p *Printer) Table(headers []string, rows [][]string, emptyText string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.w, p.r.NewStyle().Faint(true).Render(emptyText))
		return
	}
	header := p.r.NewStyle().Bold(true).Padding(0, 1)
	cell := p.r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.r.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(p.w, t.Render())
}

// Pages prints the pagination footer when there is one.
func (p *Printer) Pages(pg *domain.Pagination) {
	if pg == nil || pg.LastPage <= 1 {
		return
	}
	msg := fmt.Sprintf("page %d of %d (%d total)", pg.CurrentPage, pg.LastPage, pg.Total)
	if pg.HasNext() {
		msg += fmt.Sprintf("; next: --page %d", pg.CurrentPage+1)
	}
	fmt.Fprintln(p.w, p.r.NewStyle().Faint(true).Render(msg))
}
