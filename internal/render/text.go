package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// PlainText renders the panel and table without colors, for non-terminal
// output. Link cells show their href when it differs from the label.
func PlainText(p *Panel, t *Table) string {
	var b strings.Builder
	for _, id := range p.Slots() {
		b.WriteString(p.Label(id))
		b.WriteString(": ")
		b.WriteString(p.Text(id))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := make([][]string, 0, t.BodyLen()-1)
	for _, r := range t.Rows() {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.Text
			if c.Link && c.Href != c.Text {
				cells[i] = c.Href
			}
		}
		rows = append(rows, cells)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header().Texts()...).
		Rows(rows...)
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}
