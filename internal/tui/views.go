package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/render"
	"github.com/mmcdole/queuewatch/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	sections := []string{
		m.renderTitle(),
		m.renderPanel(),
		m.renderTable(),
		m.renderDetail(),
	}
	if m.Filtering || m.Filter.Value() != "" {
		sections = append(sections, m.Filter.View())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderSpinner returns the spinner frame for the given tick
func RenderSpinner(frame int) string {
	return styles.AccentStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

func (m Model) renderTitle() string {
	return styles.TitleStyle.Render("Indexing queue") + styles.DimStyle.Render(" · "+m.ServerURL)
}

func (m Model) renderPanel() string {
	parts := make([]string, 0, len(m.Panel.Slots()))
	for _, id := range m.Panel.Slots() {
		value := m.Panel.Text(id)
		if value == "" {
			value = "-"
		}
		parts = append(parts, styles.SlotLabelStyle.Render(m.Panel.Label(id)+" ")+styles.SlotValueStyle.Render(value))
	}
	return styles.PanelStyle.Render(strings.Join(parts, "   "))
}

func (m Model) renderTable() string {
	page := m.pageSize()
	start := min(m.Offset, len(m.visible))
	end := min(start+page, len(m.visible))
	window := m.visible[start:end]

	rows := make([][]string, 0, len(window))
	rowStyles := make([]render.RowStyle, 0, len(window))
	for _, idx := range window {
		row, _ := m.Table.Row(idx)
		rows = append(rows, row.Texts())
		rowStyles = append(rowStyles, row.Style)
	}
	selected := m.Cursor - start

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorderStyle).
		Headers(m.Table.Header().Texts()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.HeaderRowStyle
			case row == selected:
				return styles.SelectedRowStyle
			case row >= 0 && row < len(rowStyles):
				return styles.RowStyle(rowStyles[row])
			}
			return styles.LightRowStyle
		})
	if m.Width > 0 {
		t = t.Width(m.Width)
	}
	return t.Render()
}

// renderDetail describes the selected entry
func (m Model) renderDetail() string {
	_, entry, ok := m.Selected()
	if !ok {
		if m.Loading {
			return styles.DimStyle.Render("Waiting for the queue...")
		}
		return styles.DimStyle.Render(fmt.Sprintf("%d entries", len(m.visible)))
	}

	parts := []string{fmt.Sprintf("%d/%d", m.Cursor+1, len(m.visible))}
	if depth, ok := entry.DepthValue(); ok {
		parts = append(parts, fmt.Sprintf("depth %d", depth))
	}
	if size, ok := entry.SizeBytes(); ok {
		parts = append(parts, humanize.Bytes(size))
	}
	if entry.InProcess {
		parts = append(parts, "in process")
	}
	if entry.Hash != "" {
		parts = append(parts, "hash "+entry.Hash)
	}
	return styles.DimStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderHealth(label string, h domain.PollHealth) string {
	indicator := styles.SuccessStyle.Render(styles.FreshChar)
	if h.Stale() {
		indicator = styles.ErrorStyle.Render(styles.StaleChar)
	}

	age := "never"
	if !h.LastSuccess.IsZero() {
		age = humanize.Time(h.LastSuccess)
	}
	text := label + " " + age
	if h.Stale() {
		text += fmt.Sprintf(" (%d failed)", h.ConsecutiveFailures)
	}
	return indicator + " " + styles.DimStyle.Render(text)
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	// Left side: spinner while loading, otherwise the status message
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else if m.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	}

	center := m.renderHealth("status", m.StatusHealth) + "  " + m.renderHealth("queue", m.QueueHealth)

	var hints []string
	for _, b := range m.Keys.FooterHelp() {
		h := b.Help()
		hints = append(hints, styles.AccentStyle.Render(h.Key)+styles.DimStyle.Render(" "+h.Desc))
	}
	right := strings.Join(hints, "  ")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - drop the key hints
		gap := max(0, m.Width-leftWidth-centerWidth)
		return left + strings.Repeat(" ", gap) + center
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}
