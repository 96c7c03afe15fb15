// Package render holds the presentation model of the dashboard: a queue
// table with a fixed header row, the rows built from queue entries, and
// the status panel's display slots. It is pure state; the TUI draws it.
package render

import (
	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/yacy"
)

// DeleteLabel is the label of the delete link in every row
const DeleteLabel = "delete"

// TargetBlank opens a link outside the dashboard
const TargetBlank = "_blank"

// Column indexes of a queue row
const (
	ColInitiator = iota
	ColDepth
	ColModified
	ColAnchor
	ColURL
	ColSize
	ColDelete
	columnCount
)

// QueueHeader is the static header row of the queue table
var QueueHeader = Row{
	Cells: []Cell{
		{Text: "Initiator"},
		{Text: "Depth"},
		{Text: "Modified Date"},
		{Text: "Anchor Name"},
		{Text: "URL"},
		{Text: "Size"},
		{Text: "Delete"},
	},
	Style: StyleHeader,
}

// RowStyle is the single class token applied to a row
type RowStyle int

const (
	StyleNone RowStyle = iota
	StyleHeader
	StyleActive
	StyleDark
	StyleLight
)

// Class returns the style's class token
func (s RowStyle) Class() string {
	switch s {
	case StyleHeader:
		return "TableHeader"
	case StyleActive:
		return "TableCellActive"
	case StyleDark:
		return "TableCellDark"
	case StyleLight:
		return "TableCellLight"
	default:
		return ""
	}
}

func (s RowStyle) String() string {
	switch s {
	case StyleHeader:
		return "Header"
	case StyleActive:
		return "Active"
	case StyleDark:
		return "Dark"
	case StyleLight:
		return "Light"
	default:
		return "None"
	}
}

// Cell is one table cell
type Cell struct {
	Text   string
	Link   bool // rendered as a hyperlink, even when Href is empty
	Href   string
	Target string
}

// Row is one table row
type Row struct {
	Cells []Cell
	Style RowStyle
	Hash  string // hash of the entry the row was built from
}

// Texts returns the visible text of every cell
func (r Row) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// URL returns the href of the URL column, or "" for rows without one
func (r Row) URL() string {
	if len(r.Cells) <= ColURL {
		return ""
	}
	return r.Cells[ColURL].Href
}

// BuildRow projects one queue entry into an unstyled row
func BuildRow(entry domain.QueueEntry) Row {
	cells := make([]Cell, 0, columnCount)
	cells = append(cells,
		Cell{Text: entry.Initiator},
		Cell{Text: entry.Depth},
		Cell{Text: entry.Modified},
		Cell{Text: entry.Anchor},
		linkCell(entry.URL, entry.URL),
		Cell{Text: entry.Size},
		linkCell(yacy.DeleteHref(entry.Hash), DeleteLabel),
	)
	return Row{Cells: cells, Hash: entry.Hash}
}

func linkCell(href, label string) Cell {
	return Cell{Text: label, Link: true, Href: href, Target: TargetBlank}
}
