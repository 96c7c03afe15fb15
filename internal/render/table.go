package render

import (
	"fmt"
	"strings"

	"github.com/mmcdole/queuewatch/internal/domain"
)

// Alternation selects how Dark/Light styles alternate around active rows
type Alternation string

const (
	// AlternateContinuous flips after every row, active rows included.
	AlternateContinuous Alternation = "continuous"
	// AlternatePlainOnly flips only after rows that are not in process.
	AlternatePlainOnly Alternation = "plain-only"
)

// ParseAlternation validates a configured alternation name
func ParseAlternation(s string) (Alternation, error) {
	switch a := Alternation(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AlternateContinuous, nil
	case AlternateContinuous, AlternatePlainOnly:
		return a, nil
	default:
		return "", fmt.Errorf("unknown alternation %q (want %q or %q)", s, AlternateContinuous, AlternatePlainOnly)
	}
}

// ParseFirstStyle validates the configured style of the first plain row
func ParseFirstStyle(s string) (RowStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dark":
		return StyleDark, nil
	case "light":
		return StyleLight, nil
	default:
		return StyleNone, fmt.Errorf("unknown first row style %q (want dark or light)", s)
	}
}

// StylePolicy assigns row styles during reconciliation
type StylePolicy struct {
	Alternation Alternation
	First       RowStyle // StyleDark or StyleLight
}

// DefaultStylePolicy alternates continuously, starting Dark
func DefaultStylePolicy() StylePolicy {
	return StylePolicy{Alternation: AlternateContinuous, First: StyleDark}
}

// Styles returns the style of each entry, in order
func (p StylePolicy) Styles(entries []domain.QueueEntry) []RowStyle {
	styles := make([]RowStyle, len(entries))
	dark := p.First != StyleLight
	for i, e := range entries {
		switch {
		case e.InProcess:
			styles[i] = StyleActive
		case dark:
			styles[i] = StyleDark
		default:
			styles[i] = StyleLight
		}
		if !e.InProcess || p.Alternation != AlternatePlainOnly {
			dark = !dark
		}
	}
	return styles
}

// Table is a table body: one fixed header row followed by dynamic rows
type Table struct {
	id   string
	body []Row // body[0] is the header
}

// NewTable creates a table whose body holds only the header row
func NewTable(id string, header Row) *Table {
	return &Table{id: id, body: []Row{header}}
}

// ID returns the table's stable identifier
func (t *Table) ID() string {
	return t.id
}

// Header returns the header row
func (t *Table) Header() Row {
	return t.body[0]
}

// BodyLen returns the number of body rows, header included
func (t *Table) BodyLen() int {
	return len(t.body)
}

// Rows returns the dynamic rows after the header
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.body)-1)
	copy(out, t.body[1:])
	return out
}

// Row returns the i-th dynamic row
func (t *Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t.body)-1 {
		return Row{}, false
	}
	return t.body[i+1], true
}

// RemoveRowAfterHeader deletes the row directly after the header. It
// reports false when no such row exists; the header itself is never removed.
func (t *Table) RemoveRowAfterHeader() bool {
	if len(t.body) < 2 {
		return false
	}
	t.body = append(t.body[:1], t.body[2:]...)
	return true
}

// Append adds a row at the end of the body
func (t *Table) Append(row Row) {
	t.body = append(t.body, row)
}

// Reconcile replaces every dynamic row with rows built from entries, in
// order. Reconciling the same entries twice leaves the same table.
func (t *Table) Reconcile(entries []domain.QueueEntry, policy StylePolicy) {
	for t.RemoveRowAfterHeader() {
	}

	styles := policy.Styles(entries)
	for i, entry := range entries {
		row := BuildRow(entry)
		row.Style = styles[i]
		t.Append(row)
	}
}
