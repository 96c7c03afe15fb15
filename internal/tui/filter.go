package tui

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/queuewatch/internal/render"
)

// rowSource exposes table rows to fuzzy matching. A row matches on its
// initiator and URL.
type rowSource []render.Row

func (s rowSource) String(i int) string {
	r := s[i]
	var initiator string
	if len(r.Cells) > render.ColInitiator {
		initiator = r.Cells[render.ColInitiator].Text
	}
	return strings.ToLower(initiator + " " + r.URL())
}

func (s rowSource) Len() int {
	return len(s)
}

// filterRows returns the indices of rows matching query, in table order.
// An empty query matches every row.
func filterRows(rows []render.Row, query string) []int {
	if query == "" {
		idx := make([]int, len(rows))
		for i := range rows {
			idx[i] = i
		}
		return idx
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), rowSource(rows))
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	slices.Sort(idx)
	return idx
}
