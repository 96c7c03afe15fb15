package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/queuewatch/internal/domain"
)

func entries(inProcess ...bool) []domain.QueueEntry {
	out := make([]domain.QueueEntry, len(inProcess))
	for i, active := range inProcess {
		out[i] = domain.QueueEntry{
			Initiator: "peer",
			URL:       "http://example.org/" + string(rune('a'+i)),
			Hash:      "h" + string(rune('a'+i)),
			InProcess: active,
		}
	}
	return out
}

func styles(tbl *Table) []RowStyle {
	var out []RowStyle
	for _, r := range tbl.Rows() {
		out = append(out, r.Style)
	}
	return out
}

func TestBuildRow(t *testing.T) {
	row := BuildRow(domain.QueueEntry{
		Initiator: "peer-a",
		Depth:     "1",
		Modified:  "20240101",
		Anchor:    "Home",
		URL:       "http://example.org/",
		Size:      "2048",
		Hash:      "abc123",
	})

	want := []Cell{
		{Text: "peer-a"},
		{Text: "1"},
		{Text: "20240101"},
		{Text: "Home"},
		{Text: "http://example.org/", Link: true, Href: "http://example.org/", Target: "_blank"},
		{Text: "2048"},
		{Text: "delete", Link: true, Href: "IndexCreateIndexingQueue_p.html?deleteEntry=abc123", Target: "_blank"},
	}
	if diff := cmp.Diff(want, row.Cells); diff != "" {
		t.Errorf("BuildRow cells mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StyleNone, row.Style)
	assert.Equal(t, "http://example.org/", row.URL())
	assert.Equal(t, "abc123", row.Hash)
}

func TestReconcile_EmptyKeepsOnlyHeader(t *testing.T) {
	tbl := NewTable(QueueTableID, QueueHeader)
	tbl.Reconcile(entries(false, true, false), DefaultStylePolicy())
	require.Equal(t, 4, tbl.BodyLen())

	tbl.Reconcile(nil, DefaultStylePolicy())
	assert.Equal(t, 1, tbl.BodyLen())
	assert.Equal(t, QueueHeader.Texts(), tbl.Header().Texts())
	assert.Empty(t, tbl.Rows())
}

func TestReconcile_Styles(t *testing.T) {
	input := entries(false, true, false, false)

	tests := []struct {
		name   string
		policy StylePolicy
		want   []RowStyle
	}{
		{
			name:   "continuous",
			policy: StylePolicy{Alternation: AlternateContinuous, First: StyleDark},
			want:   []RowStyle{StyleDark, StyleActive, StyleDark, StyleLight},
		},
		{
			name:   "plain-only",
			policy: StylePolicy{Alternation: AlternatePlainOnly, First: StyleDark},
			want:   []RowStyle{StyleDark, StyleActive, StyleLight, StyleDark},
		},
		{
			name:   "continuous starting light",
			policy: StylePolicy{Alternation: AlternateContinuous, First: StyleLight},
			want:   []RowStyle{StyleLight, StyleActive, StyleLight, StyleDark},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(QueueTableID, QueueHeader)
			tbl.Reconcile(input, tt.policy)
			assert.Equal(t, tt.want, styles(tbl))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	input := entries(true, false, false)
	tbl := NewTable(QueueTableID, QueueHeader)

	tbl.Reconcile(input, DefaultStylePolicy())
	first := tbl.Rows()
	tbl.Reconcile(input, DefaultStylePolicy())

	assert.Equal(t, 4, tbl.BodyLen())
	if diff := cmp.Diff(first, tbl.Rows()); diff != "" {
		t.Errorf("second reconcile changed rows (-first +second):\n%s", diff)
	}
}

func TestReconcile_ReplacesStaleRows(t *testing.T) {
	tbl := NewTable(QueueTableID, QueueHeader)
	tbl.Reconcile(entries(false, false, false, false, false), DefaultStylePolicy())

	fresh := []domain.QueueEntry{{Hash: "new", URL: "http://new"}}
	tbl.Reconcile(fresh, DefaultStylePolicy())

	rows := tbl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].Hash)
}

func TestRemoveRowAfterHeader_NeverRemovesHeader(t *testing.T) {
	tbl := NewTable(QueueTableID, QueueHeader)
	tbl.Append(BuildRow(domain.QueueEntry{Hash: "x"}))

	assert.True(t, tbl.RemoveRowAfterHeader())
	assert.False(t, tbl.RemoveRowAfterHeader())
	assert.Equal(t, 1, tbl.BodyLen())
	assert.Equal(t, StyleHeader, tbl.Header().Style)
}

func TestTable_Row(t *testing.T) {
	tbl := NewTable(QueueTableID, QueueHeader)
	tbl.Reconcile(entries(false, false), DefaultStylePolicy())

	row, ok := tbl.Row(1)
	require.True(t, ok)
	assert.Equal(t, "hb", row.Hash)

	_, ok = tbl.Row(2)
	assert.False(t, ok)
	_, ok = tbl.Row(-1)
	assert.False(t, ok)
}

func TestParseAlternation(t *testing.T) {
	a, err := ParseAlternation("")
	require.NoError(t, err)
	assert.Equal(t, AlternateContinuous, a)

	a, err = ParseAlternation("Plain-Only")
	require.NoError(t, err)
	assert.Equal(t, AlternatePlainOnly, a)

	_, err = ParseAlternation("zebra")
	assert.Error(t, err)

	s, err := ParseFirstStyle("light")
	require.NoError(t, err)
	assert.Equal(t, StyleLight, s)

	_, err = ParseFirstStyle("grey")
	assert.Error(t, err)
}

func TestPanel_Apply(t *testing.T) {
	p := NewStatusPanel()
	p.Apply(domain.StatusSnapshot{QueueSize: "12", QueueMax: "100", ProcessingRate: "37"})
	assert.Equal(t, "37", p.Text(SlotPPM))

	// a snapshot without ppm overwrites the previous value with ""
	p.Apply(domain.StatusSnapshot{QueueSize: "13", QueueMax: "100"})
	assert.Equal(t, "", p.Text(SlotPPM))
	assert.Equal(t, "13", p.Text(SlotQueueSize))

	assert.False(t, p.SetText("nope", "x"))
	assert.Equal(t, []string{SlotQueueSize, SlotQueueMax, SlotPPM}, p.Slots())
}

func TestRowStyle_Class(t *testing.T) {
	assert.Equal(t, "TableCellActive", StyleActive.Class())
	assert.Equal(t, "TableCellDark", StyleDark.Class())
	assert.Equal(t, "TableCellLight", StyleLight.Class())
	assert.Equal(t, "", StyleNone.Class())
}
