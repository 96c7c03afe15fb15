package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/render"
	"github.com/mmcdole/queuewatch/internal/service"
)

// SessionController is the part of the polling session the TUI drives
type SessionController interface {
	Refresh()
	DeleteEntry(ctx context.Context, hash string) error
	Health(kind domain.PollKind) domain.PollHealth
}

// LinkOpener opens row links outside the terminal
type LinkOpener interface {
	Open(href string) error
	OpenDeletePage(hash string) error
}

const (
	// Title, status panel, table borders and header, detail line, footer
	ChromeHeight = 11

	statusTimeout = 3 * time.Second
	spinnerTick   = 100 * time.Millisecond
	idleTick      = time.Second
)

var errNoHash = errors.New("entry has no hash")

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready   bool
	Loading bool // no queue document received yet

	// Services
	Session SessionController
	Links   LinkOpener

	// Render model. Mutated only from Update.
	Panel   *render.Panel
	Table   *render.Table
	Policy  render.StylePolicy
	entries []domain.QueueEntry // entries[i] built Table row i

	// Filter
	Filter    textinput.Model
	Filtering bool
	visible   []int // table row indices passing the filter

	// Selection
	Cursor int // index into visible
	Offset int

	// Poll health, folded from results on top of the journal summary
	StatusHealth domain.PollHealth
	QueueHealth  domain.PollHealth

	// Dimensions
	Width  int
	Height int

	// UI state
	ServerURL    string
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	Keys         KeyMap
}

// NewModel creates a new application model
func NewModel(session SessionController, links LinkOpener, serverURL string, policy render.StylePolicy) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by initiator or URL"

	return Model{
		Loading:      true,
		Session:      session,
		Links:        links,
		Panel:        render.NewStatusPanel(),
		Table:        render.NewTable(render.QueueTableID, render.QueueHeader),
		Policy:       policy,
		Filter:       filter,
		visible:      []int{},
		StatusHealth: session.Health(domain.PollStatus),
		QueueHealth:  session.Health(domain.PollQueue),
		ServerURL:    serverURL,
		Keys:         Keys,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return TickCmd(spinnerTick)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.Loading {
			return m, TickCmd(spinnerTick)
		}
		return m, TickCmd(idleTick)

	case service.StatusResult:
		m.StatusHealth = m.StatusHealth.Apply(outcomeOf(msg.Kind, msg.Finished, msg.Err))
		if domain.IsTransportError(msg.Err) {
			return m, nil
		}
		m.Panel.Apply(msg.Value)
		return m, nil

	case service.QueueResult:
		m.QueueHealth = m.QueueHealth.Apply(outcomeOf(msg.Kind, msg.Finished, msg.Err))
		if domain.IsTransportError(msg.Err) {
			return m, nil
		}
		m.Loading = false
		m.reconcile(msg.Value)
		return m, nil

	case EntryDeletedMsg:
		return m, m.setStatus("Deleted entry "+msg.Hash, false)

	case LinkOpenedMsg:
		return m, m.setStatus("Opened "+msg.URL, false)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ErrMsg:
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// reconcile rebuilds the table from entries, keeping the selected entry
// selected when it survives
func (m *Model) reconcile(entries []domain.QueueEntry) {
	selected := ""
	if row, _, ok := m.Selected(); ok {
		selected = row.Hash
	}

	m.entries = entries
	m.Table.Reconcile(entries, m.Policy)
	m.applyFilter()

	if selected == "" {
		return
	}
	for i, idx := range m.visible {
		if row, ok := m.Table.Row(idx); ok && row.Hash == selected {
			m.Cursor = i
			m.ensureVisible()
			return
		}
	}
}

// applyFilter recomputes the visible rows and clamps the cursor
func (m *Model) applyFilter() {
	m.visible = filterRows(m.Table.Rows(), m.Filter.Value())
	if m.Cursor >= len(m.visible) {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.ensureVisible()
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.Filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.Keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, m.Keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, m.Keys.Home):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, m.Keys.End):
		m.moveCursor(len(m.visible))

	case key.Matches(msg, m.Keys.Filter):
		m.Filtering = true
		cmd := m.Filter.Focus()
		return m, cmd

	case key.Matches(msg, m.Keys.Escape):
		if m.Filter.Value() != "" {
			m.Filter.SetValue("")
			m.applyFilter()
		}

	case key.Matches(msg, m.Keys.Refresh):
		m.Session.Refresh()
		return m, m.setStatus("Refreshing...", false)

	case key.Matches(msg, m.Keys.Delete):
		row, _, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if row.Hash == "" {
			return m, m.setStatus(errNoHash.Error(), true)
		}
		return m, tea.Batch(m.setStatus("Deleting entry "+row.Hash+"...", false), DeleteEntryCmd(m.Session, row.Hash))

	case key.Matches(msg, m.Keys.DeletePage):
		row, _, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if row.Hash == "" {
			return m, m.setStatus(errNoHash.Error(), true)
		}
		return m, OpenDeletePageCmd(m.Links, row.Hash)

	case key.Matches(msg, m.Keys.Open):
		row, _, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if row.URL() == "" {
			return m, m.setStatus("entry has no URL", true)
		}
		return m, OpenLinkCmd(m.Links, row.URL())
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Filtering = false
		m.Filter.Blur()
		m.Filter.SetValue("")
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.Filtering = false
		m.Filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// Selected returns the row under the cursor and the entry it was built from
func (m Model) Selected() (render.Row, domain.QueueEntry, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.visible) {
		return render.Row{}, domain.QueueEntry{}, false
	}
	idx := m.visible[m.Cursor]
	row, ok := m.Table.Row(idx)
	if !ok {
		return render.Row{}, domain.QueueEntry{}, false
	}
	var entry domain.QueueEntry
	if idx < len(m.entries) {
		entry = m.entries[idx]
	}
	return row, entry, true
}

// VisibleRows returns the table row indices passing the filter
func (m Model) VisibleRows() []int {
	return m.visible
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.Cursor = max(0, min(len(m.visible)-1, m.Cursor+delta))
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	page := m.pageSize()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+page {
		m.Offset = m.Cursor - page + 1
	}
	if m.Offset > len(m.visible) {
		m.Offset = max(0, len(m.visible)-page)
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func (m Model) pageSize() int {
	chrome := ChromeHeight
	if m.Filtering || m.Filter.Value() != "" {
		chrome++
	}
	return max(1, m.Height-chrome)
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

func outcomeOf(kind domain.PollKind, at time.Time, err error) domain.PollOutcome {
	o := domain.PollOutcome{Kind: kind, At: at}
	if err != nil {
		o.Err = err.Error()
	}
	return o
}
