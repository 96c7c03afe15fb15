package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Command factories for async operations

// deleteTimeout bounds a delete request
const deleteTimeout = 10 * time.Second

// DeleteEntryCmd asks the peer to drop the entry with hash
func DeleteEntryCmd(svc SessionController, hash string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
		defer cancel()

		if err := svc.DeleteEntry(ctx, hash); err != nil {
			return ErrMsg{Err: err, Context: "deleting entry"}
		}
		return EntryDeletedMsg{Hash: hash}
	}
}

// OpenLinkCmd opens href in the browser
func OpenLinkCmd(svc LinkOpener, href string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Open(href); err != nil {
			return ErrMsg{Err: err, Context: "opening link"}
		}
		return LinkOpenedMsg{URL: href}
	}
}

// OpenDeletePageCmd opens the peer's delete page for hash in the browser
func OpenDeletePageCmd(svc LinkOpener, hash string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.OpenDeletePage(hash); err != nil {
			return ErrMsg{Err: err, Context: "opening delete page"}
		}
		return LinkOpenedMsg{URL: hash}
	}
}

// TickCmd returns a command that sends a tick after duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ClearStatusCmd clears the footer message after duration
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
