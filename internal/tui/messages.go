package tui

import "time"

// Message types for the TUI. Poll results arrive as service.StatusResult and
// service.QueueResult, sent by the session's sink.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// EntryDeletedMsg signals that the peer accepted a delete request
type EntryDeletedMsg struct {
	Hash string
}

// LinkOpenedMsg signals that a link was handed to the browser
type LinkOpenedMsg struct {
	URL string
}

// StatusMsg displays a transient footer message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the footer message
type ClearStatusMsg struct{}

// TickMsg drives the spinner and the relative times in the footer
type TickMsg time.Time
