package domain

import "time"

// PollHealth summarizes recent outcomes of one poller
type PollHealth struct {
	Kind                PollKind
	LastSuccess         time.Time // zero if never succeeded
	LastFailure         time.Time
	LastError           string
	ConsecutiveFailures int
}

// Stale reports whether the last attempt failed, meaning the rendering
// reflects an older response.
func (h PollHealth) Stale() bool {
	return h.ConsecutiveFailures > 0
}

// Apply folds a new outcome into the summary
func (h PollHealth) Apply(o PollOutcome) PollHealth {
	h.Kind = o.Kind
	if o.OK() {
		h.LastSuccess = o.At
		h.ConsecutiveFailures = 0
		h.LastError = ""
		return h
	}
	h.LastFailure = o.At
	h.LastError = o.Err
	h.ConsecutiveFailures++
	return h
}
