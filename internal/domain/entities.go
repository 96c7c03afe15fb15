package domain

import (
	"strconv"
	"strings"
	"time"
)

// StatusSnapshot is the single-record status document of a peer.
// Values are kept as the server rendered them; absent nodes are "".
type StatusSnapshot struct {
	QueueSize      string // indexingqueue/size
	QueueMax       string // indexingqueue/max
	ProcessingRate string // ppm, pages per minute
}

// QueueSizeValue returns the queue size as an integer
func (s StatusSnapshot) QueueSizeValue() (int, bool) {
	return parseInt(s.QueueSize)
}

// QueueMaxValue returns the queue capacity as an integer
func (s StatusSnapshot) QueueMaxValue() (int, bool) {
	return parseInt(s.QueueMax)
}

// ProcessingRateValue returns the processing rate in pages per minute
func (s StatusSnapshot) ProcessingRateValue() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s.ProcessingRate), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// QueueEntry is one pending or active item of the indexing queue.
// There is no identity across polls; each poll yields a fresh sequence.
type QueueEntry struct {
	Initiator string
	Depth     string
	Modified  string // timestamp as rendered by the server
	Anchor    string
	URL       string
	Size      string // bytes, as rendered by the server
	Hash      string // content hash, the key for the delete action
	InProcess bool
}

// DepthValue returns the crawl depth as an integer
func (e QueueEntry) DepthValue() (int, bool) {
	return parseInt(e.Depth)
}

// SizeBytes returns the size as a byte count
func (e QueueEntry) SizeBytes() (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(e.Size), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PollKind names one of the two independent polling activities
type PollKind string

const (
	PollStatus PollKind = "status"
	PollQueue  PollKind = "queue"
)

// PollOutcome records the result of one completed fetch
type PollOutcome struct {
	Kind     PollKind      `json:"kind"`
	At       time.Time     `json:"at"`
	Duration time.Duration `json:"duration"`
	Entries  int           `json:"entries,omitempty"` // queue polls only
	Err      string        `json:"error,omitempty"`
}

// OK reports whether the poll succeeded
func (o PollOutcome) OK() bool {
	return o.Err == ""
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}
