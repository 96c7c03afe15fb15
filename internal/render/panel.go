package render

import "github.com/mmcdole/queuewatch/internal/domain"

// Identifiers of the status display slots and the queue table
const (
	SlotQueueSize = "indexingqueuesize"
	SlotQueueMax  = "indexingqueuemax"
	SlotPPM       = "ppm"
	QueueTableID  = "indexingTable"
)

// Panel is a fixed set of labelled text slots
type Panel struct {
	order  []string
	labels map[string]string
	texts  map[string]string
}

// NewStatusPanel creates the panel holding the three status slots
func NewStatusPanel() *Panel {
	p := &Panel{
		labels: make(map[string]string),
		texts:  make(map[string]string),
	}
	p.add(SlotQueueSize, "Indexing queue")
	p.add(SlotQueueMax, "Max")
	p.add(SlotPPM, "PPM")
	return p
}

func (p *Panel) add(id, label string) {
	p.order = append(p.order, id)
	p.labels[id] = label
	p.texts[id] = ""
}

// SetText replaces the text of slot id. Unknown slots are ignored and
// reported as false.
func (p *Panel) SetText(id, text string) bool {
	if _, ok := p.texts[id]; !ok {
		return false
	}
	p.texts[id] = text
	return true
}

// Text returns the current text of slot id
func (p *Panel) Text(id string) string {
	return p.texts[id]
}

// Label returns the display label of slot id
func (p *Panel) Label(id string) string {
	return p.labels[id]
}

// Slots returns slot identifiers in display order
func (p *Panel) Slots() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Apply overwrites every status slot from the snapshot. Absent values
// overwrite with "" rather than keeping the previous text.
func (p *Panel) Apply(s domain.StatusSnapshot) {
	p.SetText(SlotQueueSize, s.QueueSize)
	p.SetText(SlotQueueMax, s.QueueMax)
	p.SetText(SlotPPM, s.ProcessingRate)
}
