package yacy

import (
	"github.com/beevik/etree"

	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/xmltree"
)

// Element names of the status and queue documents
const (
	tagStatus        = "status"
	tagIndexingQueue = "indexingqueue"
	tagSize          = "size"
	tagMax           = "max"
	tagPPM           = "ppm"
	tagEntry         = "entry"
	tagInitiator     = "initiator"
	tagDepth         = "depth"
	tagModified      = "modified"
	tagAnchor        = "anchor"
	tagURL           = "url"
	tagHash          = "hash"
	tagInProcess     = "inProcess"
)

// ParseStatus maps a status document to a snapshot.
//
//	<response><status><indexingqueue><size/><max/></indexingqueue><ppm/></status></response>
//
// Unknown nodes are ignored and missing nodes map to "". A nil document
// yields the zero snapshot.
func ParseStatus(doc *etree.Document) domain.StatusSnapshot {
	status := xmltree.Path(doc, "", tagStatus)
	queue := xmltree.FirstChild(status, tagIndexingQueue)

	return domain.StatusSnapshot{
		QueueSize:      xmltree.TextValue(xmltree.FirstChild(queue, tagSize)),
		QueueMax:       xmltree.TextValue(xmltree.FirstChild(queue, tagMax)),
		ProcessingRate: xmltree.TextValue(xmltree.FirstChild(status, tagPPM)),
	}
}

// ParseQueue maps a queue document to entries in document order.
//
//	<response><indexingqueue><entry>...</entry>...</indexingqueue></response>
//
// A nil document, or one without an indexingqueue node, yields no entries.
func ParseQueue(doc *etree.Document) []domain.QueueEntry {
	queue := xmltree.Path(doc, "", tagIndexingQueue)

	elements := xmltree.Children(queue, tagEntry)
	entries := make([]domain.QueueEntry, 0, len(elements))
	for _, el := range elements {
		entries = append(entries, mapEntry(el))
	}
	return entries
}

func mapEntry(el *etree.Element) domain.QueueEntry {
	field := func(name string) string {
		return xmltree.TextValue(xmltree.FirstChild(el, name))
	}
	return domain.QueueEntry{
		Initiator: field(tagInitiator),
		Depth:     field(tagDepth),
		Modified:  field(tagModified),
		Anchor:    field(tagAnchor),
		URL:       field(tagURL),
		Size:      field(tagSize),
		Hash:      field(tagHash),
		InProcess: field(tagInProcess) == "true",
	}
}
