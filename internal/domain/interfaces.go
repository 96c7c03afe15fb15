package domain

import "context"

// StatusRepository fetches the peer status document
type StatusRepository interface {
	// GetStatus returns the parsed status. A response whose body cannot be
	// parsed yields an empty snapshot together with ErrMalformedDocument.
	GetStatus(ctx context.Context) (StatusSnapshot, error)
}

// QueueRepository fetches the indexing queue and performs queue actions
type QueueRepository interface {
	// GetQueue returns entries in document order. A response whose body
	// cannot be parsed yields no entries together with the error.
	GetQueue(ctx context.Context) ([]QueueEntry, error)

	// DeleteEntry asks the peer to drop the entry with the given hash
	DeleteEntry(ctx context.Context, hash string) error
}

// Journal persists poll outcomes for the stale-data indicator
type Journal interface {
	Record(outcome PollOutcome) error
	Recent(kind PollKind, limit int) ([]PollOutcome, error)
	Health(kind PollKind) (PollHealth, error)
	Close() error
}
