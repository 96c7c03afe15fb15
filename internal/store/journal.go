// Package store persists poll outcomes in BoltDB so the dashboard can tell
// how long ago each poller last succeeded, across restarts.
package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/queuewatch/internal/domain"
)

// DefaultRetention is the number of outcomes kept per poll kind
const DefaultRetention = 500

// Bucket names; outcomes are nested per poll kind
var bucketOutcomes = []byte("outcomes")

// PollJournal implements domain.Journal using BoltDB.
// An empty directory gives a memory-only journal.
type PollJournal struct {
	db        *bolt.DB
	retention int

	mu     sync.RWMutex
	health map[domain.PollKind]domain.PollHealth
	memory map[domain.PollKind][]domain.PollOutcome // memory-only mode
}

// NewPollJournal opens (or creates) the journal for serverURL below baseDir
func NewPollJournal(baseDir, serverURL string, retention int) (*PollJournal, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	j := &PollJournal{
		retention: retention,
		health:    make(map[domain.PollKind]domain.PollHealth),
		memory:    make(map[domain.PollKind][]domain.PollOutcome),
	}
	if baseDir == "" {
		return j, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "journal.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(bucketOutcomes)
		if err != nil {
			return err
		}
		for _, kind := range []domain.PollKind{domain.PollStatus, domain.PollQueue} {
			if _, err := root.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	j.db = db

	if err := j.loadHealth(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Close releases the database
func (j *PollJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record appends an outcome and trims the kind's history to the retention
func (j *PollJournal) Record(o domain.PollOutcome) error {
	j.mu.Lock()
	j.health[o.Kind] = j.health[o.Kind].Apply(o)
	if j.db == nil {
		hist := append(j.memory[o.Kind], o)
		if len(hist) > j.retention {
			hist = hist[len(hist)-j.retention:]
		}
		j.memory[o.Kind] = hist
	}
	j.mu.Unlock()

	if j.db == nil {
		return nil
	}

	data, err := json.Marshal(o)
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(bucketOutcomes).CreateBucketIfNotExists([]byte(o.Kind))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}
		if seq <= uint64(j.retention) {
			return nil
		}

		// Drop everything older than the retention window
		cutoff := seqKey(seq - uint64(j.retention))
		var stale [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil && string(k) <= string(cutoff); k, _ = c.Next() {
			stale = append(stale, append([]byte(nil), k...))
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Recent returns up to limit outcomes of kind, newest first
func (j *PollJournal) Recent(kind domain.PollKind, limit int) ([]domain.PollOutcome, error) {
	if limit <= 0 {
		return nil, nil
	}

	if j.db == nil {
		j.mu.RLock()
		defer j.mu.RUnlock()
		hist := j.memory[kind]
		out := make([]domain.PollOutcome, 0, min(limit, len(hist)))
		for i := len(hist) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, hist[i])
		}
		return out, nil
	}

	var out []domain.PollOutcome
	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOutcomes).Bucket([]byte(kind))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			var o domain.PollOutcome
			if err := json.Unmarshal(v, &o); err != nil {
				return fmt.Errorf("corrupt journal record %x: %w", k, err)
			}
			out = append(out, o)
		}
		return nil
	})
	return out, err
}

// Health returns the summary for kind
func (j *PollJournal) Health(kind domain.PollKind) (domain.PollHealth, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	h := j.health[kind]
	h.Kind = kind
	return h, nil
}

// loadHealth rebuilds the in-memory summaries from persisted history
func (j *PollJournal) loadHealth() error {
	return j.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(bucketOutcomes)
		return root.ForEach(func(name, v []byte) error {
			b := root.Bucket(name)
			if v != nil || b == nil {
				return nil
			}
			h := domain.PollHealth{Kind: domain.PollKind(name)}
			err := b.ForEach(func(_, data []byte) error {
				var o domain.PollOutcome
				if err := json.Unmarshal(data, &o); err != nil {
					return nil // skip unreadable records
				}
				h = h.Apply(o)
				return nil
			})
			if err != nil {
				return err
			}
			j.health[h.Kind] = h
			return nil
		})
	})
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
