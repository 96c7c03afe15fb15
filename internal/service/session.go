package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/queuewatch/internal/domain"
)

// DefaultInterval is the poll period of both pollers
const DefaultInterval = 5 * time.Second

// ErrSessionRunning is returned by Start on a session that is already running
var ErrSessionRunning = errors.New("session already running")

// SessionConfig configures the two pollers of a session
type SessionConfig struct {
	StatusInterval time.Duration
	QueueInterval  time.Duration
	Timeout        time.Duration // per fetch; zero means the poller's interval
	InFlightGuard  bool
	Immediate      bool
}

// DefaultSessionConfig polls both documents every five seconds with the
// in-flight guard enabled
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		StatusInterval: DefaultInterval,
		QueueInterval:  DefaultInterval,
		InFlightGuard:  true,
		Immediate:      true,
	}
}

// Session owns the status and queue pollers of one dashboard. The two
// pollers tick independently; a slow or failing fetch on one never blocks
// the other.
type Session struct {
	status  *Poller[domain.StatusSnapshot]
	queue   *Poller[[]domain.QueueEntry]
	queues  domain.QueueRepository
	journal domain.Journal
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a stopped session
func NewSession(
	statuses domain.StatusRepository,
	queues domain.QueueRepository,
	journal domain.Journal,
	cfg SessionConfig,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	opts := func(interval time.Duration) PollerOptions {
		return PollerOptions{
			Interval:      interval,
			Timeout:       cfg.Timeout,
			InFlightGuard: cfg.InFlightGuard,
			Immediate:     cfg.Immediate,
		}
	}
	return &Session{
		status:  NewPoller(domain.PollStatus, statuses.GetStatus, opts(cfg.StatusInterval), journal, logger),
		queue:   NewPoller(domain.PollQueue, queues.GetQueue, opts(cfg.QueueInterval), journal, logger),
		queues:  queues,
		journal: journal,
		logger:  logger,
	}
}

// Start launches both pollers. Results go to sink until Stop is called or
// ctx is cancelled.
func (s *Session) Start(ctx context.Context, sink Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrSessionRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.status.Run(ctx, sink)
	}()
	go func() {
		defer wg.Done()
		s.queue.Run(ctx, sink)
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	s.logger.Info("session started")
	return nil
}

// Stop cancels both pollers and waits for outstanding fetches. It is safe
// to call on a stopped session.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("session stopped")
}

// Running reports whether the pollers are active
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Refresh triggers an immediate fetch on both pollers
func (s *Session) Refresh() {
	s.status.Trigger()
	s.queue.Trigger()
}

// DeleteEntry asks the peer to drop an entry, then refreshes the queue
func (s *Session) DeleteEntry(ctx context.Context, hash string) error {
	if err := s.queues.DeleteEntry(ctx, hash); err != nil {
		s.logger.Error("delete failed", "hash", hash, "error", err)
		return err
	}
	s.logger.Info("entry deleted", "hash", hash)
	s.queue.Trigger()
	return nil
}

// FetchOnce fetches both documents synchronously, bypassing the timers
func (s *Session) FetchOnce(ctx context.Context) (StatusResult, QueueResult) {
	var (
		wg     sync.WaitGroup
		status StatusResult
		queue  QueueResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		status = s.status.Once(ctx)
	}()
	go func() {
		defer wg.Done()
		queue = s.queue.Once(ctx)
	}()
	wg.Wait()
	return status, queue
}

// Stats returns the counters of both pollers
func (s *Session) Stats() (status, queue PollerStats) {
	return s.status.Stats(), s.queue.Stats()
}

// Health returns the journal summary of kind. Without a journal the zero
// summary is returned.
func (s *Session) Health(kind domain.PollKind) domain.PollHealth {
	if s.journal == nil {
		return domain.PollHealth{Kind: kind}
	}
	h, err := s.journal.Health(kind)
	if err != nil {
		s.logger.Warn("failed to read poll health", "kind", kind, "error", err)
	}
	return h
}
