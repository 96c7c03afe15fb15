package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/queuewatch/internal/domain"
)

// Result is delivered to the sink after every completed fetch
type Result[T any] struct {
	Kind     domain.PollKind
	Seq      uint64 // send order of the fetch, starting at 1
	Value    T
	Err      error
	Started  time.Time
	Finished time.Time
}

// StatusResult carries a status poll to the UI
type StatusResult = Result[domain.StatusSnapshot]

// QueueResult carries a queue poll to the UI
type QueueResult = Result[[]domain.QueueEntry]

// Sink receives results. It is called from poller goroutines and must be
// safe for concurrent use (tea.Program.Send is).
type Sink func(msg any)

// PollerStats counts poller activity
type PollerStats struct {
	Ticks     uint64
	Dropped   uint64 // ticks skipped by the in-flight guard
	Completed uint64
	Failed    uint64
}

// Poller fetches one document on a fixed interval
type Poller[T any] struct {
	kind      domain.PollKind
	interval  time.Duration
	timeout   time.Duration
	guard     bool
	immediate bool
	fetch     func(ctx context.Context) (T, error)
	journal   domain.Journal
	logger    *slog.Logger

	trigger  chan struct{}
	inFlight atomic.Bool
	seq      atomic.Uint64
	wg       sync.WaitGroup

	ticks, dropped, completed, failed atomic.Uint64
}

// PollerOptions configures a Poller
type PollerOptions struct {
	Interval      time.Duration
	Timeout       time.Duration // zero means Interval
	InFlightGuard bool
	Immediate     bool // fetch once right after Run starts
}

// NewPoller creates a poller for kind using fetch
func NewPoller[T any](kind domain.PollKind, fetch func(ctx context.Context) (T, error), opts PollerOptions, journal domain.Journal, logger *slog.Logger) *Poller[T] {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = opts.Interval
	}
	return &Poller[T]{
		kind:      kind,
		interval:  opts.Interval,
		timeout:   opts.Timeout,
		guard:     opts.InFlightGuard,
		immediate: opts.Immediate,
		fetch:     fetch,
		journal:   journal,
		logger:    logger.With("poller", string(kind)),
		trigger:   make(chan struct{}, 1),
	}
}

// Run ticks until ctx is cancelled, then waits for outstanding fetches.
// Fetches run in their own goroutines so a slow fetch never delays the
// timer.
func (p *Poller[T]) Run(ctx context.Context, sink Sink) {
	ticker := time.NewTicker(p.interval)
	defer func() {
		ticker.Stop()
		p.wg.Wait()
	}()

	if p.immediate {
		p.tick(ctx, sink)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx, sink)
		case <-p.trigger:
			p.tick(ctx, sink)
		}
	}
}

// Trigger requests an out-of-schedule fetch. Repeated calls before the
// poller picks it up coalesce.
func (p *Poller[T]) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Once performs a single synchronous fetch without delivering it
func (p *Poller[T]) Once(ctx context.Context) Result[T] {
	return p.fetchOnce(ctx, p.seq.Add(1))
}

// Stats returns a snapshot of the counters
func (p *Poller[T]) Stats() PollerStats {
	return PollerStats{
		Ticks:     p.ticks.Load(),
		Dropped:   p.dropped.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

func (p *Poller[T]) tick(ctx context.Context, sink Sink) {
	p.ticks.Add(1)
	if p.guard && !p.inFlight.CompareAndSwap(false, true) {
		p.dropped.Add(1)
		p.logger.Debug("tick dropped, fetch still in flight")
		return
	}

	seq := p.seq.Add(1)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.guard {
			defer p.inFlight.Store(false)
		}

		res := p.fetchOnce(ctx, seq)
		if ctx.Err() != nil {
			return // stopped; nobody is listening
		}
		sink(res)
	}()
}

func (p *Poller[T]) fetchOnce(ctx context.Context, seq uint64) Result[T] {
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res := Result[T]{Kind: p.kind, Seq: seq, Started: time.Now()}
	res.Value, res.Err = p.fetch(fetchCtx)
	res.Finished = time.Now()

	p.completed.Add(1)
	if res.Err != nil {
		p.failed.Add(1)
		p.logger.Warn("poll failed", "seq", seq, "error", res.Err)
	}
	p.record(res)
	return res
}

func (p *Poller[T]) record(res Result[T]) {
	if p.journal == nil {
		return
	}
	o := domain.PollOutcome{
		Kind:     p.kind,
		At:       res.Finished,
		Duration: res.Finished.Sub(res.Started),
	}
	if entries, ok := any(res.Value).([]domain.QueueEntry); ok {
		o.Entries = len(entries)
	}
	if res.Err != nil {
		o.Err = res.Err.Error()
	}
	if err := p.journal.Record(o); err != nil {
		p.logger.Error("failed to record poll outcome", "error", err)
	}
}
