package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/term"

	"github.com/mmcdole/queuewatch/internal/domain"
	"github.com/mmcdole/queuewatch/internal/render"
	"github.com/mmcdole/queuewatch/internal/service"
	"github.com/mmcdole/queuewatch/internal/tui/styles"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// onceFetcher performs one synchronous poll of both documents
type onceFetcher interface {
	FetchOnce(ctx context.Context) (service.StatusResult, service.QueueResult)
}

// runOnce fetches both documents once and prints them as text
func runOnce(w io.Writer, session onceFetcher, policy render.StylePolicy, match string) error {
	status, queue := fetchWithSpinner(session)

	if domain.IsTransportError(status.Err) && domain.IsTransportError(queue.Err) {
		return fmt.Errorf("peer unreachable: %w", queue.Err)
	}

	panel := render.NewStatusPanel()
	if !domain.IsTransportError(status.Err) {
		panel.Apply(status.Value)
	}
	table := render.NewTable(render.QueueTableID, render.QueueHeader)
	if !domain.IsTransportError(queue.Err) {
		table.Reconcile(filterEntries(queue.Value, match), policy)
	}

	_, err := io.WriteString(w, render.PlainText(panel, table))
	return err
}

// filterEntries keeps entries whose URL or initiator fuzzy-matches match
func filterEntries(entries []domain.QueueEntry, match string) []domain.QueueEntry {
	if match == "" {
		return entries
	}
	out := make([]domain.QueueEntry, 0, len(entries))
	for _, e := range entries {
		if fuzzy.MatchFold(match, e.URL) || fuzzy.MatchFold(match, e.Initiator) {
			out = append(out, e)
		}
	}
	return out
}

// fetchWithSpinner runs FetchOnce, animating a spinner on stderr when it
// is a terminal
func fetchWithSpinner(session onceFetcher) (service.StatusResult, service.QueueResult) {
	ctx := context.Background()
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return session.FetchOnce(ctx)
	}

	type result struct {
		status service.StatusResult
		queue  service.QueueResult
	}
	resultCh := make(chan result, 1)

	go func() {
		status, queue := session.FetchOnce(ctx)
		resultCh <- result{status, queue}
	}()

	frame := 0
	fmt.Fprintf(os.Stderr, "\r%s Fetching queue...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(os.Stderr, clearSpinnerLine)
			return res.status, res.queue
		case <-ticker.C:
			frame++
			fmt.Fprintf(os.Stderr, "\r%s Fetching queue...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}

// historySource reads recorded poll outcomes
type historySource interface {
	Recent(kind domain.PollKind, limit int) ([]domain.PollOutcome, error)
}

// printHistory prints the last limit outcomes of both pollers, newest first
func printHistory(w io.Writer, journal historySource, limit int) error {
	var errs []error
	for _, kind := range []domain.PollKind{domain.PollStatus, domain.PollQueue} {
		outcomes, err := journal.Recent(kind, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s history: %w", kind, err))
			continue
		}

		fmt.Fprintf(w, "%s poller\n", kind)
		if len(outcomes) == 0 {
			fmt.Fprintln(w, "  no polls recorded")
		}
		for _, o := range outcomes {
			fmt.Fprintln(w, "  "+formatOutcome(o))
		}
	}
	return errors.Join(errs...)
}

func formatOutcome(o domain.PollOutcome) string {
	line := fmt.Sprintf("%-20s %8s", humanize.Time(o.At), o.Duration.Round(time.Millisecond))
	if o.Kind == domain.PollQueue && o.OK() {
		line += fmt.Sprintf("  %s", humanize.Comma(int64(o.Entries))+" entries")
	}
	if o.OK() {
		return line + "  ok"
	}
	return line + "  failed: " + o.Err
}
