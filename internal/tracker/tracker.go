// Package tracker implements per-statistic rate-limited fetch/show cycles
// and the scheduler that drives them against one shared display.
package tracker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/flapstat/flapstat/internal/monitor"
)

// ChannelContext holds the per-run channel identifiers, fetched once at
// startup and shared read-only by all trackers.
type ChannelContext struct {
	ChannelID         string
	Title             string
	UploadsPlaylistID string
}

// Clock returns the current time. Injectable for tests.
type Clock func() time.Time

// Tracker is one unit of periodic fetch-and-render logic. Fetch reports
// whether there is anything to show; Show renders it on the display.
type Tracker interface {
	// Name returns a human-readable identifier for this tracker.
	Name() string

	// Rate returns the current update interval.
	Rate() time.Duration

	// LastUpdate returns the time of the previous cycle, and whether one
	// has happened at all.
	LastUpdate() (time.Time, bool)

	// MarkUpdated records the completion of a cycle.
	MarkUpdated(now time.Time)

	// Fetch pulls fresh data from the stats source. The returned bool
	// reports whether Show should run this cycle.
	Fetch(ctx context.Context) (bool, error)

	// Show renders the fetched data on the display.
	Show(ctx context.Context) error
}

// base carries the common rate-limiting state of every tracker.
type base struct {
	name string
	rate time.Duration
	last time.Time
	ran  bool
}

func (b *base) Name() string        { return b.name }
func (b *base) Rate() time.Duration { return b.rate }

func (b *base) LastUpdate() (time.Time, bool) { return b.last, b.ran }

func (b *base) MarkUpdated(now time.Time) {
	b.last = now
	b.ran = true
}

// Cycle runs one Idle→Updating pass for t if its timer has elapsed. The
// timer advances whether or not the fetch succeeds, so a failing source
// retries at the tracker's own rate rather than storming. A fetch failure
// or a "nothing to show" fetch skips Show.
func Cycle(ctx context.Context, t Tracker, now time.Time, logger *slog.Logger, st *monitor.Stats) {
	last, ran := t.LastUpdate()
	if ran && now.Before(last.Add(t.Rate())) {
		return
	}

	logger.Info("fetching update",
		"tracker", t.Name(),
		"next update in", natural(t.Rate()),
	)

	st.RecordFetch()
	show, err := t.Fetch(ctx)
	t.MarkUpdated(now)
	if err != nil {
		st.RecordFetchError()
		logger.Warn("fetch failed", "tracker", t.Name(), "err", err)
		return
	}
	if !show {
		return
	}
	if err := t.Show(ctx); err != nil {
		logger.Warn("show failed", "tracker", t.Name(), "err", err)
		return
	}
	st.RecordCycle()
}

// natural renders a duration the way a person would say it.
func natural(d time.Duration) string {
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", ""))
}
