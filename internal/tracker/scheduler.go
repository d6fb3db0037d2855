package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/flapstat/flapstat/internal/monitor"
)

// Scheduler drives a set of trackers sharing one display. Registration and
// removal are explicit calls keyed by id; iteration follows insertion
// order so display sequences are reproducible.
type Scheduler struct {
	trackers map[string]Tracker
	order    []string
	clock    Clock
	log      *slog.Logger
	stats    *monitor.Stats
}

// NewScheduler creates an empty scheduler.
func NewScheduler(clock Clock, logger *slog.Logger, st *monitor.Stats) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	if st == nil {
		st = monitor.NewStats()
	}
	return &Scheduler{
		trackers: make(map[string]Tracker),
		clock:    clock,
		log:      logger.With("component", "scheduler"),
		stats:    st,
	}
}

// Add registers a tracker under id, replacing any previous registration.
func (s *Scheduler) Add(id string, t Tracker) {
	if _, ok := s.trackers[id]; !ok {
		s.order = append(s.order, id)
	}
	s.trackers[id] = t
}

// Remove unregisters the tracker with the given id.
func (s *Scheduler) Remove(id string) {
	if _, ok := s.trackers[id]; !ok {
		return
	}
	delete(s.trackers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered trackers.
func (s *Scheduler) Len() int { return len(s.trackers) }

// RunAll gives every tracker one cycle, in registration order.
func (s *Scheduler) RunAll(ctx context.Context) {
	now := s.clock()
	for _, id := range s.order {
		Cycle(ctx, s.trackers[id], now, s.log, s.stats)
	}
}

// SleepTime returns how long to sleep before the next tracker is due,
// floored at zero. A tracker that has never run is immediately due.
func (s *Scheduler) SleepTime(now time.Time) time.Duration {
	var soonest time.Time
	found := false
	for _, id := range s.order {
		t := s.trackers[id]
		last, ran := t.LastUpdate()
		if !ran {
			return 0
		}
		next := last.Add(t.Rate())
		if !found || next.Before(soonest) {
			soonest = next
			found = true
		}
	}
	if !found {
		return 0
	}
	if d := soonest.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Run loops RunAll and the computed sleep until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		s.RunAll(ctx)

		d := s.SleepTime(s.clock())
		if d <= 0 {
			continue
		}
		s.log.Info("sleeping", "for", natural(d))
		select {
		case <-ctx.Done():
			return
		case <-time.After(d):
		}
	}
}
