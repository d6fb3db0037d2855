// Package monitor collects run counters for the fetch/display loop.
package monitor

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Stats counts tracker cycles and display writes in a lock-free manner.
type Stats struct {
	cycles        atomic.Uint64
	fetches       atomic.Uint64
	fetchErrors   atomic.Uint64
	pagesWritten  atomic.Uint64
	writesSkipped atomic.Uint64
	startTime     time.Time
}

// NewStats creates a new statistics collector.
func NewStats() *Stats {
	return &Stats{
		startTime: time.Now(),
	}
}

// RecordCycle increments the completed tracker cycle counter.
func (s *Stats) RecordCycle() {
	s.cycles.Add(1)
}

// RecordFetch increments the attempted fetch counter.
func (s *Stats) RecordFetch() {
	s.fetches.Add(1)
}

// RecordFetchError increments the failed fetch counter.
func (s *Stats) RecordFetchError() {
	s.fetchErrors.Add(1)
}

// RecordPage increments the device page write counter.
func (s *Stats) RecordPage() {
	s.pagesWritten.Add(1)
}

// RecordSkip increments the suppressed (redundant) write counter.
func (s *Stats) RecordSkip() {
	s.writesSkipped.Add(1)
}

// Cycles returns the number of completed tracker cycles.
func (s *Stats) Cycles() uint64 {
	return s.cycles.Load()
}

// Fetches returns the number of attempted fetches.
func (s *Stats) Fetches() uint64 {
	return s.fetches.Load()
}

// FetchErrors returns the number of failed fetches.
func (s *Stats) FetchErrors() uint64 {
	return s.fetchErrors.Load()
}

// PagesWritten returns the number of pages written to the device.
func (s *Stats) PagesWritten() uint64 {
	return s.pagesWritten.Load()
}

// WritesSkipped returns the number of suppressed redundant writes.
func (s *Stats) WritesSkipped() uint64 {
	return s.writesSkipped.Load()
}

// Elapsed returns the time since monitoring started.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// Summary returns a formatted summary string.
func (s *Stats) Summary() string {
	fetches := s.Fetches()
	errors := s.FetchErrors()

	errRate := float64(0)
	if fetches > 0 {
		errRate = float64(errors) / float64(fetches) * 100
	}

	return fmt.Sprintf(
		"── Summary ──\n"+
			"  Cycles:         %d\n"+
			"  Fetches:        %d (%d failed, %.1f%%)\n"+
			"  Pages written:  %d\n"+
			"  Writes skipped: %d\n"+
			"  Duration:       %s\n"+
			"─────────────",
		s.Cycles(),
		fetches, errors, errRate,
		s.PagesWritten(),
		s.WritesSkipped(),
		s.Elapsed().Round(time.Second),
	)
}
