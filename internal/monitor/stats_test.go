package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsCounters(t *testing.T) {
	s := NewStats()

	s.RecordCycle()
	s.RecordFetch()
	s.RecordFetch()
	s.RecordFetchError()
	s.RecordPage()
	s.RecordPage()
	s.RecordPage()
	s.RecordSkip()

	assert.Equal(t, uint64(1), s.Cycles())
	assert.Equal(t, uint64(2), s.Fetches())
	assert.Equal(t, uint64(1), s.FetchErrors())
	assert.Equal(t, uint64(3), s.PagesWritten())
	assert.Equal(t, uint64(1), s.WritesSkipped())
}

func TestStatsSummary(t *testing.T) {
	s := NewStats()
	s.RecordFetch()
	s.RecordPage()

	out := s.Summary()
	assert.Contains(t, out, "Fetches:        1")
	assert.Contains(t, out, "Pages written:  1")
}
