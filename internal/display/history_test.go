package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryPushAndSnapshot(t *testing.T) {
	h := NewHistory(3)
	h.Push("A")
	h.Push("B")

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []string{"A", "B"}, h.Snapshot())
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, page := range []string{"A", "B", "C", "D", "E"} {
		h.Push(page)
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, uint64(2), h.Dropped())
	assert.Equal(t, []string{"C", "D", "E"}, h.Snapshot())
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, 32, h.Cap())
}
