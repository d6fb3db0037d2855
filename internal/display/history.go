package display

// History is a fixed-capacity ring of the most recent pages shown on the
// display. When full, the oldest pages are silently evicted. The display
// path is single-threaded, so no locking is needed.
type History struct {
	pages    []string
	head     int // next write position
	count    int // current number of pages
	capacity int
	dropped  uint64 // total evicted pages
}

// NewHistory creates a page history with the given capacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 32
	}
	return &History{
		pages:    make([]string, capacity),
		capacity: capacity,
	}
}

// Push records a shown page. If full, the oldest page is evicted.
func (h *History) Push(page string) {
	h.pages[h.head] = page
	h.head = (h.head + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	} else {
		h.dropped++
	}
}

// Snapshot returns a copy of the recorded pages in chronological order.
func (h *History) Snapshot() []string {
	result := make([]string, h.count)
	if h.count < h.capacity {
		copy(result, h.pages[:h.count])
	} else {
		// Ring is full: read from head (oldest) to end, then wrap.
		n := copy(result, h.pages[h.head:])
		copy(result[n:], h.pages[:h.head])
	}
	return result
}

// Len returns the current number of recorded pages.
func (h *History) Len() int { return h.count }

// Dropped returns the total number of evicted pages.
func (h *History) Dropped() uint64 { return h.dropped }

// Cap returns the history capacity.
func (h *History) Cap() int { return h.capacity }
