package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	counters := map[string]any{
		"viewCount":    "1234",
		"likeCount":    "0",
		"commentCount": float64(7),
		"mangled":      "many",
		"hidden":       true,
	}

	views := parseCount(counters, "viewCount")
	require.NotNil(t, views)
	assert.Equal(t, uint64(1234), *views)

	// Present and zero is a real counter, not a gap.
	likes := parseCount(counters, "likeCount")
	require.NotNil(t, likes)
	assert.Equal(t, uint64(0), *likes)

	comments := parseCount(counters, "commentCount")
	require.NotNil(t, comments)
	assert.Equal(t, uint64(7), *comments)

	assert.Nil(t, parseCount(counters, "absent"))
	assert.Nil(t, parseCount(counters, "mangled"))
	assert.Nil(t, parseCount(counters, "hidden"))
}
