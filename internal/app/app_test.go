package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flapstat/flapstat/internal/stats"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func count(n uint64) *uint64 { return &n }

// seedCache fills a cache directory with one response per request kind so an
// offline run has everything it needs.
func seedCache(t *testing.T, dir string) {
	t.Helper()
	cache := stats.NewCache(dir)
	require.NoError(t, cache.Put("channel-info", "UC1", stats.ChannelInfo{
		Title:             "My Chan",
		UploadsPlaylistID: "UU1",
	}))
	require.NoError(t, cache.Put("channel-stats", "UC1", stats.ChannelStatistics{
		Subscribers: 100,
		Views:       1234,
		Videos:      56,
	}))
	require.NoError(t, cache.Put("playlist-latest", "UU1", stats.PlaylistItem{
		VideoID:     "v1",
		Title:       "My Vid",
		PublishedAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, cache.Put("video-stats", "v1", stats.VideoStatistics{
		Views:    count(10),
		Likes:    count(2),
		Comments: count(1),
	}))
}

func testConfig(dir string, out io.Writer) Config {
	return Config{
		ChannelID:        "UC1",
		Demo:             true,
		Offline:          true,
		CacheDir:         dir,
		SubscriberRate:   time.Minute,
		ChannelRate:      time.Hour,
		VideoPollRate:    5 * time.Minute,
		VideoStatsRate:   30 * time.Minute,
		RecentDays:       3,
		SubscriberPrefix: true,
		SubscriberDiff:   true,
		Version:          "test",
		Logger:           discardLogger(),
		Out:              out,
	}
}

func TestRunOfflineDemo(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := Run(ctx, testConfig(dir, &out))
	require.NoError(t, err)

	// One full cycle ran: every tracker rendered pages and the shutdown
	// summary was printed. The preview pads each flap cell, so compare with
	// spacing squeezed out.
	flat := strings.ReplaceAll(out.String(), " ", "")
	assert.Contains(t, flat, "MYCHAN")
	assert.Contains(t, flat, "SUBS100")
	assert.Contains(t, flat, "NEWVID!")
	assert.Contains(t, out.String(), "Summary")
}

func TestRunIntro(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)

	var out bytes.Buffer
	cfg := testConfig(dir, &out)
	cfg.Intro = true

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, Run(ctx, cfg))
	flat := strings.ReplaceAll(out.String(), " ", "")
	assert.Contains(t, flat, "YOUTUBE")
	assert.Contains(t, flat, "VTEST")
}

func TestRunUnknownChannelFatal(t *testing.T) {
	dir := t.TempDir() // empty cache, channel cannot resolve

	cfg := testConfig(dir, io.Discard)
	err := Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "resolve channel"))
	assert.ErrorIs(t, err, stats.ErrCacheMiss)
}
