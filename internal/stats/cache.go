package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
)

// ErrCacheMiss is returned when no cached response exists for a request.
var ErrCacheMiss = errors.New("stats: cache miss")

// Response kinds, used as cache file name prefixes.
const (
	kindChannelInfo  = "channel-info"
	kindChannelStats = "channel-stats"
	kindLatestItem   = "playlist-latest"
	kindVideoStats   = "video-stats"
)

// Cache stores API responses as one JSON file per request under a
// directory. The on-disk layout is private to this package.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir. The directory is created lazily
// on first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Put stores the response for one request kind and id.
func (c *Cache) Put(kind, id string, v any) error {
	if err := os.MkdirAll(c.dir, defaultDirMode); err != nil {
		return fmt.Errorf("stats: cache mkdir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("stats: cache encode %s/%s: %w", kind, id, err)
	}
	if err := os.WriteFile(c.path(kind, id), data, defaultFileMode); err != nil {
		return fmt.Errorf("stats: cache write %s/%s: %w", kind, id, err)
	}
	return nil
}

// Get loads the cached response for one request kind and id into v.
// A missing file reports ErrCacheMiss.
func (c *Cache) Get(kind, id string, v any) error {
	data, err := os.ReadFile(c.path(kind, id))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("stats: %s/%s: %w", kind, id, ErrCacheMiss)
		}
		return fmt.Errorf("stats: cache read %s/%s: %w", kind, id, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("stats: cache decode %s/%s: %w", kind, id, err)
	}
	return nil
}

func (c *Cache) path(kind, id string) string {
	return filepath.Join(c.dir, kind+"-"+sanitize(id)+".json")
}

// sanitize keeps ids safe as file name components.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

// CachedSource replays cached API responses, for running without network
// access. A request with no cached response is a recoverable fetch failure.
type CachedSource struct {
	cache *Cache
}

// NewCachedSource creates a source backed only by the cache.
func NewCachedSource(cache *Cache) *CachedSource {
	return &CachedSource{cache: cache}
}

// Name returns the source identifier.
func (s *CachedSource) Name() string { return "cache" }

// ChannelInfo loads the cached channel info.
func (s *CachedSource) ChannelInfo(_ context.Context, channelID string) (ChannelInfo, error) {
	var info ChannelInfo
	err := s.cache.Get(kindChannelInfo, channelID, &info)
	return info, err
}

// ChannelStatistics loads the cached channel statistics.
func (s *CachedSource) ChannelStatistics(_ context.Context, channelID string) (ChannelStatistics, error) {
	var st ChannelStatistics
	err := s.cache.Get(kindChannelStats, channelID, &st)
	return st, err
}

// LatestPlaylistItem loads the cached latest upload.
func (s *CachedSource) LatestPlaylistItem(_ context.Context, playlistID string) (PlaylistItem, error) {
	var item PlaylistItem
	err := s.cache.Get(kindLatestItem, playlistID, &item)
	return item, err
}

// VideoStatistics loads the cached video statistics.
func (s *CachedSource) VideoStatistics(_ context.Context, videoID string) (VideoStatistics, error) {
	var st VideoStatistics
	err := s.cache.Get(kindVideoStats, videoID, &st)
	return st, err
}

// Recorder wraps a live source and tees every successful response into the
// cache, keeping the offline source usable later. Cache write failures are
// logged, never propagated.
type Recorder struct {
	src   Source
	cache *Cache
	log   *slog.Logger
}

// NewRecorder wraps src with cache recording.
func NewRecorder(src Source, cache *Cache, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		src:   src,
		cache: cache,
		log:   logger.With("component", "stats"),
	}
}

// Name returns the source identifier.
func (r *Recorder) Name() string { return r.src.Name() + "+cache" }

// ChannelInfo delegates and records.
func (r *Recorder) ChannelInfo(ctx context.Context, channelID string) (ChannelInfo, error) {
	info, err := r.src.ChannelInfo(ctx, channelID)
	if err == nil {
		r.record(kindChannelInfo, channelID, info)
	}
	return info, err
}

// ChannelStatistics delegates and records.
func (r *Recorder) ChannelStatistics(ctx context.Context, channelID string) (ChannelStatistics, error) {
	st, err := r.src.ChannelStatistics(ctx, channelID)
	if err == nil {
		r.record(kindChannelStats, channelID, st)
	}
	return st, err
}

// LatestPlaylistItem delegates and records.
func (r *Recorder) LatestPlaylistItem(ctx context.Context, playlistID string) (PlaylistItem, error) {
	item, err := r.src.LatestPlaylistItem(ctx, playlistID)
	if err == nil {
		r.record(kindLatestItem, playlistID, item)
	}
	return item, err
}

// VideoStatistics delegates and records.
func (r *Recorder) VideoStatistics(ctx context.Context, videoID string) (VideoStatistics, error) {
	st, err := r.src.VideoStatistics(ctx, videoID)
	if err == nil {
		r.record(kindVideoStats, videoID, st)
	}
	return st, err
}

func (r *Recorder) record(kind, id string, v any) {
	if err := r.cache.Put(kind, id, v); err != nil {
		r.log.Warn("cache write failed", "kind", kind, "id", id, "err", err)
	}
}
