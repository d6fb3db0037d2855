// Package stats provides channel and video statistics sources: the live
// YouTube Data API client, a file-backed cache, and an offline source that
// replays cached responses.
package stats

import (
	"context"
	"errors"
	"time"
)

// ErrFieldMissing marks a response that arrived but lacks a required field.
// It is a recoverable fetch failure, never a crash.
var ErrFieldMissing = errors.New("stats: field missing")

// ChannelInfo identifies a channel, fetched once at startup.
type ChannelInfo struct {
	Title             string `json:"title"`
	UploadsPlaylistID string `json:"uploadsPlaylistId"`
}

// ChannelStatistics holds channel-level counters.
type ChannelStatistics struct {
	Subscribers uint64 `json:"subscriberCount"`
	Views       uint64 `json:"viewCount"`
	Videos      uint64 `json:"videoCount"`
}

// PlaylistItem describes the most recent upload in a playlist. PublishedAt
// is zero when the API omitted or mangled the timestamp; callers treat such
// items as not recent.
type PlaylistItem struct {
	VideoID     string    `json:"videoId"`
	PublishedAt time.Time `json:"publishedAt"`
	Title       string    `json:"title"`
}

// VideoStatistics holds per-video counters. Each counter is nil when the
// response omitted it (hidden like counts, disabled comments), which is
// distinct from a counter that is present and zero. Callers skip absent
// counters instead of failing the whole fetch.
type VideoStatistics struct {
	Views    *uint64 `json:"viewCount,omitempty"`
	Likes    *uint64 `json:"likeCount,omitempty"`
	Comments *uint64 `json:"commentCount,omitempty"`
}

// Source returns channel and video statistics on demand. Implementations
// report missing or malformed response fields as errors wrapping
// ErrFieldMissing.
type Source interface {
	// ChannelInfo resolves the channel title and uploads playlist.
	ChannelInfo(ctx context.Context, channelID string) (ChannelInfo, error)

	// ChannelStatistics fetches subscriber, view, and video counts.
	ChannelStatistics(ctx context.Context, channelID string) (ChannelStatistics, error)

	// LatestPlaylistItem fetches the most recent upload in a playlist.
	LatestPlaylistItem(ctx context.Context, playlistID string) (PlaylistItem, error)

	// VideoStatistics fetches view, like, and comment counts for a video.
	VideoStatistics(ctx context.Context, videoID string) (VideoStatistics, error)

	// Name returns a human-readable identifier for this source.
	Name() string
}
