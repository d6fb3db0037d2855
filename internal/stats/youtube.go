package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
	"google.golang.org/api/youtube/v3"
)

// YouTubeSource fetches statistics from the YouTube Data API v3.
type YouTubeSource struct {
	svc *youtube.Service

	// client carries the same API-key transport as svc, for the one request
	// whose response is decoded directly (see VideoStatistics).
	client *http.Client
}

// NewYouTubeSource builds an API-key authenticated client.
func NewYouTubeSource(ctx context.Context, apiKey string) (*YouTubeSource, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("stats: build youtube client: %w", err)
	}
	client, _, err := htransport.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("stats: build youtube http client: %w", err)
	}
	return &YouTubeSource{svc: svc, client: client}, nil
}

// Name returns the source identifier.
func (s *YouTubeSource) Name() string { return "youtube" }

// ChannelInfo resolves the channel title and uploads playlist id.
func (s *YouTubeSource) ChannelInfo(ctx context.Context, channelID string) (ChannelInfo, error) {
	resp, err := s.svc.Channels.List([]string{"snippet", "contentDetails"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return ChannelInfo{}, fmt.Errorf("stats: channel info: %w", err)
	}
	if len(resp.Items) == 0 {
		return ChannelInfo{}, fmt.Errorf("stats: channel %q not found: %w", channelID, ErrFieldMissing)
	}
	item := resp.Items[0]
	if item.Snippet == nil || item.ContentDetails == nil || item.ContentDetails.RelatedPlaylists == nil {
		return ChannelInfo{}, fmt.Errorf("stats: channel info for %q: %w", channelID, ErrFieldMissing)
	}
	return ChannelInfo{
		Title:             item.Snippet.Title,
		UploadsPlaylistID: item.ContentDetails.RelatedPlaylists.Uploads,
	}, nil
}

// ChannelStatistics fetches the channel counters.
func (s *YouTubeSource) ChannelStatistics(ctx context.Context, channelID string) (ChannelStatistics, error) {
	resp, err := s.svc.Channels.List([]string{"statistics"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return ChannelStatistics{}, fmt.Errorf("stats: channel statistics: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return ChannelStatistics{}, fmt.Errorf("stats: channel statistics for %q: %w", channelID, ErrFieldMissing)
	}
	st := resp.Items[0].Statistics
	return ChannelStatistics{
		Subscribers: st.SubscriberCount,
		Views:       st.ViewCount,
		Videos:      st.VideoCount,
	}, nil
}

// LatestPlaylistItem fetches the newest upload in a playlist.
func (s *YouTubeSource) LatestPlaylistItem(ctx context.Context, playlistID string) (PlaylistItem, error) {
	resp, err := s.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return PlaylistItem{}, fmt.Errorf("stats: latest playlist item: %w", err)
	}
	if len(resp.Items) == 0 {
		return PlaylistItem{}, fmt.Errorf("stats: playlist %q is empty: %w", playlistID, ErrFieldMissing)
	}
	item := resp.Items[0]
	if item.ContentDetails == nil || item.Snippet == nil {
		return PlaylistItem{}, fmt.Errorf("stats: playlist item in %q: %w", playlistID, ErrFieldMissing)
	}

	// A bad timestamp is not fatal: a zero time classifies as "not recent".
	published, err := time.Parse(time.RFC3339, item.ContentDetails.VideoPublishedAt)
	if err != nil {
		published = time.Time{}
	}
	return PlaylistItem{
		VideoID:     item.ContentDetails.VideoId,
		PublishedAt: published,
		Title:       item.Snippet.Title,
	}, nil
}

// VideoStatistics fetches the per-video counters. The generated client
// decodes these into plain integers, which collapses an omitted counter
// (hidden like counts, disabled comments) into zero, so this request is
// decoded directly to keep the distinction between absent and zero.
func (s *YouTubeSource) VideoStatistics(ctx context.Context, videoID string) (VideoStatistics, error) {
	u := s.svc.BasePath + "videos?" + url.Values{
		"part": {"statistics"},
		"id":   {videoID},
	}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return VideoStatistics{}, fmt.Errorf("stats: video statistics: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return VideoStatistics{}, fmt.Errorf("stats: video statistics: %w", err)
	}
	defer resp.Body.Close()
	if err := googleapi.CheckResponse(resp); err != nil {
		return VideoStatistics{}, fmt.Errorf("stats: video statistics: %w", err)
	}

	var body struct {
		Items []struct {
			Statistics map[string]any `json:"statistics"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return VideoStatistics{}, fmt.Errorf("stats: video statistics: %w", err)
	}
	if len(body.Items) == 0 || body.Items[0].Statistics == nil {
		return VideoStatistics{}, fmt.Errorf("stats: video statistics for %q: %w", videoID, ErrFieldMissing)
	}

	counters := body.Items[0].Statistics
	return VideoStatistics{
		Views:    parseCount(counters, "viewCount"),
		Likes:    parseCount(counters, "likeCount"),
		Comments: parseCount(counters, "commentCount"),
	}, nil
}

// parseCount reads one counter from a statistics object, nil when the key
// is absent or its value is not a count. The API serializes these counters
// as decimal strings.
func parseCount(counters map[string]any, key string) *uint64 {
	raw, ok := counters[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	case float64:
		if v < 0 {
			return nil
		}
		n := uint64(v)
		return &n
	default:
		return nil
	}
}
