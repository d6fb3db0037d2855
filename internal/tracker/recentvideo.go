package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/flapstat/flapstat/internal/display"
	"github.com/flapstat/flapstat/internal/stats"
	"github.com/flapstat/flapstat/internal/textfmt"
)

// RecentVideoStats is a dual-rate tracker: it polls for the latest upload
// at a slow rate, and while that upload is inside the recency window it
// switches itself to a fast rate and shows the video's statistics each
// cycle. It reverts to the slow rate once the video ages out.
type RecentVideoStats struct {
	base
	src     stats.Source
	channel *ChannelContext
	printer *display.Printer
	dwell   time.Duration
	clock   Clock
	log     *slog.Logger

	pollRate  time.Duration
	statsRate time.Duration
	window    time.Duration

	latest       stats.PlaylistItem
	shownVideoID string
}

// RecentVideoOptions configures a RecentVideoStats tracker.
type RecentVideoOptions struct {
	PollRate    time.Duration // rate while waiting for a new upload
	StatsRate   time.Duration // rate while a recent upload is showing
	RecentDays  int
	RecentHours int
	Dwell       time.Duration
	Clock       Clock
	Logger      *slog.Logger
}

// NewRecentVideoStats creates the recent-video tracker.
func NewRecentVideoStats(src stats.Source, channel *ChannelContext, printer *display.Printer, opts RecentVideoOptions) *RecentVideoStats {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	window := time.Duration(opts.RecentDays)*24*time.Hour + time.Duration(opts.RecentHours)*time.Hour
	return &RecentVideoStats{
		base:      base{name: "recent-video", rate: opts.PollRate},
		src:       src,
		channel:   channel,
		printer:   printer,
		dwell:     opts.Dwell,
		clock:     opts.Clock,
		log:       opts.Logger.With("component", "tracker"),
		pollRate:  opts.PollRate,
		statsRate: opts.StatsRate,
		window:    window,
	}
}

// Fetch pulls the latest upload and classifies it against the recency
// window, switching the tracker's own rate accordingly. Only a recent
// video is worth showing.
func (r *RecentVideoStats) Fetch(ctx context.Context) (bool, error) {
	item, err := r.src.LatestPlaylistItem(ctx, r.channel.UploadsPlaylistID)
	if err != nil {
		return false, fmt.Errorf("latest video: %w", err)
	}
	r.latest = item

	cutoff := r.clock().Add(-r.window)
	recent := !item.PublishedAt.IsZero() && item.PublishedAt.After(cutoff)
	if recent {
		r.rate = r.statsRate
	} else {
		r.rate = r.pollRate
		r.log.Info("latest video is not recent",
			"title", item.Title,
			"published", item.PublishedAt,
			"cutoff", cutoff,
		)
	}
	return recent, nil
}

// Show announces the new video (its title only once per video) and prints
// its statistics. Each statistic is shown independently, so one failing
// counter does not suppress the others.
func (r *RecentVideoStats) Show(ctx context.Context) error {
	if err := r.printer.Print("New Vid!", textfmt.AlignLeft, r.dwell); err != nil {
		return err
	}
	if r.latest.VideoID != r.shownVideoID {
		r.shownVideoID = r.latest.VideoID
		if err := r.printer.Print(r.latest.Title, textfmt.AlignLeft, r.dwell); err != nil {
			return err
		}
	}
	if err := r.printer.Clear(0); err != nil {
		return err
	}

	vs, err := r.src.VideoStatistics(ctx, r.latest.VideoID)
	if err != nil {
		return fmt.Errorf("video statistics: %w", err)
	}

	counters := []struct {
		label string
		value *uint64
	}{
		{"Views", vs.Views},
		{"Likes", vs.Likes},
		{"Comments", vs.Comments},
	}
	for _, c := range counters {
		if c.value == nil {
			// One hidden counter must not take the others down with it.
			r.log.Warn("statistic missing from response",
				"video", r.latest.VideoID,
				"stat", c.label,
			)
			continue
		}
		if err := r.printer.PrintStat([]string{c.label}, strconv.FormatUint(*c.value, 10), textfmt.AlignRight, r.dwell, true); err != nil {
			return err
		}
	}
	return nil
}
