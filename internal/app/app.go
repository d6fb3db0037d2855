// Package app assembles the statistics sources, the display, and the
// trackers into the running application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/flapstat/flapstat/internal/display"
	"github.com/flapstat/flapstat/internal/monitor"
	"github.com/flapstat/flapstat/internal/stats"
	"github.com/flapstat/flapstat/internal/textfmt"
	"github.com/flapstat/flapstat/internal/tracker"
)

// Config carries everything Run needs, resolved from flags, environment,
// and config file by the command layer.
type Config struct {
	APIKey    string
	ChannelID string

	Port     string // serial device name or 1-based index, empty for first
	BaudRate int
	Demo     bool // no hardware, render pages to Out instead
	Intro    bool // show the banner pages before tracking starts
	Offline  bool // replay cached API responses instead of fetching
	CacheDir string

	SubscriberRate time.Duration
	ChannelRate    time.Duration
	VideoPollRate  time.Duration
	VideoStatsRate time.Duration
	RecentDays     int
	RecentHours    int
	Dwell          time.Duration

	SubscriberPrefix bool
	SubscriberDiff   bool

	Version string
	Logger  *slog.Logger
	Out     io.Writer // startup and shutdown output, defaults to stdout
}

// Run wires up the application and drives the tracker loop until ctx is
// cancelled. The channel must resolve and the display must open; everything
// after that degrades instead of exiting.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	st := monitor.NewStats()

	src, err := newSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("statistics source ready", "source", src.Name())

	info, err := src.ChannelInfo(ctx, cfg.ChannelID)
	if err != nil {
		return fmt.Errorf("app: resolve channel %q: %w", cfg.ChannelID, err)
	}
	log.Info("tracking channel", "title", info.Title, "uploads", info.UploadsPlaylistID)

	transport, err := openTransport(cfg, log, out)
	if err != nil {
		return err
	}
	defer func() {
		if err := transport.Close(); err != nil {
			log.Warn("closing display", "err", err)
		}
	}()

	popts := display.Options{Logger: log, Stats: st}
	if cfg.Demo {
		popts.Preview = out
	}
	printer := display.NewPrinter(transport, popts)

	if cfg.Intro {
		if err := showIntro(printer, cfg.Version, cfg.Dwell); err != nil {
			return err
		}
	}

	channel := &tracker.ChannelContext{
		ChannelID:         cfg.ChannelID,
		Title:             info.Title,
		UploadsPlaylistID: info.UploadsPlaylistID,
	}

	sched := tracker.NewScheduler(time.Now, log, st)
	sched.Add("channel", tracker.NewChannelSummary(src, channel, printer, cfg.ChannelRate, cfg.Dwell))
	sched.Add("recent-video", tracker.NewRecentVideoStats(src, channel, printer, tracker.RecentVideoOptions{
		PollRate:    cfg.VideoPollRate,
		StatsRate:   cfg.VideoStatsRate,
		RecentDays:  cfg.RecentDays,
		RecentHours: cfg.RecentHours,
		Dwell:       cfg.Dwell,
		Logger:      log,
	}))
	sched.Add("subscribers", tracker.NewSubscriberCounter(src, channel, printer, tracker.SubscriberOptions{
		Rate:       cfg.SubscriberRate,
		Dwell:      cfg.Dwell,
		ShowPrefix: cfg.SubscriberPrefix,
		ShowDiff:   cfg.SubscriberDiff,
	}))

	sched.Run(ctx)

	log.Info("shutting down", "recent pages", printer.DumpHistory())
	fmt.Fprintln(out, st.Summary())
	return nil
}

// newSource builds the statistics source: the cache alone when offline,
// otherwise the live API client recording into the cache.
func newSource(ctx context.Context, cfg Config, log *slog.Logger) (stats.Source, error) {
	cache := stats.NewCache(cfg.CacheDir)
	if cfg.Offline {
		log.Info("offline mode, replaying cached responses", "dir", cfg.CacheDir)
		return stats.NewCachedSource(cache), nil
	}
	yt, err := stats.NewYouTubeSource(ctx, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return stats.NewRecorder(yt, cache, log), nil
}

// openTransport selects the display: a detached in-memory one for demo
// mode, otherwise the configured (or first discovered) serial port.
func openTransport(cfg Config, log *slog.Logger, out io.Writer) (display.Transport, error) {
	if cfg.Demo {
		log.Info("demo mode, no display attached", "width", display.FallbackWidth)
		return display.NewMemoryTransport(display.FallbackWidth), nil
	}

	ports, err := display.ListPorts()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	fmt.Fprintln(out, display.FormatPorts(ports))

	device, err := display.ResolvePort(ports, cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return display.OpenSerial(device, cfg.BaudRate, log)
}

// showIntro runs the startup banner pages.
func showIntro(p *display.Printer, version string, dwell time.Duration) error {
	if err := p.Print("YouTube Stats", textfmt.AlignCenter, dwell); err != nil {
		return err
	}
	if version != "" {
		if err := p.Print("v"+version, textfmt.AlignRight, dwell); err != nil {
			return err
		}
	}
	return p.Clear(dwell)
}
