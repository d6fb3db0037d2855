package tracker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/flapstat/flapstat/internal/display"
	"github.com/flapstat/flapstat/internal/stats"
	"github.com/flapstat/flapstat/internal/textfmt"
)

// ChannelSummary tracks whole-channel statistics: the channel title, total
// view count, and video count.
type ChannelSummary struct {
	base
	src     stats.Source
	channel *ChannelContext
	printer *display.Printer
	dwell   time.Duration

	views   uint64
	videos  uint64
	fetched bool
}

// NewChannelSummary creates the channel statistics tracker.
func NewChannelSummary(src stats.Source, channel *ChannelContext, printer *display.Printer, rate, dwell time.Duration) *ChannelSummary {
	return &ChannelSummary{
		base:    base{name: "channel", rate: rate},
		src:     src,
		channel: channel,
		printer: printer,
		dwell:   dwell,
	}
}

// Fetch pulls the channel view and video counts.
func (c *ChannelSummary) Fetch(ctx context.Context) (bool, error) {
	st, err := c.src.ChannelStatistics(ctx, c.channel.ChannelID)
	if err != nil {
		return false, fmt.Errorf("channel statistics: %w", err)
	}
	c.views = st.Views
	c.videos = st.Videos
	c.fetched = true
	return true, nil
}

// Show prints the channel banner, its title, and the two counters.
func (c *ChannelSummary) Show(_ context.Context) error {
	if err := c.printer.Print("Channel", textfmt.AlignLeft, c.dwell); err != nil {
		return err
	}
	if err := c.printer.Print(c.channel.Title, textfmt.AlignLeft, c.dwell); err != nil {
		return err
	}
	if err := c.printer.PrintStat([]string{"Views"}, strconv.FormatUint(c.views, 10), textfmt.AlignRight, c.dwell, true); err != nil {
		return err
	}
	return c.printer.PrintStat([]string{"Vids"}, strconv.FormatUint(c.videos, 10), textfmt.AlignRight, c.dwell, true)
}
