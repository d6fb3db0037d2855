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

// subscriberLabels are the candidate labels for the subscriber count,
// longest first.
var subscriberLabels = []string{
	"Subscribers",
	"Subs",
	"Sub",
}

// SubscriberCounter tracks the channel subscriber count and optionally the
// increase since the previous cycle.
type SubscriberCounter struct {
	base
	src     stats.Source
	channel *ChannelContext
	printer *display.Printer
	dwell   time.Duration

	labels   []string
	showDiff bool

	subs    uint64
	diff    int64
	fetched bool
}

// SubscriberOptions configures a SubscriberCounter.
type SubscriberOptions struct {
	Rate       time.Duration
	Dwell      time.Duration
	ShowPrefix bool
	ShowDiff   bool
}

// NewSubscriberCounter creates the subscriber tracker.
func NewSubscriberCounter(src stats.Source, channel *ChannelContext, printer *display.Printer, opts SubscriberOptions) *SubscriberCounter {
	labels := subscriberLabels
	if !opts.ShowPrefix {
		labels = nil
	}
	return &SubscriberCounter{
		base:     base{name: "subscribers", rate: opts.Rate},
		src:      src,
		channel:  channel,
		printer:  printer,
		dwell:    opts.Dwell,
		labels:   labels,
		showDiff: opts.ShowDiff,
	}
}

// Fetch pulls the subscriber count and computes the signed difference from
// the previous value. The difference is zero on the first successful fetch.
func (s *SubscriberCounter) Fetch(ctx context.Context) (bool, error) {
	st, err := s.src.ChannelStatistics(ctx, s.channel.ChannelID)
	if err != nil {
		return false, fmt.Errorf("subscriber count: %w", err)
	}

	if s.fetched {
		s.diff = int64(st.Subscribers) - int64(s.subs)
	} else {
		s.diff = 0
	}
	s.subs = st.Subscribers
	s.fetched = true
	return true, nil
}

// Show prints the subscriber count, preceded by the gained-subscriber delta
// when configured and positive. Printing the delta first means the label is
// already on the flaps, so the absolute count skips its label flash.
func (s *SubscriberCounter) Show(_ context.Context) error {
	flash := true
	if s.diff > 0 && s.showDiff {
		delta := "+" + strconv.FormatInt(s.diff, 10)
		if err := s.printer.PrintStat(s.labels, delta, textfmt.AlignRight, s.dwell, true); err != nil {
			return err
		}
		flash = false
	}
	count := strconv.FormatUint(s.subs, 10)
	return s.printer.PrintStat(s.labels, count, textfmt.AlignRight, s.dwell, flash)
}
