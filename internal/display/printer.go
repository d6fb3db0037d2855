package display

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/flapstat/flapstat/internal/monitor"
	"github.com/flapstat/flapstat/internal/textfmt"
)

// flashDwell is the short pause when a label is flashed alone before the
// combined label+value page.
const flashDwell = 750 * time.Millisecond

// SleepFunc pauses the calling goroutine. Injectable for tests.
type SleepFunc func(time.Duration)

// Options configures a Printer. Zero values select sensible defaults.
type Options struct {
	Sleep   SleepFunc
	Logger  *slog.Logger
	Stats   *monitor.Stats
	Preview io.Writer // demo-mode rendering of each page, nil to disable
	History int       // page history capacity
}

// Printer owns the display state: it filters, aligns, chunks, and paces all
// text sent to the transport, and suppresses redundant device writes. It is
// the only writer of the current display text.
type Printer struct {
	transport Transport
	sleep     SleepFunc
	log       *slog.Logger
	stats     *monitor.Stats
	preview   io.Writer
	history   *History
	current   string
}

// NewPrinter creates a printer for the given transport.
func NewPrinter(t Transport, opts Options) *Printer {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Stats == nil {
		opts.Stats = monitor.NewStats()
	}
	return &Printer{
		transport: t,
		sleep:     opts.Sleep,
		log:       opts.Logger.With("component", "printer"),
		stats:     opts.Stats,
		preview:   opts.Preview,
		history:   NewHistory(opts.History),
	}
}

// Width returns the number of character cells to lay out for, falling back
// to FallbackWidth when the transport reports none.
func (p *Printer) Width() int {
	if w := p.transport.Width(); w > 0 {
		return w
	}
	return FallbackWidth
}

// Text returns the text currently on the display. When detached this is
// the last text the printer tried to show.
func (p *Printer) Text() string {
	if p.transport.Attached() {
		return p.transport.Text()
	}
	return p.current
}

// History returns the recent-page history.
func (p *Printer) History() *History {
	return p.history
}

func (p *Printer) charset() textfmt.Charset {
	if cs := p.transport.Charset(); cs.Len() > 0 {
		return cs
	}
	return textfmt.DefaultCharset
}

// SetText filters and aligns text, then writes it to the device unless the
// display already shows it. The in-memory state updates regardless, so a
// detached transport still previews correctly.
func (p *Printer) SetText(text string, align textfmt.Alignment) error {
	filtered := textfmt.FilterText(text, p.charset(), textfmt.ReplacementChar)
	line := textfmt.Align(filtered, align, p.Width())

	p.log.Info("setting flaps", "text", line)

	if p.Text() == line {
		p.stats.RecordSkip()
	} else if p.transport.Attached() {
		if err := p.transport.Write(line); err != nil {
			if !errors.Is(err, ErrDetached) {
				return fmt.Errorf("display: write: %w", err)
			}
			// Once open, a dropped device degrades to a no-op sink.
			p.log.Warn("display detached, continuing without device", "err", err)
		} else {
			p.stats.RecordPage()
		}
	}

	p.current = line
	p.history.Push(line)
	if p.preview != nil {
		fmt.Fprintln(p.preview, RenderPreview(line))
	}
	return nil
}

// Print shows content on the display. Numeric content is truncated to fit
// via scientific notation; anything else is chunked into pages shown one by
// one with a dwell pause in between. The dwell sleeps are the only
// intentional blocking points of the display path.
func (p *Printer) Print(content string, align textfmt.Alignment, dwell time.Duration) error {
	var pages []string
	if textfmt.IsNumeric(content) {
		pages = []string{textfmt.FilterNumber(content, p.Width())}
	} else {
		pages = textfmt.ChunkMessage(content, p.Width(), textfmt.DefaultDelimiters)
	}

	for _, page := range pages {
		if err := p.SetText(page, align); err != nil {
			return err
		}
		if dwell > 0 {
			p.sleep(dwell)
		}
	}
	return nil
}

// PrintStat shows a statistic with its best-fitting label. When label and
// value fit together, the value hugs the edge chosen by align and the label
// fills the opposite side, optionally flashed alone first. When they do not
// fit together, label and value each get their own page.
func (p *Printer) PrintStat(prefixes []string, value string, align textfmt.Alignment, dwell time.Duration, twoStep bool) error {
	width := p.Width()
	value = textfmt.FilterNumber(value, width)
	prefix := textfmt.SelectPrefix(prefixes, value, width)

	if prefix == "" {
		return p.Print(value, align, dwell)
	}

	if len(prefix)+1+len(value) <= width {
		if twoStep && !textfmt.AnyPrefixShown(prefixes, p.Text(), p.charset()) {
			if err := p.Print(prefix, align.Invert(), flashDwell); err != nil {
				return err
			}
		}
		var combined string
		switch align {
		case textfmt.AlignLeft:
			combined = value + textfmt.Align(prefix, textfmt.AlignRight, width-len(value))
		case textfmt.AlignRight:
			combined = textfmt.Align(prefix, textfmt.AlignLeft, width-len(value)) + value
		default:
			combined = value + " " + prefix
		}
		return p.Print(combined, align, dwell)
	}

	if twoStep {
		if err := p.Print(prefix, align.Invert(), dwell); err != nil {
			return err
		}
	}
	return p.Print(value, align, dwell)
}

// Clear blanks the display, optionally dwelling afterwards.
func (p *Printer) Clear(dwell time.Duration) error {
	return p.Print("", textfmt.AlignLeft, dwell)
}

// DumpHistory returns the recent pages joined for shutdown diagnostics.
func (p *Printer) DumpHistory() string {
	pages := p.history.Snapshot()
	for i, page := range pages {
		pages[i] = "[" + page + "]"
	}
	return strings.Join(pages, " ")
}
