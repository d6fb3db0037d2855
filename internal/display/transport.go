// Package display drives a split-flap character display: transports for the
// physical device and a detached preview mode, plus the Printer that lays
// out and paces the text shown on the flaps.
package display

import (
	"errors"

	"github.com/flapstat/flapstat/internal/textfmt"
)

// FallbackWidth is the assumed module count when no display is attached,
// so layout logic stays exercisable without hardware.
const FallbackWidth = 8

var (
	// ErrDetached is returned when writing to a transport that is not (or
	// no longer) connected to a physical display.
	ErrDetached = errors.New("display: transport detached")

	// ErrNoPorts is returned when no serial port could be found.
	ErrNoPorts = errors.New("display: no serial ports found")
)

// Transport is the device-side half of the display. Implementations report
// their geometry and character set and accept fixed-width lines.
type Transport interface {
	// Attached reports whether a physical display is connected.
	Attached() bool

	// Width returns the number of character cells, or 0 when unknown.
	Width() int

	// Charset returns the characters the display can render.
	Charset() textfmt.Charset

	// Write sends one fixed-width line to the device.
	Write(line string) error

	// Text returns the last line known to be on the display.
	Text() string

	// Close releases the underlying device.
	Close() error

	// Name returns a human-readable identifier for this transport.
	Name() string
}

// MemoryTransport is a detached display used for demo mode and tests. It
// mirrors the last written line and never performs device I/O.
type MemoryTransport struct {
	width   int
	charset textfmt.Charset
	last    string
	closed  bool
}

// NewMemoryTransport creates a detached transport with the given width.
// Non-positive widths fall back to FallbackWidth.
func NewMemoryTransport(width int) *MemoryTransport {
	if width <= 0 {
		width = FallbackWidth
	}
	return &MemoryTransport{
		width:   width,
		charset: textfmt.DefaultCharset,
	}
}

// Attached always reports false: there is no physical display.
func (t *MemoryTransport) Attached() bool { return false }

// Width returns the simulated module count.
func (t *MemoryTransport) Width() int { return t.width }

// Charset returns the default flap alphabet.
func (t *MemoryTransport) Charset() textfmt.Charset { return t.charset }

// Write stores the line as the current display content.
func (t *MemoryTransport) Write(line string) error {
	if t.closed {
		return ErrDetached
	}
	t.last = line
	return nil
}

// Text returns the last written line.
func (t *MemoryTransport) Text() string { return t.last }

// Close marks the transport closed.
func (t *MemoryTransport) Close() error {
	t.closed = true
	return nil
}

// Name returns the transport identifier.
func (t *MemoryTransport) Name() string { return "memory" }
