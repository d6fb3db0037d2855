package display

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/flapstat/flapstat/internal/textfmt"
)

// Controller protocol: newline-terminated command strings to the display
// microcontroller, newline-terminated responses back. A status poll on open
// reports the module count, the flap alphabet, and the currently shown text.
const (
	DefaultBaudRate = 38400

	cmdStatus = "CMDSTAT" // CMDSTAT -> MOD,<n> / CHR,<chars> / TXT,<text> / ACK
	cmdText   = "CMDTXT"  // CMDTXT,<text> -> TXT,<text> / ACK

	respModules = "MOD"
	respCharset = "CHR"
	respText    = "TXT"
	respAck     = "ACK"

	commandTerminator = "\n"
	readTimeout       = 1 * time.Second
)

// SerialTransport talks to a split-flap controller over a serial port.
type SerialTransport struct {
	portName string
	port     serial.Port
	width    int
	charset  textfmt.Charset
	last     string
	attached bool
	log      *slog.Logger
}

// OpenSerial opens the named serial port and polls the controller for its
// status. A failed open or status poll is fatal; the caller cannot proceed
// without a configured device.
func OpenSerial(portName string, baudRate int, logger *slog.Logger) (*SerialTransport, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	if logger == nil {
		logger = slog.Default()
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("display: open %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("display: set read timeout: %w", err)
	}

	t := &SerialTransport{
		portName: portName,
		port:     port,
		charset:  textfmt.DefaultCharset,
		attached: true,
		log:      logger.With("component", "display"),
	}
	if err := t.poll(); err != nil {
		port.Close()
		return nil, fmt.Errorf("display: status poll on %s: %w", portName, err)
	}
	t.log.Info("display connected", "port", portName, "modules", t.width)
	return t, nil
}

// Attached reports whether the device is still reachable. A write failure
// flips this to false and the transport becomes a no-op sink.
func (t *SerialTransport) Attached() bool { return t.attached }

// Width returns the module count reported by the controller.
func (t *SerialTransport) Width() int { return t.width }

// Charset returns the flap alphabet reported by the controller.
func (t *SerialTransport) Charset() textfmt.Charset { return t.charset }

// Text returns the last text acknowledged by the controller.
func (t *SerialTransport) Text() string { return t.last }

// Name returns the transport identifier.
func (t *SerialTransport) Name() string { return "serial:" + t.portName }

// Write sends one line to the flaps and waits for the acknowledgement.
func (t *SerialTransport) Write(line string) error {
	if !t.attached {
		return ErrDetached
	}
	if err := t.send(cmdText + "," + line); err != nil {
		t.attached = false
		return fmt.Errorf("%w: %v", ErrDetached, err)
	}
	if err := t.readAck(); err != nil {
		t.attached = false
		return fmt.Errorf("%w: %v", ErrDetached, err)
	}
	t.last = line
	return nil
}

// Close releases the serial port.
func (t *SerialTransport) Close() error {
	t.attached = false
	if err := t.port.Close(); err != nil {
		return fmt.Errorf("display: close %s: %w", t.portName, err)
	}
	return nil
}

// poll asks the controller for its status and records module count,
// charset, and current text from the response lines.
func (t *SerialTransport) poll() error {
	if err := t.send(cmdStatus); err != nil {
		return err
	}
	for {
		line, err := t.readLine()
		if err != nil {
			return err
		}
		key, rest, _ := strings.Cut(line, ",")
		switch key {
		case respModules:
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 {
				return fmt.Errorf("bad module count %q", rest)
			}
			t.width = n
		case respCharset:
			if rest != "" {
				t.charset = textfmt.NewCharset(rest)
			}
		case respText:
			t.last = rest
		case respAck:
			return nil
		default:
			t.log.Debug("ignoring status line", "line", line)
		}
	}
}

// readAck consumes response lines until the acknowledgement, picking up a
// text echo along the way.
func (t *SerialTransport) readAck() error {
	for {
		line, err := t.readLine()
		if err != nil {
			return err
		}
		key, rest, _ := strings.Cut(line, ",")
		switch key {
		case respText:
			t.last = rest
		case respAck:
			return nil
		}
	}
}

func (t *SerialTransport) send(command string) error {
	_, err := t.port.Write([]byte(command + commandTerminator))
	if err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

// readLine reads bytes until a newline. The port read timeout surfaces as a
// zero-length read; a timeout with nothing buffered is an error.
func (t *SerialTransport) readLine() (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		if n == 0 {
			return "", fmt.Errorf("read response: timeout after %s", readTimeout)
		}
		if buf[0] == '\n' {
			return strings.TrimRight(sb.String(), "\r"), nil
		}
		sb.WriteByte(buf[0])
	}
}
