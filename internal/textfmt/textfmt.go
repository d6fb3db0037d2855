// Package textfmt lays out text for a fixed-width split-flap display:
// charset filtering, alignment padding, scientific-notation truncation of
// oversized numbers, and word-aware chunking of long messages.
package textfmt

import (
	"strconv"
	"strings"
	"unicode"
)

// Alignment controls how text is padded within the display width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// String returns the string representation of an Alignment.
func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlignment converts a string to an Alignment. Case-insensitive,
// unrecognized values fall back to AlignLeft.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(s) {
	case "right":
		return AlignRight
	case "center", "centre":
		return AlignCenter
	default:
		return AlignLeft
	}
}

// Invert mirrors left and right alignment. Center is its own mirror.
func (a Alignment) Invert() Alignment {
	switch a {
	case AlignLeft:
		return AlignRight
	case AlignRight:
		return AlignLeft
	default:
		return a
	}
}

// Charset is the set of characters a display can physically render.
type Charset map[rune]struct{}

// NewCharset builds a Charset from the characters of s.
func NewCharset(s string) Charset {
	cs := make(Charset, len(s))
	for _, r := range s {
		cs[r] = struct{}{}
	}
	return cs
}

// Contains reports whether r is renderable.
func (c Charset) Contains(r rune) bool {
	_, ok := c[r]
	return ok
}

// Len returns the number of renderable characters.
func (c Charset) Len() int { return len(c) }

// DefaultCharset is the flap alphabet assumed when no display is attached
// to report its own.
var DefaultCharset = NewCharset(" ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.,'-?!&+")

// ReplacementChar substitutes characters the display cannot render.
const ReplacementChar = '?'

// FilterText maps every character of s onto cs: characters in the set pass
// through, characters whose opposite case is in the set are case-swapped,
// everything else becomes replacement. Idempotent for any fixed cs.
func FilterText(s string, cs Charset, replacement rune) string {
	out := []rune(s)
	for i, r := range out {
		if cs.Contains(r) {
			continue
		}
		if alt := swapCase(r); alt != r && cs.Contains(alt) {
			out[i] = alt
			continue
		}
		out[i] = replacement
	}
	return string(out)
}

func swapCase(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	if unicode.IsLower(r) {
		return unicode.ToUpper(r)
	}
	return r
}

// Align pads text with spaces to width using the given justification.
// Text already at or beyond width is returned unchanged; callers that need
// truncation must chunk first.
func Align(text string, align Alignment, width int) string {
	pad := width - len([]rune(text))
	if pad <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

// IsNumeric reports whether s is an optionally signed decimal integer.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	digits := s
	if digits[0] == '+' || digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

const sciPrefix = "E+"

// FilterNumber fits the decimal representation of an integer into width
// cells. Numbers that fit pass through unchanged, as does any non-numeric
// input. Oversized numbers keep their leading digits and gain an E+<n>
// suffix where n counts the digits dropped; the exponent is recomputed
// until its own digit count stops eating further digits. When width leaves
// no room for even one digit plus the suffix, the unmodified string is
// returned.
func FilterNumber(value string, width int) string {
	if !IsNumeric(value) {
		return value
	}
	places := len(value)
	if places <= width {
		return value
	}
	if width-(len(sciPrefix)+1) <= 0 {
		return value
	}

	// Exponent fixed point: start assuming a single exponent digit, then
	// regrow until the suffix length is consistent with the digits it drops.
	exp := places - width + len(sciPrefix) + 1
	for {
		need := len(sciPrefix) + len(strconv.Itoa(exp))
		next := places - (width - need)
		if next == exp {
			break
		}
		exp = next
	}

	suffix := sciPrefix + strconv.Itoa(exp)
	keep := width - len(suffix)
	if keep < 1 {
		return value
	}
	return value[:keep] + suffix
}
