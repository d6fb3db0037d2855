package textfmt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterText(t *testing.T) {
	cs := DefaultCharset

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"all renderable", "HELLO 123", "HELLO 123"},
		{"case swapped", "hello", "HELLO"},
		{"mixed case", "Split-Flap", "SPLIT-FLAP"},
		{"unsupported replaced", "A*B", "A?B"},
		{"unicode replaced", "café", "CAF?"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterText(tt.in, cs, ReplacementChar))
		})
	}
}

func TestFilterTextIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "café ~latte~", "UPPER lower 42"}
	for _, in := range inputs {
		once := FilterText(in, DefaultCharset, ReplacementChar)
		twice := FilterText(once, DefaultCharset, ReplacementChar)
		assert.Equal(t, once, twice, "filtering %q twice changed the result", in)
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		align Alignment
		width int
		want  string
	}{
		{"left", "AB", AlignLeft, 5, "AB   "},
		{"right", "AB", AlignRight, 5, "   AB"},
		{"center odd pad", "AB", AlignCenter, 5, " AB  "},
		{"center even pad", "AB", AlignCenter, 6, "  AB  "},
		{"exact width", "ABCDE", AlignLeft, 5, "ABCDE"},
		{"too long unchanged", "ABCDEFGH", AlignRight, 5, "ABCDEFGH"},
		{"empty", "", AlignLeft, 3, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Align(tt.text, tt.align, tt.width))
		})
	}
}

func TestParseAlignment(t *testing.T) {
	assert.Equal(t, AlignRight, ParseAlignment("Right"))
	assert.Equal(t, AlignCenter, ParseAlignment("CENTER"))
	assert.Equal(t, AlignCenter, ParseAlignment("centre"))
	assert.Equal(t, AlignLeft, ParseAlignment("left"))
	assert.Equal(t, AlignLeft, ParseAlignment("bogus"))
}

func TestAlignmentInvert(t *testing.T) {
	assert.Equal(t, AlignRight, AlignLeft.Invert())
	assert.Equal(t, AlignLeft, AlignRight.Invert())
	assert.Equal(t, AlignCenter, AlignCenter.Invert())
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("123"))
	assert.True(t, IsNumeric("+5"))
	assert.True(t, IsNumeric("-17"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("+"))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("1.5"))
}

func TestFilterNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"fits unchanged", "1234", 8, "1234"},
		{"exact width", "12345678", 8, "12345678"},
		{"non-numeric passthrough", "New Vid!", 8, "New Vid!"},
		{"nine digits at width eight", "123456789", 8, "12345E+4"},
		{"ten digits at width eight", "1234567890", 8, "12345E+5"},
		{"no room for suffix", "12345", 3, "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterNumber(tt.value, tt.width))
		})
	}
}

func TestFilterNumberMultiDigitExponent(t *testing.T) {
	// Twenty digits at width eight: the exponent itself takes two digits,
	// so one more leading digit has to go.
	value := strings.Repeat("9", 20)
	got := FilterNumber(value, 8)
	assert.Equal(t, "9999E+16", got)
	assert.LessOrEqual(t, len(got), 8)
}

func TestFilterNumberLengthInvariant(t *testing.T) {
	// Whenever the function modifies its input, the result must fit. The
	// only escape hatch is returning the value unchanged when no suffix
	// could ever fit (documented limitation).
	for width := 4; width <= 12; width++ {
		for digits := 1; digits <= 25; digits++ {
			value := "1" + strings.Repeat("0", digits-1)
			got := FilterNumber(value, width)
			if got != value {
				assert.LessOrEqual(t, len(got), width,
					"width=%d digits=%d got=%q", width, digits, got)
			} else if digits > width {
				// Unchanged despite overflow: only acceptable when even a
				// one-digit mantissa cannot fit next to the suffix.
				suffixLen := len(sciPrefix) + len(strconv.Itoa(digits))
				assert.Less(t, width-suffixLen, 1,
					"width=%d digits=%d left unmodified but a truncation fits", width, digits)
			}
		}
	}
}

func TestFilterNumberIdempotentWhenShort(t *testing.T) {
	once := FilterNumber("4321", 8)
	require.Equal(t, "4321", once)
	assert.Equal(t, once, FilterNumber(once, 8))
}
