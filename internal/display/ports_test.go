package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePort(t *testing.T) {
	ports := []PortInfo{
		{Device: "/dev/ttyACM0", Description: "Flap Controller"},
		{Device: "/dev/ttyUSB0", Description: "CH340 serial"},
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"by device name", "/dev/ttyUSB0", "/dev/ttyUSB0"},
		{"by index", "2", "/dev/ttyUSB0"},
		{"empty key defaults to first", "", "/dev/ttyACM0"},
		{"unknown key defaults to first", "/dev/ttyS99", "/dev/ttyACM0"},
		{"index out of range defaults to first", "9", "/dev/ttyACM0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePort(ports, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePortEmptyList(t *testing.T) {
	_, err := ResolvePort(nil, "")
	assert.ErrorIs(t, err, ErrNoPorts)
}

func TestFormatPorts(t *testing.T) {
	out := FormatPorts([]PortInfo{{Device: "/dev/ttyACM0", Description: "Flap Controller"}})
	assert.Contains(t, out, "[ 1] /dev/ttyACM0 - Flap Controller")

	assert.Equal(t, "no serial ports available", FormatPorts(nil))
}
