package display

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes one serial port candidate.
type PortInfo struct {
	Device      string
	Description string
}

// ListPorts enumerates serial ports, sorted by device name and excluding
// ports without a description.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("display: list ports: %w", err)
	}
	var ports []PortInfo
	for _, d := range details {
		if d.Product == "" {
			continue
		}
		ports = append(ports, PortInfo{Device: d.Name, Description: d.Product})
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Device < ports[j].Device
	})
	return ports, nil
}

// ResolvePort picks a device name from ports. The key may be a device name
// or a 1-based index into the list; an empty or unmatched key falls back to
// the first port. Returns ErrNoPorts when the list is empty.
func ResolvePort(ports []PortInfo, key string) (string, error) {
	if len(ports) == 0 {
		return "", ErrNoPorts
	}
	if key != "" {
		for _, p := range ports {
			if p.Device == key {
				return p.Device, nil
			}
		}
		if idx, err := strconv.Atoi(key); err == nil && idx > 0 && idx <= len(ports) {
			return ports[idx-1].Device, nil
		}
	}
	return ports[0].Device, nil
}

// FormatPorts renders the port list for startup output, indexed at 1.
func FormatPorts(ports []PortInfo) string {
	if len(ports) == 0 {
		return "no serial ports available"
	}
	var sb strings.Builder
	sb.WriteString("Available serial ports:\n")
	for i, p := range ports {
		fmt.Fprintf(&sb, "[%2d] %s - %s\n", i+1, p.Device, p.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}
