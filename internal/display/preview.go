package display

import "github.com/charmbracelet/lipgloss"

// --- Styles ---

var (
	flapStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#353533")).
			Padding(0, 1)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))
)

// RenderPreview renders one display line as a framed row of flap cells,
// used in demo mode to show what the hardware would display.
func RenderPreview(line string) string {
	cells := make([]string, 0, len(line))
	for _, r := range line {
		cells = append(cells, flapStyle.Render(string(r)))
	}
	if len(cells) == 0 {
		cells = append(cells, flapStyle.Render(" "))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return frameStyle.Render(row)
}
