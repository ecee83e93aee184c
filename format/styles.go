package format

import "github.com/charmbracelet/lipgloss"

const (
	colorGreen      = "#10B981"
	colorYellow     = "#F59E0B"
	colorRed        = "#EF4444"
	colorGray       = "#6B7280"
	colorPurple     = "#7C3AED"
	colorDetailGray = "#9CA3AF"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPurple))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorDetailGray))

	severityStyles = map[string]lipgloss.Style{
		"error":    lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true),
		"warn":     lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)).Bold(true),
		"off":      lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		"readonly": lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		"writable": lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
	}
)
