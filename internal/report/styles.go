package report

import "github.com/charmbracelet/lipgloss"

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	// Sparkline bar colors
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)
