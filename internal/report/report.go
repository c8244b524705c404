// Package report renders terminal summaries for the CLI.
package report

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one label/value line of a summary.
type Row struct {
	Label string
	Value string
}

func Float(label string, v float64) Row {
	return Row{Label: label, Value: strconv.FormatFloat(v, 'g', 6, 64)}
}

func Int(label string, v int) Row {
	return Row{Label: label, Value: strconv.Itoa(v)}
}

func Text(label, v string) Row {
	return Row{Label: label, Value: v}
}

// Summary renders rows as an aligned two-column panel under title.
func Summary(title string, rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Title.Render(title))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r.Label))
		lines = append(lines, Label.Render(r.Label+pad)+"  "+Value.Render(r.Value))
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Warning renders msg as a highlighted one-liner.
func Warning(msg string) string {
	return Warn.Render("! " + msg)
}

// Sparkline renders a mini sparkline from values
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// Sample to fit width
	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

// Separator draws a decorative rule of the given width.
func Separator(width int) string {
	if width < 7 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
