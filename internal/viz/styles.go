package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2).
			Width(44)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(10)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true).MarginTop(1)

	forcePos = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	forceNeg = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ForceBar renders u/max as a bar growing left or right from the centre.
// width is the number of cells on each side.
func ForceBar(u, max float64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	ratio := u / max
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	n := int(ratio * float64(width))

	left := strings.Repeat("░", width)
	right := strings.Repeat("░", width)
	if n < 0 {
		left = strings.Repeat("░", width+n) + forceNeg.Render(strings.Repeat("█", -n))
	} else if n > 0 {
		right = forcePos.Render(strings.Repeat("█", n)) + strings.Repeat("░", width-n)
	}
	return left + "│" + right
}
