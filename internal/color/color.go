// Package color provides the terminal color theme used by the console
// reporter. Colors are adaptive so output stays readable on both dark
// and light terminal backgrounds, and they degrade gracefully when the
// terminal reports limited color support (lipgloss handles profile
// detection, including NO_COLOR).
package color

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic styles for console output. Status text and message prefixes
// are rendered through these so every command presents state the same way.
var (
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"})

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"})

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}).
		Bold(true)

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"})

	Command = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#57606a", Dark: "#8b949e"})

	Header = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}).
		Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#6e7681"})
)

// Initialize sets the background mode for adaptive color resolution.
// Callers that know the terminal background (e.g. from a flag) can force
// it; otherwise lipgloss auto-detects on first render.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}
