// Package theme holds the light and dark palettes of the terminal UI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

const (
	sand     = "#EFDFC5"
	maroon   = "#8E0B13"
	charcoal = "#121212"
	slate    = "#4C4F54"
	sky      = "#1E90FF"
	alarm    = "#E74C3C"
	mint     = "#2ECC71"
	grey     = "#8A8A8A"
)

type Styles struct {
	Mode     Mode
	Title    lipgloss.Style
	Header   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	OK       lipgloss.Style
	Panel    lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Link     lipgloss.Style
	Label    lipgloss.Style
	Toast    lipgloss.Style
	Button   lipgloss.Style
}

// Resolve maps a stored theme setting to a concrete mode. "auto" asks
// hasDark, which is lipgloss.HasDarkBackground outside of tests.
func Resolve(setting string, hasDark func() bool) Mode {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case string(Light):
		return Light
	case string(Dark):
		return Dark
	}
	if hasDark == nil {
		hasDark = lipgloss.HasDarkBackground
	}
	if hasDark() {
		return Dark
	}
	return Light
}

func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func New(mode Mode) Styles {
	fg, bg, accent, surface := charcoal, sand, maroon, lipgloss.Color("#FFFFFF")
	if mode == Dark {
		fg, bg, accent, surface = sand, charcoal, sand, lipgloss.Color(slate)
	} else {
		mode = Light
	}

	return Styles{
		Mode:     mode,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(bg)).Background(lipgloss.Color(accent)).Padding(0, 1),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(grey)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(alarm)).Bold(true),
		OK:       lipgloss.NewStyle().Foreground(lipgloss.Color(mint)).Bold(true),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(bg)).Background(lipgloss.Color(accent)).Bold(true),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(surface).Padding(0, 1),
		Link:     lipgloss.NewStyle().Foreground(lipgloss.Color(sky)).Underline(true),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg)),
		Toast:    lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(surface).Bold(true).Padding(0, 1),
		Button:   lipgloss.NewStyle().Foreground(lipgloss.Color(bg)).Background(lipgloss.Color(accent)).Bold(true).Padding(0, 2),
	}
}
