package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "manga-tui"

var LogoLines = []string{
	"▄▄ ▄▄ ▄▄▄▄ ▄▄ ▄▄  ▄▄▄▄  ▄▄▄▄",
	"██▀█▀██ ██▄▄██ ██▀██ ██ ▄▄ ██▄▄██",
	"██   ██ ██  ██ ██ ██ ██▄▄█ ██  ██",
	"        — t u i —",
}

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

// GetWelcomeMessage renders the idle-page greeting.
func GetWelcomeMessage() string {
	var lines []string
	for i, line := range LogoLines {
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(true)
		lines = append(lines, style.Render(line))
	}

	lines = append(lines,
		"",
		lipgloss.NewStyle().Foreground(TextColor).Render("Search manga and preview covers in your terminal"),
		"",
		HelpStyle.Render("Press s to start typing a query"),
	)

	return strings.Join(lines, "\n")
}
