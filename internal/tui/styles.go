package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/orhun/manga-tui/internal/config"
)

var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")
	TextColor      = lipgloss.Color("#EAEAEA")
	MutedColor     = lipgloss.Color("#94A3B8")
	ErrorColor     = lipgloss.Color("#F87171")
	SuccessColor   = lipgloss.Color("#4ADE80")

	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	TagStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)
)

// ApplyColors overrides the palette from the config. Empty values keep
// the defaults.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)

	TitleStyle = TitleStyle.Foreground(PrimaryColor)
	HelpStyle = HelpStyle.Foreground(MutedColor)
	SelectedItemStyle = SelectedItemStyle.Foreground(AccentColor)
	ItemStyle = ItemStyle.Foreground(TextColor)
	TagStyle = TagStyle.Foreground(SecondaryColor)
	ErrorStyle = ErrorStyle.Foreground(ErrorColor)
	StatusStyle = StatusStyle.Foreground(MutedColor)
}
