package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/orhun/manga-tui/internal/debuglog"
	"github.com/orhun/manga-tui/internal/mangadex"
)

// View renders the whole page. Rendering reads state but never touches
// the pipeline; resize requests are issued from OnTick instead.
func (sp *SearchPage) View() string {
	if sp.width <= 0 || sp.height <= 0 {
		return ""
	}

	listWidth, previewWidth, bodyHeight := sp.layout()

	var b strings.Builder
	b.WriteString(sp.renderInputBar())
	b.WriteString("\n")

	switch sp.state {
	case PageIdle:
		b.WriteString(sp.renderWelcome(bodyHeight))
	case PageSearching:
		b.WriteString(sp.renderSearching(bodyHeight))
	case PageDisplayingResults:
		body := lipgloss.JoinHorizontal(
			lipgloss.Top,
			sp.renderList(listWidth, bodyHeight),
			sp.renderPreview(previewWidth, bodyHeight),
		)
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(sp.renderStatusBar())
	return b.String()
}

func (sp *SearchPage) renderInputBar() string {
	title := "Search"
	if sp.inputMode == InputTyping {
		title = "Search (typing)"
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SecondaryColor).
		Padding(0, 1).
		Width(sp.width - 2)
	if sp.inputMode == InputTyping {
		border = border.BorderForeground(PrimaryColor)
	}

	return border.Render(TitleStyle.Render(title) + " " + sp.input.View())
}

func (sp *SearchPage) renderWelcome(height int) string {
	var lines []string
	lines = append(lines, GetWelcomeMessage())

	if len(sp.recent) > 0 {
		lines = append(lines, "", HelpStyle.Render("Recent searches:"))
		for _, rec := range sp.recent {
			lines = append(lines, ItemStyle.Render("  "+rec.Query))
		}
	}

	return lipgloss.Place(sp.width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

func (sp *SearchPage) renderSearching(height int) string {
	msg := sp.spin.View() + " " + StatusStyle.Render("Searching...")
	return lipgloss.Place(sp.width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (sp *SearchPage) renderList(width, height int) string {
	if len(sp.results) == 0 {
		var msg string
		switch sp.outcome {
		case mangadex.OutcomeFailed:
			msg = ErrorStyle.Render("search failed")
		default:
			msg = HelpStyle.Render("no results")
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	maxTitle := width - 4
	if maxTitle < 1 {
		maxTitle = 1
	}

	var lines []string
	for i, item := range sp.results {
		title := truncate.StringWithTail(item.Title, uint(maxTitle), "…")
		if i == sp.cursor {
			lines = append(lines, SelectedItemStyle.Render("> "+title))
		} else {
			lines = append(lines, ItemStyle.Render("  "+title))
		}
		if len(lines) >= height {
			break
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func (sp *SearchPage) renderPreview(width, height int) string {
	item := sp.selected()
	if item == nil {
		hint := HelpStyle.Render(fmt.Sprintf("%s / %s to browse results", sp.cfg.Keys.ScrollDown, sp.cfg.Keys.ScrollUp))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, hint)
	}

	var sections []string
	sections = append(sections, TitleStyle.Render(item.Title))

	if len(item.Tags) > 0 {
		sections = append(sections, TagStyle.Render(strings.Join(item.Tags, " · ")))
	}

	if item.cover != nil && !item.cover.handle.Empty() {
		sections = append(sections, strings.Join(item.cover.handle.Lines, "\n"))
	}

	if desc := sp.renderDescription(item.Description, width-4); desc != "" {
		sections = append(sections, desc)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(strings.Join(sections, "\n\n"))
}

// renderDescription runs the markdown body through glamour, caching the
// renderer until the wrap width changes.
func (sp *SearchPage) renderDescription(markdown string, width int) string {
	if markdown == "" || width < 10 {
		return ""
	}
	if min := sp.cfg.UI.WordWrapMinWidth; min > 0 && width < min {
		width = min
	}
	if max := sp.cfg.UI.WordWrapMaxWidth; max > 0 && width > max {
		width = max
	}

	if n := sp.cfg.UI.MaxDescriptionLength; n > 0 && len(markdown) > n {
		markdown = markdown[:n] + "…"
	}

	if sp.renderer == nil || sp.rendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			debuglog.Warnf("creating markdown renderer: %v", err)
			return markdown
		}
		sp.renderer = renderer
		sp.rendererWidth = width
	}

	out, err := sp.renderer.Render(markdown)
	if err != nil {
		debuglog.Debugf("rendering description: %v", err)
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

func (sp *SearchPage) renderStatusBar() string {
	var parts []string

	switch sp.state {
	case PageSearching:
		parts = append(parts, "searching")
	case PageDisplayingResults:
		switch sp.outcome {
		case mangadex.OutcomeFailed:
			msg := "search failed"
			if sp.lastErr != nil {
				msg = fmt.Sprintf("search failed: %v", sp.lastErr)
			}
			return ErrorStyle.Render(truncate.StringWithTail(msg, uint(max(sp.width-1, 1)), "…"))
		case mangadex.OutcomeEmpty:
			parts = append(parts, "no results")
		default:
			parts = append(parts, fmt.Sprintf("%d results", len(sp.results)))
		}
	}

	keys := sp.cfg.Keys
	if sp.inputMode == InputTyping {
		parts = append(parts, "enter search", "esc stop typing")
	} else {
		parts = append(parts, keys.StartTyping+" type",
			keys.ScrollDown+"/"+keys.ScrollUp+" move",
			keys.OpenCover+" open cover",
			keys.Quit+" quit")
	}

	return StatusStyle.Render(strings.Join(parts, " │ "))
}
