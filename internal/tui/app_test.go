package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orhun/manga-tui/internal/config"
	"github.com/orhun/manga-tui/internal/imaging"
	"github.com/orhun/manga-tui/internal/mangadex"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enterMsg() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escMsg() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func testApp(source ContentSource) *App {
	app := NewApp(config.TestConfig(), source, nil)
	app.page.SetSize(80, 24)
	return app
}

func TestApp_QuitKeys(t *testing.T) {
	app := testApp(&fakeSource{})
	defer app.Close()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitKeyTypesWhileTyping(t *testing.T) {
	app := testApp(&fakeSource{})
	defer app.Close()

	app.Update(keyMsg("s"))
	app.Update(tickMsg(time.Now()))
	require.Equal(t, InputTyping, app.page.Mode())

	_, cmd := app.Update(keyMsg("q"))
	assert.Nil(t, cmd, "q is text input while typing, not quit")
	assert.Equal(t, "q", app.page.input.Value())
}

func TestApp_WindowSize(t *testing.T) {
	app := testApp(&fakeSource{})
	defer app.Close()

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, app.page.width)
	assert.Equal(t, 40, app.page.height)
}

func TestApp_TickDrivesPage(t *testing.T) {
	app := testApp(&fakeSource{outcome: mangadex.EmptyOutcome()})
	defer app.Close()

	app.page.SubmitAction(ActionSearch)
	_, cmd := app.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick always re-arms")
	assert.Equal(t, PageSearching, app.page.State())
}

func TestApp_RedrawMessage(t *testing.T) {
	app := testApp(&fakeSource{})
	defer app.Close()

	item := &ResultItem{ID: "a1", cover: &coverState{}}
	app.page.results = []*ResultItem{item}

	handle := imaging.Handle{Lines: []string{"x"}, Width: 1, Height: 1}
	_, cmd := app.Update(coverRedrawMsg{handle: handle, itemID: "a1", gen: app.page.generation})

	assert.False(t, item.cover.handle.Empty())
	assert.NotNil(t, cmd, "redraw wait is re-armed")
}

func TestChannelSink_NeverBlocks(t *testing.T) {
	sink := &channelSink{ch: make(chan coverRedrawMsg, 1)}
	handle := imaging.Handle{Lines: []string{"x"}, Width: 1, Height: 1}

	sink.CoverRedraw(handle, "a1", 1)
	sink.CoverRedraw(handle, "a2", 1)

	msg := <-sink.ch
	assert.Equal(t, "a1", msg.itemID, "overflow drops the newest, keeps the queued one")
}

func TestApp_ViewRendersStates(t *testing.T) {
	app := testApp(&fakeSource{})
	defer app.Close()

	assert.NotEmpty(t, app.View())

	app.page.state = PageDisplayingResults
	app.page.outcome = mangadex.OutcomeFailed
	assert.Contains(t, app.View(), "search failed")
}
