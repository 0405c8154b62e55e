package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orhun/manga-tui/internal/config"
	"github.com/orhun/manga-tui/internal/debuglog"
	"github.com/orhun/manga-tui/internal/imaging"
	"github.com/orhun/manga-tui/internal/media"
	"github.com/orhun/manga-tui/internal/storage"
)

// channelSink forwards pool completions into the program's message loop.
// The send never blocks; under overflow a redraw is dropped and the
// cover stays at its previous handle until the next area change.
type channelSink struct {
	ch chan coverRedrawMsg
}

func (s *channelSink) CoverRedraw(handle imaging.Handle, itemID string, generation uint64) {
	select {
	case s.ch <- coverRedrawMsg{handle: handle, itemID: itemID, gen: generation}:
	default:
		debuglog.Warnf("redraw channel full, dropping redraw for %s", itemID)
	}
}

// App is the Bubble Tea model hosting the search page.
type App struct {
	cfg  *config.Config
	page *SearchPage
	pool *imaging.Pool
	sink *channelSink
}

func NewApp(cfg *config.Config, source ContentSource, store *storage.Store) *App {
	ApplyColors(cfg.UI.Colors)

	sink := &channelSink{ch: make(chan coverRedrawMsg, eventQueueSize)}
	pool := imaging.NewPool(cfg.UI.CoverWorkers, sink)
	picker := imaging.NewPicker()
	opener := media.NewOpener(cfg)

	return &App{
		cfg:  cfg,
		page: NewSearchPage(cfg, source, store, picker, pool, opener),
		pool: pool,
		sink: sink,
	}
}

// Close releases pipeline resources. Call after the program exits.
func (a *App) Close() {
	a.pool.Stop()
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.cfg.UI.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) waitForRedraw() tea.Cmd {
	return func() tea.Msg {
		return <-a.sink.ch
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		a.tick(),
		a.waitForRedraw(),
		a.page.spin.Tick,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.page.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.page.Mode() == InputIdle && msg.String() == a.cfg.Keys.Quit {
			return a, tea.Quit
		}
		return a, a.page.HandleKey(msg)

	case tickMsg:
		a.page.OnTick()
		return a, a.tick()

	case coverRedrawMsg:
		a.page.ApplyRedraw(msg.handle, msg.itemID, msg.gen)
		return a, a.waitForRedraw()

	default:
		var cmd tea.Cmd
		a.page.spin, cmd = a.page.spin.Update(msg)
		return a, cmd
	}
}

func (a *App) View() string {
	return a.page.View()
}
