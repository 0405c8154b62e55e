package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/orhun/manga-tui/internal/config"
	"github.com/orhun/manga-tui/internal/debuglog"
	"github.com/orhun/manga-tui/internal/imaging"
	"github.com/orhun/manga-tui/internal/mangadex"
	"github.com/orhun/manga-tui/internal/media"
	"github.com/orhun/manga-tui/internal/storage"
)

const (
	actionQueueSize = 64
	eventQueueSize  = 256
	inputBarHeight  = 3
	statusBarHeight = 1
)

// ContentSource is the remote search API the page talks to. Both calls
// run off the UI goroutine.
type ContentSource interface {
	SearchManga(ctx context.Context, query string) mangadex.SearchOutcome
	GetCoverBytes(ctx context.Context, mangaID, fileName string) ([]byte, error)
}

// ResultItem is one search hit. Metadata never changes after creation;
// only the cover state is attached as the pipeline progresses.
type ResultItem struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	CoverFile   string

	cover *coverState
}

// coverState tracks the renderable artwork for one item. The protocol is
// created once decode succeeds; the handle is filled in (and replaced on
// resize) by the encode pool.
type coverState struct {
	proto         *imaging.Protocol
	handle        imaging.Handle
	requestedArea imaging.Rect
}

// SearchPage owns the result list, the page state machine, and both
// channel endpoints. All state mutation happens on the UI goroutine in
// OnTick/HandleKey/ApplyRedraw; background stages only send events.
type SearchPage struct {
	cfg    *config.Config
	source ContentSource
	store  *storage.Store
	picker *imaging.Picker
	pool   *imaging.Pool
	opener *media.Opener

	actions chan Action
	events  chan pageEvent

	input     textinput.Model
	spin      spinner.Model
	inputMode InputMode
	state     PageState

	results []*ResultItem
	cursor  int

	// generation identifies the current search; events and redraws
	// carrying an older generation are dropped on arrival.
	generation  uint64
	pipelineCtx context.Context
	cancel      context.CancelFunc

	outcome mangadex.OutcomeKind
	lastErr error
	recent  []storage.SearchRecord

	width  int
	height int

	renderer      *glamour.TermRenderer
	rendererWidth int
}

// NewSearchPage wires a page. The store and opener may be nil; the page
// then skips cover caching, history, and external viewing.
func NewSearchPage(cfg *config.Config, source ContentSource, store *storage.Store, picker *imaging.Picker, pool *imaging.Pool, opener *media.Opener) *SearchPage {
	input := textinput.New()
	input.Placeholder = "Search manga..."

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(AccentColor)

	sp := &SearchPage{
		cfg:     cfg,
		source:  source,
		store:   store,
		picker:  picker,
		pool:    pool,
		opener:  opener,
		actions: make(chan Action, actionQueueSize),
		events:  make(chan pageEvent, eventQueueSize),
		input:   input,
		spin:    spin,
		cursor:  -1,
	}

	sp.refreshRecent()
	return sp
}

// State returns the current page state.
func (sp *SearchPage) State() PageState { return sp.state }

// Mode returns the current input mode.
func (sp *SearchPage) Mode() InputMode { return sp.inputMode }

// Results returns the current result list.
func (sp *SearchPage) Results() []*ResultItem { return sp.results }

// Cursor returns the selection index, -1 when nothing is selected.
func (sp *SearchPage) Cursor() int { return sp.cursor }

// SetSize records the viewport dimensions used for layout and cover
// encoding.
func (sp *SearchPage) SetSize(width, height int) {
	sp.width = width
	sp.height = height
	inputWidth := width - 6
	if inputWidth < 10 {
		inputWidth = width
	}
	sp.input.Width = inputWidth
}

// SubmitAction enqueues a user action without blocking. Actions are
// applied on the next tick.
func (sp *SearchPage) SubmitAction(action Action) {
	select {
	case sp.actions <- action:
	default:
		debuglog.Warnf("action queue full, dropping action %d", action)
	}
}

// postEvent is the send side used by background pipeline stages.
func (sp *SearchPage) postEvent(event pageEvent) {
	select {
	case sp.events <- event:
	default:
		debuglog.Warnf("event queue full, dropping event for generation %d", event.generation())
	}
}

// HandleKey routes a key press according to the input mode: navigation
// keys become actions, everything else feeds the search bar while
// typing.
func (sp *SearchPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch sp.inputMode {
	case InputIdle:
		switch msg.String() {
		case sp.cfg.Keys.StartTyping:
			sp.SubmitAction(ActionStartTyping)
		case sp.cfg.Keys.ScrollDown:
			sp.SubmitAction(ActionScrollDown)
		case sp.cfg.Keys.ScrollUp:
			sp.SubmitAction(ActionScrollUp)
		case sp.cfg.Keys.OpenCover:
			sp.SubmitAction(ActionOpenCover)
		}
		return nil

	case InputTyping:
		switch msg.Type {
		case tea.KeyEnter:
			if sp.state != PageSearching {
				sp.SubmitAction(ActionSearch)
			}
			return nil
		case tea.KeyEsc:
			sp.SubmitAction(ActionStopTyping)
			return nil
		}
		var cmd tea.Cmd
		sp.input, cmd = sp.input.Update(msg)
		return cmd
	}
	return nil
}

// OnTick drains all pending user actions and at most one pipeline event.
// One event per frame keeps rendering responsive under bursts; it never
// blocks when nothing is pending.
func (sp *SearchPage) OnTick() {
drain:
	for {
		select {
		case action := <-sp.actions:
			sp.applyAction(action)
		default:
			break drain
		}
	}

	select {
	case event := <-sp.events:
		sp.applyEvent(event)
	default:
	}

	sp.requestSelectedResize()
}

func (sp *SearchPage) applyAction(action Action) {
	switch action {
	case ActionStartTyping:
		if sp.inputMode == InputIdle {
			sp.inputMode = InputTyping
			sp.input.Focus()
		}
	case ActionStopTyping:
		if sp.inputMode == InputTyping {
			sp.inputMode = InputIdle
			sp.input.Blur()
		}
	case ActionSearch:
		sp.startSearch()
	case ActionScrollUp:
		sp.scrollUp()
	case ActionScrollDown:
		sp.scrollDown()
	case ActionOpenCover:
		sp.openSelectedCover()
	}
}

// startSearch begins the fetch stage for the current query. A search in
// flight makes this a no-op; otherwise the list is cleared, the previous
// generation's pipelines are cancelled, and the fetch runs concurrently.
func (sp *SearchPage) startSearch() {
	if sp.state == PageSearching {
		return
	}

	query := sp.input.Value()

	sp.state = PageSearching
	sp.results = nil
	sp.cursor = -1
	sp.outcome = mangadex.OutcomeEmpty
	sp.lastErr = nil

	if sp.cancel != nil {
		sp.cancel()
	}
	sp.pipelineCtx, sp.cancel = context.WithCancel(context.Background())
	sp.generation++

	if sp.store != nil && strings.TrimSpace(query) != "" {
		if err := sp.store.RecordSearch(query); err != nil {
			debuglog.Warnf("recording search: %v", err)
		}
		sp.refreshRecent()
	}

	gen := sp.generation
	ctx := sp.pipelineCtx
	go func() {
		outcome := sp.source.SearchManga(ctx, query)
		sp.postEvent(searchCompletedEvent{gen: gen, outcome: outcome})
	}()
}

func (sp *SearchPage) applyEvent(event pageEvent) {
	if event.generation() != sp.generation {
		debuglog.Debugf("dropping stale event (generation %d, current %d)", event.generation(), sp.generation)
		return
	}

	switch e := event.(type) {
	case searchCompletedEvent:
		sp.applySearchCompleted(e)
	case coverBytesEvent:
		sp.applyCoverBytes(e)
	case coverReadyEvent:
		sp.applyCoverReady(e)
	}
}

// applySearchCompleted moves the page to DisplayingResults regardless of
// the outcome, rebuilds the list on success, and starts each item's
// cover fetch.
func (sp *SearchPage) applySearchCompleted(e searchCompletedEvent) {
	sp.state = PageDisplayingResults
	sp.outcome = e.outcome.Kind
	sp.lastErr = e.outcome.Err

	if e.outcome.Kind != mangadex.OutcomeOK {
		sp.results = nil
		sp.cursor = -1
		return
	}

	items := make([]*ResultItem, 0, len(e.outcome.Response.Data))
	for _, manga := range e.outcome.Response.Data {
		item := &ResultItem{
			ID:          manga.ID,
			Title:       manga.Attributes.Title.Preferred(),
			Description: manga.Attributes.Description.Preferred(),
			Tags:        manga.TagNames(),
			CoverFile:   manga.CoverFileName(),
		}
		items = append(items, item)

		if item.CoverFile != "" {
			sp.spawnCoverFetch(sp.pipelineCtx, e.gen, item.ID, item.CoverFile)
		} else {
			// No artwork to fetch; the nil payload keeps downstream state
			// consistent without spawning any pipeline work.
			sp.postEvent(coverBytesEvent{gen: e.gen, id: item.ID})
		}
	}

	sp.results = items
	sp.cursor = -1
}

// spawnCoverFetch runs the fetch stage for one item: cache first, then
// the network. Failure degrades to a nil payload.
func (sp *SearchPage) spawnCoverFetch(ctx context.Context, gen uint64, id, fileName string) {
	go func() {
		if sp.store != nil {
			if data, err := sp.store.GetCover(id, fileName); err == nil && len(data) > 0 {
				sp.postEvent(coverBytesEvent{gen: gen, id: id, data: data})
				return
			}
		}

		data, err := sp.source.GetCoverBytes(ctx, id, fileName)
		if err != nil {
			debuglog.Debugf("cover fetch for %s failed: %v", id, err)
			sp.postEvent(coverBytesEvent{gen: gen, id: id})
			return
		}

		if sp.store != nil {
			if err := sp.store.SaveCover(id, fileName, data); err != nil {
				debuglog.Warnf("caching cover for %s: %v", id, err)
			}
		}
		sp.postEvent(coverBytesEvent{gen: gen, id: id, data: data})
	}()
}

// applyCoverBytes starts the decode stage. A nil payload is dropped: the
// item simply never gets artwork, and no coverReadyEvent follows.
func (sp *SearchPage) applyCoverBytes(e coverBytesEvent) {
	if sp.findItem(e.id) == nil {
		return
	}
	if e.data == nil {
		return
	}

	gen, id, data := e.gen, e.id, e.data
	go func() {
		img, err := imaging.Decode(data)
		if err != nil {
			debuglog.Debugf("cover decode for %s failed: %v", id, err)
			sp.postEvent(coverReadyEvent{gen: gen, id: id})
			return
		}
		sp.postEvent(coverReadyEvent{gen: gen, id: id, img: img})
	}()
}

// applyCoverReady attaches the protocol for a decoded cover and queues
// its first encode.
func (sp *SearchPage) applyCoverReady(e coverReadyEvent) {
	if e.img == nil {
		return
	}

	item := sp.findItem(e.id)
	if item == nil {
		return
	}

	item.cover = &coverState{proto: sp.picker.NewProtocol(e.img)}

	area := sp.coverArea()
	if area.Width > 0 && area.Height > 0 && sp.pool != nil {
		item.cover.requestedArea = area
		sp.pool.Submit(imaging.Request{
			ItemID:     e.id,
			Generation: e.gen,
			Protocol:   item.cover.proto,
			Policy:     imaging.ResizeFit,
			Area:       area,
		})
	}
}

// ApplyRedraw installs a finished encode. Redraws from a superseded
// search, or for an id no longer in the list, mutate nothing.
func (sp *SearchPage) ApplyRedraw(handle imaging.Handle, itemID string, gen uint64) {
	if gen != sp.generation {
		return
	}
	item := sp.findItem(itemID)
	if item == nil || item.cover == nil {
		return
	}
	item.cover.handle = handle
}

// requestSelectedResize re-encodes the selected item's cover when the
// preview area changed since the last request.
func (sp *SearchPage) requestSelectedResize() {
	item := sp.selected()
	if item == nil || item.cover == nil || sp.pool == nil {
		return
	}

	area := sp.coverArea()
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	if item.cover.requestedArea == area {
		return
	}

	item.cover.requestedArea = area
	sp.pool.Submit(imaging.Request{
		ItemID:     item.ID,
		Generation: sp.generation,
		Protocol:   item.cover.proto,
		Policy:     imaging.ResizeFit,
		Area:       area,
	})
}

func (sp *SearchPage) findItem(id string) *ResultItem {
	for _, item := range sp.results {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (sp *SearchPage) selected() *ResultItem {
	if sp.cursor < 0 || sp.cursor >= len(sp.results) {
		return nil
	}
	return sp.results[sp.cursor]
}

func (sp *SearchPage) scrollDown() {
	if len(sp.results) == 0 {
		sp.cursor = -1
		return
	}
	if sp.cursor < 0 {
		sp.cursor = 0
		return
	}
	if sp.cursor < len(sp.results)-1 {
		sp.cursor++
	}
}

func (sp *SearchPage) scrollUp() {
	if len(sp.results) == 0 {
		sp.cursor = -1
		return
	}
	if sp.cursor < 0 {
		sp.cursor = 0
		return
	}
	if sp.cursor > 0 {
		sp.cursor--
	}
}

func (sp *SearchPage) openSelectedCover() {
	item := sp.selected()
	if item == nil || item.CoverFile == "" || sp.opener == nil || sp.store == nil {
		return
	}

	data, err := sp.store.GetCover(item.ID, item.CoverFile)
	if err != nil || len(data) == 0 {
		debuglog.Debugf("no cached cover to open for %s", item.ID)
		return
	}

	fileName := item.CoverFile
	opener := sp.opener
	go func() {
		if err := opener.OpenCover(data, fileName); err != nil {
			debuglog.Warnf("opening cover: %v", err)
		}
	}()
}

func (sp *SearchPage) refreshRecent() {
	if sp.store == nil {
		return
	}
	records, err := sp.store.RecentSearches(5)
	if err != nil {
		debuglog.Warnf("loading recent searches: %v", err)
		return
	}
	sp.recent = records
}

// coverArea is the cell rectangle the preview pane offers to artwork.
func (sp *SearchPage) coverArea() imaging.Rect {
	_, previewWidth, bodyHeight := sp.layout()
	return imaging.Rect{
		Width:  previewWidth - 4,
		Height: bodyHeight / 2,
	}
}

func (sp *SearchPage) layout() (listWidth, previewWidth, bodyHeight int) {
	listWidth = sp.width * 2 / 5
	previewWidth = sp.width - listWidth
	bodyHeight = sp.height - inputBarHeight - statusBarHeight
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	return listWidth, previewWidth, bodyHeight
}
