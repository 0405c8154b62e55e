package tui

import (
	"image"
	"time"

	"github.com/orhun/manga-tui/internal/imaging"
	"github.com/orhun/manga-tui/internal/mangadex"
)

// PageState tracks where the search page is in its request cycle. A new
// search may only start when the page is not already searching.
type PageState int

const (
	PageIdle PageState = iota
	PageSearching
	PageDisplayingResults
)

// InputMode gates key routing: while typing, keys go to the search bar;
// otherwise they drive navigation.
type InputMode int

const (
	InputIdle InputMode = iota
	InputTyping
)

// Action is a user-originated request, carried to the page over its
// action channel.
type Action int

const (
	ActionStartTyping Action = iota
	ActionStopTyping
	ActionSearch
	ActionScrollUp
	ActionScrollDown
	ActionOpenCover
)

// pageEvent is a pipeline completion, carried to the page over its event
// channel and consumed at most one per tick. Every event is tagged with
// the generation of the search that spawned it.
type pageEvent interface {
	generation() uint64
}

// searchCompletedEvent reports the outcome of the search fetch stage.
type searchCompletedEvent struct {
	gen     uint64
	outcome mangadex.SearchOutcome
}

func (e searchCompletedEvent) generation() uint64 { return e.gen }

// coverBytesEvent carries raw cover bytes for one item. Arrival of bytes
// is itself the decode request; a nil payload means the item will never
// get artwork (fetch failed or no cover metadata existed).
type coverBytesEvent struct {
	gen  uint64
	id   string
	data []byte
}

func (e coverBytesEvent) generation() uint64 { return e.gen }

// coverReadyEvent carries a decoded raster for one item, nil on decode
// failure.
type coverReadyEvent struct {
	gen uint64
	id  string
	img image.Image
}

func (e coverReadyEvent) generation() uint64 { return e.gen }

// tickMsg drives the page's drain loop from the Bubble Tea side.
type tickMsg time.Time

// coverRedrawMsg delivers a finished cover encode from the resize pool
// back into the program.
type coverRedrawMsg struct {
	handle imaging.Handle
	itemID string
	gen    uint64
}
