package imaging

import (
	"sync"

	"github.com/orhun/manga-tui/internal/debuglog"
)

// RedrawSink receives finished cover encodes. The presentation layer
// supplies one at pool construction; the pool never touches UI state
// directly.
type RedrawSink interface {
	CoverRedraw(handle Handle, itemID string, generation uint64)
}

// Request asks the pool to encode one cover for a target area. The
// generation identifies which search spawned the cover, so stale
// completions can be dropped at the receiving end.
type Request struct {
	ItemID     string
	Generation uint64
	Protocol   *Protocol
	Policy     ResizePolicy
	Area       Rect
}

// Pool runs cover encodes on a bounded set of workers. Requests coalesce
// per item id: a newer request for an id replaces the queued one, so a
// burst of resizes for one cover performs only the latest.
type Pool struct {
	sink RedrawSink

	mu      sync.Mutex
	pending map[string]Request
	order   []string

	notify chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func NewPool(workers int, sink RedrawSink) *Pool {
	if workers <= 0 {
		workers = 2
	}

	p := &Pool{
		sink:    sink,
		pending: make(map[string]Request),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues a request without blocking. Requests with no protocol
// or id are dropped.
func (p *Pool) Submit(req Request) {
	if req.Protocol == nil || req.ItemID == "" {
		return
	}

	p.mu.Lock()
	if _, queued := p.pending[req.ItemID]; !queued {
		p.order = append(p.order, req.ItemID)
	}
	p.pending[req.ItemID] = req
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Stop shuts the workers down. Queued requests are abandoned.
func (p *Pool) Stop() {
	p.once.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

func (p *Pool) take() (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.order) > 0 {
		id := p.order[0]
		p.order = p.order[1:]
		req, ok := p.pending[id]
		if !ok {
			continue
		}
		delete(p.pending, id)
		return req, true
	}
	return Request{}, false
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		case <-p.notify:
			// Drain until empty so a coalesced wakeup cannot strand work.
			for {
				req, ok := p.take()
				if !ok {
					break
				}

				handle := req.Protocol.ResizeEncode(req.Policy, req.Area)
				debuglog.Debugf("encoded cover %s at %dx%d", req.ItemID, handle.Width, handle.Height)
				p.sink.CoverRedraw(handle, req.ItemID, req.Generation)

				select {
				case <-p.done:
					return
				default:
				}
			}
		}
	}
}
