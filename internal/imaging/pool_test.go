package imaging

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	redraws []sinkCall
	signal  chan struct{}
}

type sinkCall struct {
	handle     Handle
	itemID     string
	generation uint64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{signal: make(chan struct{}, 64)}
}

func (s *recordingSink) CoverRedraw(handle Handle, itemID string, generation uint64) {
	s.mu.Lock()
	s.redraws = append(s.redraws, sinkCall{handle: handle, itemID: itemID, generation: generation})
	s.mu.Unlock()
	s.signal <- struct{}{}
}

func (s *recordingSink) wait(t *testing.T, n int) []sinkCall {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-s.signal:
		case <-deadline:
			t.Fatalf("timed out waiting for %d redraws", n)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sinkCall, len(s.redraws))
	copy(out, s.redraws)
	return out
}

func TestPool_DeliversAllItems(t *testing.T) {
	sink := newRecordingSink()
	pool := NewPool(2, sink)
	defer pool.Stop()

	proto := NewPicker().NewProtocol(testImage(10, 10))
	ids := []string{"a1", "a2", "a3"}
	for _, id := range ids {
		pool.Submit(Request{
			ItemID:     id,
			Generation: 7,
			Protocol:   proto,
			Policy:     ResizeFit,
			Area:       Rect{Width: 6, Height: 3},
		})
	}

	calls := sink.wait(t, len(ids))

	seen := map[string]bool{}
	for _, call := range calls {
		seen[call.itemID] = true
		assert.Equal(t, uint64(7), call.generation)
		assert.False(t, call.handle.Empty())
	}
	for _, id := range ids {
		assert.True(t, seen[id], "missing redraw for %s", id)
	}
}

func TestPool_CoalescesPerItem(t *testing.T) {
	// Exercise the queue directly: with no workers draining, a newer
	// request for the same id must replace the queued one.
	p := &Pool{
		pending: make(map[string]Request),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	proto := NewPicker().NewProtocol(testImage(4, 4))
	p.Submit(Request{ItemID: "a1", Protocol: proto, Area: Rect{Width: 2, Height: 2}})
	p.Submit(Request{ItemID: "a2", Protocol: proto, Area: Rect{Width: 3, Height: 3}})
	p.Submit(Request{ItemID: "a1", Protocol: proto, Area: Rect{Width: 9, Height: 9}})

	first, ok := p.take()
	require.True(t, ok)
	assert.Equal(t, "a1", first.ItemID)
	assert.Equal(t, Rect{Width: 9, Height: 9}, first.Area)

	second, ok := p.take()
	require.True(t, ok)
	assert.Equal(t, "a2", second.ItemID)

	_, ok = p.take()
	assert.False(t, ok)
}

func TestPool_SubmitIgnoresInvalid(t *testing.T) {
	p := &Pool{
		pending: make(map[string]Request),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	p.Submit(Request{ItemID: "", Protocol: NewPicker().NewProtocol(testImage(2, 2))})
	p.Submit(Request{ItemID: "a1", Protocol: nil})

	_, ok := p.take()
	assert.False(t, ok)
}

func TestPool_StopIsIdempotent(t *testing.T) {
	pool := NewPool(1, newRecordingSink())
	pool.Stop()
	pool.Stop()
}
