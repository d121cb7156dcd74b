package engine

import (
	"sort"
	"sync"
	"time"
)

// FrameHandle identifies a requested frame. Zero is never a valid handle.
type FrameHandle uint64

// Scheduler delivers frame callbacks, one per request.
//
// CancelFrame must invalidate the handle synchronously: once it returns the
// callback will not run. Implementations must not invoke callbacks from
// inside RequestFrame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// ResizeSource notifies subscribers of host viewport changes.
type ResizeSource interface {
	OnResize(fn func(width, height int, dpr float64)) (unsubscribe func())
}

// ManualScheduler queues frame requests until Step runs them. It drives
// headless renders and tests.
type ManualScheduler struct {
	mu      sync.Mutex
	next    FrameHandle
	pending map[FrameHandle]func(time.Time)
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[FrameHandle]func(time.Time))}
}

// RequestFrame implements Scheduler.
func (s *ManualScheduler) RequestFrame(fn func(now time.Time)) FrameHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = fn
	return s.next
}

// CancelFrame implements Scheduler.
func (s *ManualScheduler) CancelFrame(h FrameHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, h)
}

// Pending returns the number of queued frames.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Step runs every frame queued before the call, in request order, and
// returns how many ran. Frames requested by those callbacks wait for the
// next Step.
func (s *ManualScheduler) Step(now time.Time) int {
	s.mu.Lock()
	handles := make([]FrameHandle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	s.mu.Unlock()
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, h := range handles {
		s.mu.Lock()
		fn, ok := s.pending[h]
		delete(s.pending, h)
		s.mu.Unlock()
		if !ok {
			continue // cancelled by an earlier callback
		}
		fn(now)
		ran++
	}
	return ran
}

// ResizeBus is a ResizeSource that hosts feed with Emit.
type ResizeBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(width, height int, dpr float64)
}

// NewResizeBus creates a bus with no subscribers.
func NewResizeBus() *ResizeBus {
	return &ResizeBus{subs: make(map[int]func(int, int, float64))}
}

// OnResize implements ResizeSource. The returned function is idempotent.
func (b *ResizeBus) OnResize(fn func(width, height int, dpr float64)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Emit delivers a resize to every subscriber in subscription order.
func (b *ResizeBus) Emit(width, height int, dpr float64) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(int, int, float64), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(width, height, dpr)
	}
}

// Subscribers returns the number of live subscriptions.
func (b *ResizeBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
