package scroll

import "sort"

// listeners is an ordered subscriber set. Dispatch works on a snapshot, so
// subscribers may unsubscribe while being called.
type listeners[F any] struct {
	next int
	subs map[int]F
}

func (ls *listeners[F]) add(fn F) func() {
	if ls.subs == nil {
		ls.subs = make(map[int]F)
	}
	ls.next++
	id := ls.next
	ls.subs[id] = fn
	return func() { delete(ls.subs, id) }
}

func (ls *listeners[F]) snapshot() []F {
	ids := make([]int, 0, len(ls.subs))
	for id := range ls.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]F, 0, len(ids))
	for _, id := range ids {
		out = append(out, ls.subs[id])
	}
	return out
}

func (ls *listeners[F]) len() int { return len(ls.subs) }

// Page is an in-memory scrolling document. It implements LockHost for
// terminal and window hosts that have no layout engine of their own, and
// for tests. A Page is used from one goroutine.
type Page struct {
	viewport      Viewport
	contentHeight float64
	scrollY       float64
	suppressed    bool

	scroll listeners[func()]
	resize listeners[func()]
	wheel  listeners[func(*WheelEvent)]
}

// NewPage creates a page of the given content height scrolled to the top.
func NewPage(viewport Viewport, contentHeight float64) *Page {
	return &Page{viewport: viewport, contentHeight: contentHeight}
}

// Viewport implements Host.
func (p *Page) Viewport() Viewport { return p.viewport }

// OnScroll implements Host.
func (p *Page) OnScroll(fn func()) func() { return p.scroll.add(fn) }

// OnResize implements Host.
func (p *Page) OnResize(fn func()) func() { return p.resize.add(fn) }

// OnWheel implements WheelSource.
func (p *Page) OnWheel(fn func(*WheelEvent)) func() { return p.wheel.add(fn) }

// ScrollSuppressed implements PageScroll.
func (p *Page) ScrollSuppressed() bool { return p.suppressed }

// SetScrollSuppressed implements PageScroll.
func (p *Page) SetScrollSuppressed(v bool) { p.suppressed = v }

// ScrollY returns the document offset at the top of the viewport.
func (p *Page) ScrollY() float64 { return p.scrollY }

// MaxScroll returns the scrollable overflow, zero while suppressed.
func (p *Page) MaxScroll() float64 {
	if p.suppressed {
		return 0
	}
	return max(0, p.contentHeight-p.viewport.Height)
}

// ScrollTo moves the viewport to document offset y, clamped to the
// scrollable range. It does nothing while scroll is suppressed.
func (p *Page) ScrollTo(y float64) {
	if p.suppressed {
		return
	}
	y = min(max(y, 0), p.MaxScroll())
	if y == p.scrollY {
		return
	}
	p.scrollY = y
	for _, fn := range p.scroll.snapshot() {
		fn()
	}
}

// Wheel dispatches a wheel event to interceptors, then scrolls the page by
// delta unless an interceptor prevented it. It reports whether the page
// handled the scroll.
func (p *Page) Wheel(deltaY float64) bool {
	ev := &WheelEvent{DeltaY: deltaY}
	for _, fn := range p.wheel.snapshot() {
		fn(ev)
	}
	if ev.DefaultPrevented() {
		return false
	}
	p.ScrollTo(p.scrollY + deltaY)
	return true
}

// SetContentHeight changes the document height, clamping the scroll offset.
func (p *Page) SetContentHeight(h float64) {
	p.contentHeight = h
	if !p.suppressed {
		p.scrollY = min(p.scrollY, p.MaxScroll())
	}
}

// Resize changes the viewport and notifies subscribers.
func (p *Page) Resize(v Viewport) {
	p.viewport = v
	if !p.suppressed {
		p.scrollY = min(p.scrollY, p.MaxScroll())
	}
	for _, fn := range p.resize.snapshot() {
		fn()
	}
}

// Subscribers returns the live scroll, resize and wheel subscription counts.
func (p *Page) Subscribers() (scroll, resize, wheel int) {
	return p.scroll.len(), p.resize.len(), p.wheel.len()
}

// Block is an element placed on a Page at a fixed document offset.
type Block struct {
	page     *Page
	top      float64
	height   float64
	detached bool
}

// Place adds a block at document offset top.
func (p *Page) Place(top, height float64) *Block {
	return &Block{page: p, top: top, height: height}
}

// Rect implements Element.
func (b *Block) Rect() (Rect, bool) {
	if b.detached {
		return Rect{}, false
	}
	return Rect{Top: b.top - b.page.scrollY, Height: b.height}, true
}

// Move changes the block's document offset and height.
func (b *Block) Move(top, height float64) { b.top, b.height = top, height }

// Remove detaches the block from layout.
func (b *Block) Remove() { b.detached = true }
