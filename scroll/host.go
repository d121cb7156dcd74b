package scroll

// Element reports the current bounding box of a laid-out element. ok is
// false when the element is detached from layout.
type Element interface {
	Rect() (r Rect, ok bool)
}

// ElementFunc adapts a function to Element.
type ElementFunc func() (Rect, bool)

// Rect implements Element.
func (f ElementFunc) Rect() (Rect, bool) { return f() }

// Host delivers viewport geometry and change notifications. Every
// subscription returns an idempotent unsubscribe function.
type Host interface {
	Viewport() Viewport
	OnScroll(fn func()) (unsubscribe func())
	OnResize(fn func()) (unsubscribe func())
}

// WheelEvent is one vertical wheel input.
type WheelEvent struct {
	DeltaY    float64
	prevented bool
}

// PreventDefault stops the host from scrolling the page for this event.
func (e *WheelEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *WheelEvent) DefaultPrevented() bool { return e.prevented }

// WheelSource delivers wheel events before the host acts on them.
type WheelSource interface {
	OnWheel(fn func(*WheelEvent)) (unsubscribe func())
}

// PageScroll is the process-wide page scroll suppression switch. While
// suppressed the page reports no scrollable overflow.
type PageScroll interface {
	ScrollSuppressed() bool
	SetScrollSuppressed(bool)
}

// LockHost is everything the lock controller needs from its host.
type LockHost interface {
	Host
	WheelSource
	PageScroll
}
