package scroll

import "fmt"

// Phase is the lock controller state.
type Phase int

const (
	// Idle: normal page scroll, waiting for the element to enter the viewport.
	Idle Phase = iota
	// Locked: page scroll suppressed, wheel input drives progress.
	Locked
	// Completed: progress reached 1; normal scroll restored for good.
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Locked:
		return "locked"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// DefaultSensitivity is the wheel delta that takes progress from 0 to 1.
const DefaultSensitivity = 5000.0

// LockController hijacks the page scroll while its element is first on
// screen, turning wheel input into progress until it reaches 1.
type LockController struct {
	element     Element
	sensitivity float64

	host       LockHost
	phase      Phase
	progress   float64
	lease      *Lease
	unsubWheel func()
	unsubs     []func()
	listeners  []func(Phase, float64)
}

// NewLockController creates an idle controller. A non-positive sensitivity
// uses DefaultSensitivity.
func NewLockController(element Element, sensitivity float64) *LockController {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return &LockController{element: element, sensitivity: sensitivity}
}

// Phase returns the current phase.
func (l *LockController) Phase() Phase { return l.phase }

// Progress returns the accumulated progress in [0,1].
func (l *LockController) Progress() float64 { return l.progress }

// OnChange registers fn to receive the phase and progress after every change.
func (l *LockController) OnChange(fn func(Phase, float64)) {
	l.listeners = append(l.listeners, fn)
}

// Attach binds the controller to host, checks for intersection
// immediately and on every scroll and resize.
func (l *LockController) Attach(host LockHost) {
	l.Detach()
	l.host = host
	if l.phase == Completed {
		return
	}
	l.unsubs = append(l.unsubs,
		host.OnScroll(l.check),
		host.OnResize(l.check),
	)
	l.check()
}

func (l *LockController) check() {
	if l.phase != Idle || l.host == nil {
		return
	}
	r, ok := l.element.Rect()
	if !ok || !r.Intersects(l.host.Viewport().Height) {
		return
	}
	l.lease = AcquireLease(l.host)
	l.unsubWheel = l.host.OnWheel(l.onWheel)
	l.phase = Locked
	l.notify()
}

func (l *LockController) onWheel(ev *WheelEvent) {
	if l.phase != Locked {
		return
	}
	ev.PreventDefault()
	l.progress = clamp01(l.progress + ev.DeltaY/l.sensitivity)
	if l.progress >= 1 {
		l.complete()
		return
	}
	l.notify()
}

func (l *LockController) complete() {
	l.release()
	l.phase = Completed
	l.notify()
}

// release drops the lease and every subscription.
func (l *LockController) release() {
	l.lease.Release()
	l.lease = nil
	if l.unsubWheel != nil {
		l.unsubWheel()
		l.unsubWheel = nil
	}
	for _, unsub := range l.unsubs {
		unsub()
	}
	l.unsubs = nil
}

func (l *LockController) notify() {
	for _, fn := range l.listeners {
		fn(l.phase, l.progress)
	}
}

// Detach restores page scroll and drops all subscriptions. A controller
// detached while locked returns to Idle with progress reset, so attaching
// again starts a fresh lock session. Completed stays completed. Detach is
// idempotent.
func (l *LockController) Detach() {
	l.release()
	l.host = nil
	if l.phase == Locked {
		l.phase = Idle
		l.progress = 0
	}
}
