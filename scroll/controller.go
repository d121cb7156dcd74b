package scroll

import (
	"time"

	"github.com/pthm-cable/staticfield/engine"
)

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	// Scheduler, when set, coalesces scroll notifications so progress is
	// recomputed at most once per frame. Attach and resize always update
	// immediately.
	Scheduler engine.Scheduler
}

// Controller recomputes an element's progress from a Policy whenever the
// host scrolls or resizes.
type Controller struct {
	element Element
	policy  Policy
	opts    ControllerOptions

	host      Host
	unsubs    []func()
	pending   engine.FrameHandle
	progress  float64
	listeners []func(float64)
}

// NewController creates a detached controller.
func NewController(element Element, policy Policy, opts ControllerOptions) *Controller {
	return &Controller{element: element, policy: policy, opts: opts}
}

// Attach binds the controller to host, computes progress immediately and
// subscribes to scroll and resize. Attaching an attached controller
// detaches it first.
func (c *Controller) Attach(host Host) {
	c.Detach()
	c.host = host
	c.unsubs = append(c.unsubs,
		host.OnScroll(c.onScroll),
		host.OnResize(c.Update),
	)
	c.Update()
}

// OnChange registers fn to receive progress after every change.
func (c *Controller) OnChange(fn func(progress float64)) {
	c.listeners = append(c.listeners, fn)
}

// Progress returns the last computed progress.
func (c *Controller) Progress() float64 { return c.progress }

// Update recomputes progress from current geometry. A detached element
// keeps the last known progress.
func (c *Controller) Update() {
	if c.host == nil {
		return
	}
	r, ok := c.element.Rect()
	if !ok {
		return
	}
	p := clamp01(c.policy.Progress(r, c.host.Viewport().Height))
	if p == c.progress {
		return
	}
	c.progress = p
	for _, fn := range c.listeners {
		fn(p)
	}
}

func (c *Controller) onScroll() {
	if c.opts.Scheduler == nil {
		c.Update()
		return
	}
	if c.pending != 0 {
		return
	}
	c.pending = c.opts.Scheduler.RequestFrame(func(time.Time) {
		c.pending = 0
		c.Update()
	})
}

// Detach drops all subscriptions and any pending update. It is idempotent.
func (c *Controller) Detach() {
	if c.pending != 0 {
		c.opts.Scheduler.CancelFrame(c.pending)
		c.pending = 0
	}
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
	c.host = nil
}
