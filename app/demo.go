package app

import (
	"log/slog"

	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/engine"
	"github.com/pthm-cable/staticfield/scroll"
)

// Card names on the demo page.
const (
	CardEntrance = "entrance"
	CardCenter   = "center"
	CardReveal   = "reveal"
)

// Layout of the demo page in viewport heights.
const (
	pageHeight  = 5.0
	cardHeight  = 0.25
	lockHeight  = 0.8
	entranceTop = 1.2
	centerTop   = 2.0
	revealTop   = 2.8
	lockTop     = 3.6
)

// CardState is one animated card as of the last update.
type CardState struct {
	Name        string
	Rect        scroll.Rect
	Progress    float64
	Translation scroll.Translation
}

// LockState is the scroll-locked section as of the last update.
type LockState struct {
	Rect     scroll.Rect
	Phase    scroll.Phase
	Progress float64
}

type card struct {
	name      string
	top       float64
	block     *scroll.Block
	ctrl      *scroll.Controller
	transform func(p float64) scroll.Translation
}

// Demo is a scrolling page of cards driven by the three progress policies
// and one scroll-locked section.
type Demo struct {
	page  *scroll.Page
	cards []*card

	lockBlock *scroll.Block
	lock      *scroll.LockController

	log *slog.Logger
}

// NewDemo lays out the demo page for a viewport and attaches every controller.
func NewDemo(cfg config.ScrollConfig, viewport scroll.Viewport, sched engine.Scheduler, log *slog.Logger) *Demo {
	d := &Demo{
		page: scroll.NewPage(viewport, viewport.Height*pageHeight),
		log:  log,
	}
	opts := scroll.ControllerOptions{Scheduler: sched}

	d.addCard(CardEntrance, entranceTop, cfg.EntranceSlide(), opts, func(p float64) scroll.Translation {
		return scroll.SlideX(p, cfg.StartOffsetPct)
	})
	d.addCard(CardCenter, centerTop, cfg.CenterDistance(), opts, func(p float64) scroll.Translation {
		return scroll.ViewportSlide(p, d.page.Viewport().Width, cfg.ViewportReach)
	})
	d.addCard(CardReveal, revealTop, cfg.RevealWindow(), opts, func(p float64) scroll.Translation {
		return scroll.RevealTransform(p, scroll.IsMobile(d.page.Viewport().Width))
	})

	d.lockBlock = d.page.Place(viewport.Height*lockTop, viewport.Height*lockHeight)
	d.lock = scroll.NewLockController(d.lockBlock, cfg.Sensitivity)
	d.lock.OnChange(d.lockChanged())
	d.lock.Attach(d.page)
	return d
}

func (d *Demo) addCard(name string, top float64, policy scroll.Policy, opts scroll.ControllerOptions, transform func(float64) scroll.Translation) {
	vh := d.page.Viewport().Height
	c := &card{
		name:      name,
		top:       top,
		block:     d.page.Place(vh*top, vh*cardHeight),
		transform: transform,
	}
	c.ctrl = scroll.NewController(c.block, policy, opts)
	c.ctrl.Attach(d.page)
	d.cards = append(d.cards, c)
}

func (d *Demo) lockChanged() func(scroll.Phase, float64) {
	last := scroll.Idle
	return func(ph scroll.Phase, _ float64) {
		if ph == last {
			return
		}
		last = ph
		d.log.Info("scroll lock", "phase", ph.String(), "scroll_y", d.page.ScrollY())
	}
}

// Page returns the underlying page.
func (d *Demo) Page() *scroll.Page { return d.page }

// Wheel feeds a wheel delta to the page.
func (d *Demo) Wheel(delta float64) bool { return d.page.Wheel(delta) }

// Resize re-lays out the page for a new viewport.
func (d *Demo) Resize(v scroll.Viewport) {
	for _, c := range d.cards {
		c.block.Move(v.Height*c.top, v.Height*cardHeight)
	}
	d.lockBlock.Move(v.Height*lockTop, v.Height*lockHeight)
	d.page.SetContentHeight(v.Height * pageHeight)
	d.page.Resize(v)
}

// Cards returns the current state of every card.
func (d *Demo) Cards() []CardState {
	out := make([]CardState, 0, len(d.cards))
	for _, c := range d.cards {
		r, _ := c.block.Rect()
		p := c.ctrl.Progress()
		out = append(out, CardState{Name: c.name, Rect: r, Progress: p, Translation: c.transform(p)})
	}
	return out
}

// Lock returns the current state of the locked section.
func (d *Demo) Lock() LockState {
	r, _ := d.lockBlock.Rect()
	return LockState{Rect: r, Phase: d.lock.Phase(), Progress: d.lock.Progress()}
}

// Close detaches every controller.
func (d *Demo) Close() {
	for _, c := range d.cards {
		c.ctrl.Detach()
	}
	d.lock.Detach()
}
