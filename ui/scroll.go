package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/scroll"
)

// ScrollPanel draws the scroll demo page over the field: each card at its
// viewport rect shifted by its translation, and the locked section with its
// progress bar.
type ScrollPanel struct {
	renderer *Renderer
}

// NewScrollPanel creates a scroll demo panel.
func NewScrollPanel() *ScrollPanel {
	return &ScrollPanel{renderer: NewRenderer()}
}

var cardSections = []SectionDescriptor{
	{
		ID: "card",
		Fields: []FieldDescriptor{
			{ID: "progress", Label: "Progress", Widget: WidgetBar, Getter: func(d any) float64 { return d.(app.CardState).Progress }},
			{ID: "transform", Label: "Transform", Widget: WidgetText, TextGetter: func(d any) string { return d.(app.CardState).Translation.String() }},
		},
	},
}

// Draw renders cards and the lock section for a viewport of the given width.
func (s *ScrollPanel) Draw(cards []app.CardState, lock app.LockState, width, height int32, scrollY float64) {
	r := s.renderer
	cardW := width / 3

	for _, c := range cards {
		dx, dy := CardOffset(c.Translation, float64(cardW))
		x := (width-cardW)/2 + int32(dx)
		y := int32(c.Rect.Top + dy)
		h := int32(c.Rect.Height)
		if y+h < 0 || y > height {
			continue
		}

		r.DrawPanel(x, y, cardW, h)
		ty := r.DrawSectionHeader(x+r.Theme.Padding, y+r.Theme.Padding, c.Name)
		for _, sd := range cardSections {
			ty = r.DrawSection(x+r.Theme.Padding, ty, sd, c, cardW-r.Theme.Padding*2)
		}
	}

	s.drawLock(lock, width, height)

	rl.DrawText(fmt.Sprintf("scroll %.0f", scrollY), width-110, height-25, 14, rl.Gray)
}

func (s *ScrollPanel) drawLock(lock app.LockState, width, height int32) {
	r := s.renderer
	y := int32(lock.Rect.Top)
	h := int32(lock.Rect.Height)
	if y+h < 0 || y > height {
		return
	}

	x := width / 6
	w := width - 2*x
	r.DrawPanel(x, y, w, h)

	border := r.Theme.PanelBorder
	switch lock.Phase {
	case scroll.Locked:
		border = rl.Yellow
	case scroll.Completed:
		border = r.Theme.BarFillDone
	}
	rl.DrawRectangleLines(x, y, w, h, border)

	ty := r.DrawSectionHeader(x+r.Theme.Padding, y+r.Theme.Padding, "Scroll Lock: "+lock.Phase.String())
	r.DrawBar(x+r.Theme.Padding, ty, "Progress", lock.Progress, w-r.Theme.Padding*2)
}

// CardOffset converts a translation to a pixel offset for a card of width w.
// Percentages are relative to the card's own width.
func CardOffset(t scroll.Translation, w float64) (dx, dy float64) {
	v := t.Value
	if t.Unit == scroll.Percent {
		v = v / 100 * w
	}
	if t.Axis == scroll.AxisY {
		return 0, v
	}
	return v, 0
}
