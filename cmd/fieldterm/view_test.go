package main

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/scroll"
)

func TestCellPainterRender(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < 4; y++ {
		for x := 3; x < 6; x++ {
			img.SetRGBA(x, y, white)
		}
	}

	p := newCellPainter()
	out := p.Render(img, 6, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 6 {
			t.Errorf("row %d: expected 6 cells, got %d", i, n)
		}
	}
	// Two colour pairs: black on black and white on white
	if len(p.styles) != 2 {
		t.Errorf("expected 2 cached styles, got %d", len(p.styles))
	}

	if p.Render(nil, 6, 2) != "" || p.Render(img, 0, 2) != "" {
		t.Error("expected empty output for nil image or zero size")
	}
}

func TestCellPainterSamplesLargerImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	out := newCellPainter().Render(img, 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if n := strings.Count(lines[0], halfBlock); n != 10 {
		t.Errorf("expected 10 cells, got %d", n)
	}
}

func TestProgressBar(t *testing.T) {
	testCases := []struct {
		p    float64
		want string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{-1, "░░░░"},
		{2, "████"},
	}
	for _, tc := range testCases {
		if got := progressBar(tc.p, 4); got != tc.want {
			t.Errorf("p=%v: expected %q, got %q", tc.p, tc.want, got)
		}
	}
}

func TestStatusLine(t *testing.T) {
	cards := []app.CardState{{Name: app.CardEntrance, Progress: 1}}
	s := statusLine(120, cards, app.LockState{Phase: scroll.Locked, Progress: 0.5})
	for _, want := range []string{"y=120", app.CardEntrance, "lock:" + scroll.Locked.String()} {
		if !strings.Contains(s, want) {
			t.Errorf("expected status to contain %q, got %q", want, s)
		}
	}
}
