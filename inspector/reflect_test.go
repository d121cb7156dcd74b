package inspector

import (
	"testing"

	"github.com/pthm-cable/staticfield/components"
	"github.com/pthm-cable/staticfield/particles"
)

func TestParseTag(t *testing.T) {
	testCases := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"bool", WidgetBool, map[string]string{}},
		{"skip", WidgetSkip, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}

	for _, tc := range testCases {
		w, opts := ParseTag(tc.tag)
		if w != tc.widget {
			t.Errorf("%q: expected widget %v, got %v", tc.tag, tc.widget, w)
		}
		if len(opts) != len(tc.opts) {
			t.Errorf("%q: expected options %v, got %v", tc.tag, tc.opts, opts)
			continue
		}
		for k, v := range tc.opts {
			if opts[k] != v {
				t.Errorf("%q: expected %s=%s, got %s", tc.tag, k, v, opts[k])
			}
		}
	}
}

func TestExtractFields(t *testing.T) {
	type sample struct {
		Name    string
		Hidden  float64 `inspect:"skip"`
		Level   float64 `inspect:"bar,max:10"`
		On      bool
		private int
	}

	fields := ExtractFields(&sample{Name: "a", Level: 5, On: true})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Name != "Name" || fields[0].Widget != WidgetLabel {
		t.Errorf("expected Name label, got %+v", fields[0])
	}
	if fields[1].Widget != WidgetBar || GetMax(fields[1].Options) != 10 {
		t.Errorf("expected Level bar with max 10, got %+v", fields[1])
	}
	if fields[2].Widget != WidgetBool {
		t.Errorf("expected auto-detected bool, got %+v", fields[2])
	}

	if ExtractFields(42) != nil {
		t.Error("expected nil fields for non-struct")
	}
}

func TestExtractComponentFields(t *testing.T) {
	pos := ExtractFields(components.Position{X: 12.4, Y: 30})
	if len(pos) != 2 || FormatValue(pos[0].Value, pos[0].Options["fmt"]) != "12" {
		t.Errorf("expected formatted X, got %+v", pos)
	}

	dot := ExtractFields(components.Dot{Alpha: 0.5, Visible: true})
	if len(dot) != 2 || dot[0].Widget != WidgetBar || dot[1].Widget != WidgetBool {
		t.Errorf("expected alpha bar and visible bool, got %+v", dot)
	}
}

func TestFormatValue(t *testing.T) {
	testCases := []struct {
		value any
		fmt   string
		want  string
	}{
		{1.234, "", "1.23"},
		{float32(0.5), "", "0.50"},
		{7, "", "7"},
		{3.0, "%.0f", "3"},
		{true, "", "true"},
	}

	for _, tc := range testCases {
		if got := FormatValue(tc.value, tc.fmt); got != tc.want {
			t.Errorf("FormatValue(%v, %q): expected %q, got %q", tc.value, tc.fmt, tc.want, got)
		}
	}
}

func TestGetFloatValue(t *testing.T) {
	if v, ok := GetFloatValue(int32(4)); !ok || v != 4 {
		t.Errorf("expected 4, got %v %v", v, ok)
	}
	if _, ok := GetFloatValue("x"); ok {
		t.Error("expected string to be rejected")
	}
	if GetMax(map[string]string{"max": "bad"}) != 1 {
		t.Error("expected default max for unparsable option")
	}
	if barRatio(2, 1) != 1 || barRatio(-1, 1) != 0 {
		t.Error("expected bar ratio clamped to [0,1]")
	}
}

type gridSource struct{ g *particles.Grid }

func (s gridSource) Particle(x, y float64) (particles.Particle, bool) { return s.g.Nearest(x, y) }

func TestSelectAndRefresh(t *testing.T) {
	g := particles.NewGrid()
	g.Rebuild(60, 60, 6)
	ins := NewInspector(gridSource{g}, 800, 600)

	if !ins.Select(13, 11) {
		t.Fatal("expected a particle to be selected")
	}
	p, ok := ins.Selected()
	if !ok || p.Cell.Col != 2 || p.Cell.Row != 2 {
		t.Errorf("expected cell (2,2), got %+v", p.Cell)
	}

	g.Update(func(x, y float64) (float64, bool) { return 0.75, true })
	ins.Refresh()
	p, _ = ins.Selected()
	if p.Dot.Alpha != 0.75 || !p.Dot.Visible {
		t.Errorf("expected refreshed dot, got %+v", p.Dot)
	}

	g.Rebuild(0, 0, 6)
	ins.Refresh()
	if _, ok := ins.Selected(); ok {
		t.Error("expected selection dropped on empty grid")
	}
	if ins.Select(1, 1) {
		t.Error("expected no selection on empty grid")
	}
}

func TestPanelLayout(t *testing.T) {
	g := particles.NewGrid()
	g.Rebuild(60, 60, 6)
	ins := NewInspector(gridSource{g}, 800, 600)

	if ins.panelX != 800-PanelWidth-10 {
		t.Errorf("expected panel at right edge, got %d", ins.panelX)
	}
	empty := ins.panelHeight()
	ins.Select(0, 0)
	if ins.panelHeight() <= empty {
		t.Error("expected the panel to grow with a selection")
	}
	if !ins.overPanel(float32(ins.panelX+5), float32(ins.panelY+5)) {
		t.Error("expected point inside panel")
	}
	if ins.overPanel(5, 5) {
		t.Error("expected point outside panel")
	}
}
