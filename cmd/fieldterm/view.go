package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/scroll"
)

// halfBlock shows the top pixel as foreground and the bottom as background.
const halfBlock = "▀"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e90ff"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	lockStyles = map[scroll.Phase]lipgloss.Style{
		scroll.Idle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		scroll.Locked:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")),
		scroll.Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("#32cd32")),
	}
	footerStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#888888"))
)

type cellKey struct{ top, bottom color.RGBA }

// cellPainter renders runs of identical half-block cells, caching one
// style per colour pair.
type cellPainter struct {
	styles map[cellKey]lipgloss.Style
}

func newCellPainter() *cellPainter {
	return &cellPainter{styles: make(map[cellKey]lipgloss.Style)}
}

func (p *cellPainter) style(k cellKey) lipgloss.Style {
	s, ok := p.styles[k]
	if !ok {
		s = lipgloss.NewStyle().
			Foreground(lipgloss.Color(hexColor(k.top))).
			Background(lipgloss.Color(hexColor(k.bottom)))
		p.styles[k] = s
	}
	return s
}

// Render draws img into cols x rows cells, sampling two pixel rows per cell.
func (p *cellPainter) Render(img *image.RGBA, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		topY := b.Min.Y + (2*row)*b.Dy()/(2*rows)
		botY := b.Min.Y + (2*row+1)*b.Dy()/(2*rows)

		run, start := cellKey{}, 0
		for col := 0; col <= cols; col++ {
			var k cellKey
			if col < cols {
				x := b.Min.X + col*b.Dx()/cols
				k = cellKey{top: img.RGBAAt(x, topY), bottom: img.RGBAAt(x, botY)}
				if col == 0 {
					run = k
					continue
				}
				if k == run {
					continue
				}
			}
			sb.WriteString(p.style(run).Render(strings.Repeat(halfBlock, col-start)))
			run, start = k, col
		}
	}
	return sb.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// statusLine summarizes the scroll demo: page offset, card progress and the
// lock section.
func statusLine(scrollY float64, cards []app.CardState, lock app.LockState) string {
	parts := []string{labelStyle.Render(fmt.Sprintf("y=%.0f", scrollY))}
	for _, c := range cards {
		parts = append(parts, fmt.Sprintf("%s %s", labelStyle.Render(c.Name), progressBar(c.Progress, 8)))
	}
	ls, ok := lockStyles[lock.Phase]
	if !ok {
		ls = labelStyle
	}
	parts = append(parts, fmt.Sprintf("%s %s", ls.Render("lock:"+lock.Phase.String()), progressBar(lock.Progress, 8)))
	return strings.Join(parts, "  ")
}

// progressBar draws a fixed-width bar for p in [0, 1].
func progressBar(p float64, width int) string {
	n := int(p*float64(width) + 0.5)
	n = min(max(n, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
