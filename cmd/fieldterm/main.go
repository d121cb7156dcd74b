// Field terminal viewer - renders the field and the scroll demo in a
// terminal with half-block characters.
//
// Usage: go run ./cmd/fieldterm [-config path] [-variant name]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/staticfield/app"
	"github.com/pthm-cable/staticfield/config"
	"github.com/pthm-cable/staticfield/surface"
)

// Lines kept below the field for the status and footer.
const chromeRows = 3

type tickMsg time.Time

type model struct {
	app     *app.App
	log     *slog.Logger
	painter *cellPainter
	budget  time.Duration
	wheel   float64

	width  int
	height int
	field  string
	paused bool
	ready  bool
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.budget)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) fieldRows() int {
	return max(1, m.height-chromeRows)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.log.Info("quit requested", "key", msg.String())
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "j", "down":
			m.app.Wheel(m.wheel)
		case "k", "up":
			m.app.Wheel(-m.wheel)
		case "pgdown":
			m.app.Wheel(m.wheel * 10)
		case "pgup":
			m.app.Wheel(-m.wheel * 10)
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.app.Wheel(m.wheel)
		case tea.MouseButtonWheelUp:
			m.app.Wheel(-m.wheel)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.app.Resize(m.width, m.fieldRows()*2, 1)
		m.log.Info("terminal resized", "cols", m.width, "rows", m.height)

	case tickMsg:
		if !m.paused && m.ready {
			m.app.Step(time.Time(msg))
			m.field = m.painter.Render(m.app.Renderer().Capture(), m.width, m.fieldRows())
		}
		return m, tickCmd(m.budget)
	}

	return m, nil
}

func (m model) View() string {
	if !m.ready || m.width == 0 {
		return "Initializing field..."
	}

	demo := m.app.Demo()
	status := statusLine(demo.Page().ScrollY(), demo.Cards(), demo.Lock())

	stats := m.app.Renderer().Stats()
	title := titleStyle.Render(m.app.Config().Screen.Title)
	info := fmt.Sprintf("%s  %s  frame %d  seed %d", title, m.app.Renderer().Variant(), stats.Frame, m.app.Seed())
	if m.paused {
		info += "  " + labelStyle.Render("[paused]")
	}

	footer := footerStyle.Render("q quit | space pause | wheel/j/k scroll")
	return lipgloss.JoinVertical(lipgloss.Left, m.field, info, status, footer)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Field variant override: pointcloud, static, dotgrid, particles")
	seed := flag.Int64("seed", 0, "Noise seed (0 = config or time-based)")
	wheel := flag.Float64("wheel-step", 4, "Scroll delta per wheel notch, in field pixels")
	sensitivity := flag.Float64("sensitivity", 200, "Wheel delta per unit of lock progress")
	logPath := flag.String("log", "fieldterm.log", "Log file path")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := slog.New(slog.NewTextHandler(logFile, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *variant != "" {
		cfg.Field.Variant = *variant
	}
	// Terminal cells are coarse, keep particles and dots a few cells apart
	cfg.Field.Step = max(2, cfg.Field.Step/3)
	cfg.Field.Density = min(cfg.Field.Density, 60)
	cfg.Scroll.Sensitivity = *sensitivity
	cfg.Scroll.EnterDistance = 40
	cfg.Scroll.MaxDistance = 30
	cfg.Screen.Width, cfg.Screen.Height = 80, 40
	cfg.Telemetry.CSVPath = ""
	if err := cfg.Recompute(); err != nil {
		log.Error("invalid flags", "error", err)
		fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, app.Options{
		Seed: *seed,
		NewSurface: func(w, h int, dpr float64) (surface.Surface, error) {
			return surface.NewImageSurface(w, h, dpr, 1), nil
		},
		Logger: log,
	})
	if err != nil {
		log.Error("failed to create app", "error", err)
		os.Exit(1)
	}
	defer a.Close()
	if err := a.Start(time.Now()); err != nil {
		log.Error("failed to start", "error", err)
		os.Exit(1)
	}

	m := model{
		app:     a,
		log:     log,
		painter: newCellPainter(),
		budget:  cfg.Derived.FrameBudget,
		wheel:   *wheel,
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("terminal program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
