package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/flockgrid/go-grid-flocking/pkg/flock"
	"github.com/flockgrid/go-grid-flocking/pkg/geometry"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render the simulation live in the terminal",
		Long: `view renders the grid with half-block glyphs, two grid rows per
terminal row, and steps the simulation on the configured interval.

Keys: q quit, space pause, r reset,
      s/S separation -/+, a/A alignment -/+, c/C cohesion -/+`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runView(cfg)
		},
	}
	return cmd
}

// viewer holds the terminal rendering state.
type viewer struct {
	cfg      *flock.Config
	state    *flock.State
	screen   tcell.Screen
	weights  flock.Weights
	paused   bool
	snapshot []geometry.Vec3
}

func runView(cfg *flock.Config) error {
	state, err := flock.NewFromConfig(cfg, newRand(cfg.Seed))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	defer screen.Fini()

	v := &viewer{
		cfg:     cfg,
		state:   state,
		screen:  screen,
		weights: cfg.Weights,
	}
	return v.loop()
}

func (v *viewer) loop() error {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	interval := time.Duration(v.cfg.IntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 15 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventKey:
				if quit := v.handleKey(ev); quit {
					return nil
				}
			}
		case <-ticker.C:
			if !v.paused {
				if err := flock.ApplyTick(v.state, v.weights, v.cfg.WindowSize); err != nil {
					return err
				}
			}
			v.draw()
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		return true
	case ev.Rune() == 'q':
		return true
	case ev.Rune() == ' ':
		v.paused = !v.paused
	case ev.Rune() == 'r':
		if state, err := flock.NewFromConfig(v.cfg, newRand(v.cfg.Seed)); err == nil {
			v.state = state
		}
	case ev.Rune() == 's':
		v.weights.Separation = adjustWeight(v.weights.Separation, -0.1)
	case ev.Rune() == 'S':
		v.weights.Separation = adjustWeight(v.weights.Separation, 0.1)
	case ev.Rune() == 'a':
		v.weights.Alignment = adjustWeight(v.weights.Alignment, -0.1)
	case ev.Rune() == 'A':
		v.weights.Alignment = adjustWeight(v.weights.Alignment, 0.1)
	case ev.Rune() == 'c':
		v.weights.Cohesion = adjustWeight(v.weights.Cohesion, -0.1)
	case ev.Rune() == 'C':
		v.weights.Cohesion = adjustWeight(v.weights.Cohesion, 0.1)
	}
	return false
}

func adjustWeight(w, delta float64) float64 {
	w += delta
	if w < flock.MinWeight {
		return flock.MinWeight
	}
	if w > flock.MaxWeight {
		return flock.MaxWeight
	}
	return w
}

// draw renders two grid rows per terminal row using the upper half block:
// the glyph's foreground carries the upper cell color, the background the
// lower cell color.
func (v *viewer) draw() {
	v.snapshot = v.state.DisplaySnapshot(v.snapshot)
	rows, cols := v.state.Rows(), v.state.Cols()

	v.screen.Clear()
	for y := 0; y < rows; y += 2 {
		for x := 0; x < cols; x++ {
			upper := cellColor(v.snapshot[y*cols+x])
			lower := upper
			if y+1 < rows {
				lower = cellColor(v.snapshot[(y+1)*cols+x])
			}
			style := tcell.StyleDefault.Foreground(upper).Background(lower)
			v.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	status := fmt.Sprintf(" sep %.1f  ali %.1f  coh %.1f %s",
		v.weights.Separation, v.weights.Alignment, v.weights.Cohesion,
		map[bool]string{true: " [paused]", false: ""}[v.paused])
	drawText(v.screen, 0, (rows+1)/2, status)

	v.screen.Show()
}

func cellColor(p geometry.Vec3) tcell.Color {
	return tcell.NewRGBColor(int32(p.X*255), int32(p.Y*255), int32(p.Z*255))
}

func drawText(s tcell.Screen, x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
