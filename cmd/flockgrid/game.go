package main

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/flockgrid/go-grid-flocking/pkg/flock"
	"github.com/flockgrid/go-grid-flocking/pkg/geometry"
	"github.com/flockgrid/go-grid-flocking/pkg/ui"
)

const cellScale = 8 // screen pixels per grid cell

// Game is the external tick driver: it owns the grid, reads the weight
// sliders every frame, applies exactly one tick per update and renders the
// position array as cell colors.
type Game struct {
	cfg   *flock.Config
	state *flock.State

	panel  *ui.Panel
	wSep   *ui.Slider
	wAli   *ui.Slider
	wCoh   *ui.Slider
	paused bool

	// reused buffers, refreshed each frame
	snapshot []geometry.Vec3
	pixels   []byte
	img      *ebiten.Image

	tickErr error
}

// NewGame builds a game around a freshly seeded grid.
func NewGame(cfg *flock.Config) (*Game, error) {
	state, err := flock.NewFromConfig(cfg, newRand(cfg.Seed))
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		state:  state,
		img:    ebiten.NewImage(cfg.Cols, cfg.Rows),
		pixels: make([]byte, cfg.Cols*cfg.Rows*4),
	}

	panel := ui.NewPanel(10, 10, 220, "Flocking weights")
	g.wSep = panel.AddSlider("Separation", flock.MinWeight, flock.MaxWeight, cfg.Weights.Separation)
	g.wAli = panel.AddSlider("Alignment", flock.MinWeight, flock.MaxWeight, cfg.Weights.Alignment)
	g.wCoh = panel.AddSlider("Cohesion", flock.MinWeight, flock.MaxWeight, cfg.Weights.Cohesion)
	panel.AddButton("Pause / Resume", func() { g.paused = !g.paused })
	panel.AddButton("Reset grid", g.reset)
	g.panel = panel

	return g, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (g *Game) reset() {
	state, err := flock.NewFromConfig(g.cfg, newRand(g.cfg.Seed))
	if err != nil {
		g.tickErr = err
		return
	}
	g.state = state
}

// Update advances the simulation by one tick with the live slider weights.
func (g *Game) Update() error {
	if g.tickErr != nil {
		return g.tickErr
	}

	g.panel.Update()
	if g.paused {
		return nil
	}

	weights := flock.Weights{
		Separation: g.wSep.Value,
		Alignment:  g.wAli.Value,
		Cohesion:   g.wCoh.Value,
	}
	if err := flock.ApplyTick(g.state, weights, g.cfg.WindowSize); err != nil {
		return err
	}
	return nil
}

// Draw renders the display snapshot scaled up, then the control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.snapshot = g.state.DisplaySnapshot(g.snapshot)
	for i, p := range g.snapshot {
		g.pixels[i*4+0] = byte(p.X * 255)
		g.pixels[i*4+1] = byte(p.Y * 255)
		g.pixels[i*4+2] = byte(p.Z * 255)
		g.pixels[i*4+3] = 255
	}
	g.img.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cellScale, cellScale)
	screen.DrawImage(g.img, op)

	g.panel.Draw(screen)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", g.cfg.Cols*cellScale-60, 10)
	}
}

// Layout reports the fixed screen size derived from the grid dimensions.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Cols * cellScale, g.cfg.Rows * cellScale
}
