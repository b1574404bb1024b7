package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is the minimal behavior shared by the panel's controls.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
}

// Panel stacks widgets vertically over a translucent background. It is a
// fixed layout: widgets get their position when added.
type Panel struct {
	X, Y    float64
	W       float64
	Title   string
	widgets []Widget
	nextY   float64
}

// NewPanel creates an empty panel anchored at (x, y).
func NewPanel(x, y, w float64, title string) *Panel {
	return &Panel{X: x, Y: y, W: w, Title: title, nextY: y + 28}
}

// AddSlider appends a slider spanning the panel width.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	p.nextY += 18 // label row
	s := NewSlider(p.X+10, p.nextY, p.W-20, label, min, max, value)
	p.nextY += s.H + 10
	p.widgets = append(p.widgets, s)
	return s
}

// AddButton appends a clickable button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, p.nextY, p.W-20, 24, label, onClick)
	p.nextY += b.H + 8
	p.widgets = append(p.widgets, b)
	return b
}

// Height returns the current content height of the panel.
func (p *Panel) Height() float64 {
	return p.nextY - p.Y + 8
}

// Update handles input for all widgets.
func (p *Panel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the panel background, title and widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.Height()),
		color.RGBA{R: 40, G: 40, B: 45, A: 230}, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.Height()),
		2, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+6))

	for _, w := range p.widgets {
		w.Draw(screen)
	}
}
