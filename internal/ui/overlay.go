//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Status is what the overlay reports in its top line.
type Status struct {
	Paused     bool
	Boundary   string
	Population int
	Steps      int
	// NextCommand is the number of steps until the playbook acts, or negative
	// when no command is pending.
	NextCommand int
}

var keyHelp = []string{
	"r      reset",
	"b      toggle boundary",
	"w      toggle waypoints",
	"c      cycle all pins",
	"p/spc  pause",
	"n      single step",
	"rmb    cycle pin",
	"lmb    hold for source",
	"h      hide help",
	"q/esc  quit",
}

// Overlay draws the status line and an optional key legend over the lattice.
type Overlay struct {
	showHelp bool
	status   Status
}

// NewOverlay constructs a new overlay instance with the legend visible.
func NewOverlay() *Overlay {
	return &Overlay{showHelp: true}
}

// Update toggles the legend on 'h' and records the latest status.
func (o *Overlay) Update(st Status) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
	o.status = st
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	st := o.status
	line := fmt.Sprintf("step %d  population %d  boundary %s", st.Steps, st.Population, st.Boundary)
	if st.NextCommand >= 0 {
		line += fmt.Sprintf("  next command in %d", st.NextCommand)
	}
	if st.Paused {
		line += "  [paused]"
	}
	drawBacked(screen, line, 8, 16)

	if !o.showHelp {
		return
	}
	for i, l := range keyHelp {
		drawBacked(screen, l, 8, 40+i*15)
	}
}

func drawBacked(screen *ebiten.Image, s string, x, y int) {
	face := basicfont.Face7x13
	b := text.BoundString(face, s)
	vector.DrawFilledRect(screen, float32(x-3), float32(y+b.Min.Y-2), float32(b.Dx()+6), float32(b.Dy()+4), color.RGBA{A: 150}, false)
	text.Draw(screen, s, face, x, y, color.RGBA{R: 235, G: 235, B: 240, A: 255})
}
