//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"mc-lattice/internal/core"
	"mc-lattice/internal/render"
)

// readouts lists the snapshot groups shown as plain text below the controls.
var readouts = []string{"Run", "Tallies"}

// HUD renders the controls, run statistics, energy spectrum and population
// history to the right of the lattice view.
type HUD struct {
	src      Source
	width    int
	panel    *ebiten.Image
	title    string
	snapshot core.ParameterSnapshot
	controls []control
	offsetX  int
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src Source, width int) *HUD {
	h := &HUD{src: src, width: max(width, 0), title: "Controls"}
	if name := src.Name(); name != "" {
		h.title = fmt.Sprintf("%s controls", strings.ToUpper(name[:1])+name[1:])
	}
	h.controls = newControls(src.ParameterControls())
	return h
}

// Update refreshes the snapshot and applies button clicks. offsetX is the
// screen x of the panel's left edge.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	h.snapshot = h.src.Parameters()
	refresh(h.controls, h.snapshot)

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-offsetX, my)
	for i := range h.controls {
		minus, plus := h.buttons(i)
		switch {
		case pt.In(minus):
			h.controls[i].apply(h.src, -1)
		case pt.In(plus):
			h.controls[i].apply(h.src, 1)
		default:
			continue
		}
		return
	}
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	y := h.drawControls()
	y = h.drawReadouts(y + sectionGap)
	h.drawPlots(y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// buttons returns the minus and plus hit boxes of control row i in panel
// coordinates.
func (h *HUD) buttons(i int) (image.Rectangle, image.Rectangle) {
	y := controlsTop + i*rowHeight + (rowHeight-buttonSize)/2
	plus := image.Rect(h.width-padding-buttonSize, y, h.width-padding, y+buttonSize)
	minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
	return minus, plus
}

func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, padding, padding+titleBaseline, headerColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, padding, controlsTop+labelBaseline, dimColor)
		return controlsTop + rowHeight
	}
	for i, c := range h.controls {
		top := controlsTop + i*rowHeight
		minus, plus := h.buttons(i)
		text.Draw(h.panel, c.Label, face, padding, top+labelBaseline, labelColor)

		value, fg := c.text(), labelColor
		if !c.known {
			fg = dimColor
		}
		b := text.BoundString(face, value)
		text.Draw(h.panel, value, face, minus.Min.X-buttonGap-b.Dx(), top+labelBaseline, fg)

		_, canDown := c.next(-1)
		_, canUp := c.next(1)
		drawButton(h.panel, minus, "-", canDown)
		drawButton(h.panel, plus, "+", canUp)
	}
	return controlsTop + len(h.controls)*rowHeight
}

// drawReadouts prints the read-only snapshot groups and returns the next free
// row.
func (h *HUD) drawReadouts(y int) int {
	face := basicfont.Face7x13
	for _, name := range readouts {
		for _, group := range h.snapshot.Groups {
			if group.Name != name {
				continue
			}
			text.Draw(h.panel, group.Name, face, padding, y, headerColor)
			y += readoutLine
			for _, p := range group.Params {
				text.Draw(h.panel, p.Label, face, padding, y, labelColor)
				b := text.BoundString(face, p.Value)
				text.Draw(h.panel, p.Value, face, h.width-padding-b.Dx(), y, labelColor)
				y += readoutLine
			}
			y += readoutLine / 2
		}
	}
	return y
}

// drawPlots draws the energy spectrum and the population history.
func (h *HUD) drawPlots(y int) {
	face := basicfont.Face7x13
	x, w := float32(padding), float32(h.width-2*padding)

	text.Draw(h.panel, "Energy spectrum", face, padding, y, headerColor)
	top := float32(y + 6)
	vector.StrokeRect(h.panel, x, top, w, plotHeight, 1, frameColor, false)
	render.DrawBars(h.panel, render.SpectrumBars(h.src.Spectrum(), x+2, top+2, w-4, plotHeight-4), spectrumColor)

	y += int(plotHeight) + 6 + readoutLine + 4
	text.Draw(h.panel, "Population", face, padding, y, headerColor)
	top = float32(y + 6)
	vector.StrokeRect(h.panel, x, top, w, plotHeight, 1, frameColor, false)
	render.DrawPolyline(h.panel, render.HistoryLine(h.src.PopulationHistory(), x+2, top+2, w-4, plotHeight-4), 1.5, historyColor)
}

func drawButton(dst *ebiten.Image, r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = disabledColor, dimColor
	}
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(dst, label, face, x, y, fg)
}

const (
	padding       = 12
	titleBaseline = 18
	controlsTop   = padding + titleBaseline + 14
	rowHeight     = 36
	labelBaseline = 24
	buttonSize    = 24
	buttonGap     = 6
	sectionGap    = 18
	readoutLine   = 16
	plotHeight    = float32(80)
)

var (
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor      = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	disabledColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	frameColor    = color.RGBA{R: 70, G: 72, B: 84, A: 255}
	spectrumColor = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	historyColor  = color.RGBA{R: 90, G: 200, B: 255, A: 255}
)
