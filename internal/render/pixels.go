package render

import "image/color"

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Point is a pixel position.
type Point struct {
	X, Y float32
}

// SpectrumBars lays out one bottom-aligned bar per energy group inside the
// given box, scaled so the largest count fills the height. Empty input
// yields no bars.
func SpectrumBars(counts []int, x, y, w, h float32) []Rect {
	if len(counts) == 0 || w <= 0 || h <= 0 {
		return nil
	}
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	slot := w / float32(len(counts))
	gap := slot * 0.15
	bars := make([]Rect, len(counts))
	for i, c := range counts {
		var bh float32
		if peak > 0 {
			bh = h * float32(c) / float32(peak)
		}
		bars[i] = Rect{X: x + float32(i)*slot + gap/2, Y: y + h - bh, W: slot - gap, H: bh}
	}
	return bars
}

// HistoryLine maps a population history onto a polyline inside the box.
// The vertical axis runs from zero to the largest sample.
func HistoryLine(history []int, x, y, w, h float32) []Point {
	if len(history) == 0 || w <= 0 || h <= 0 {
		return nil
	}
	peak := 1
	for _, v := range history {
		peak = max(peak, v)
	}
	step := float32(0)
	if len(history) > 1 {
		step = w / float32(len(history)-1)
	}
	pts := make([]Point, len(history))
	for i, v := range history {
		pts[i] = Point{X: x + float32(i)*step, Y: y + h - h*float32(v)/float32(peak)}
	}
	return pts
}

var generationPalette = []color.RGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 255, G: 214, B: 64, A: 255},
	{R: 255, G: 140, B: 40, A: 255},
	{R: 240, G: 70, B: 70, A: 255},
	{R: 200, G: 80, B: 220, A: 255},
	{R: 90, G: 170, B: 255, A: 255},
}

// GenerationColor picks a particle color by fission generation, cycling
// through a fixed palette.
func GenerationColor(gen int) color.RGBA {
	if gen < 0 {
		gen = 0
	}
	return generationPalette[gen%len(generationPalette)]
}

// WaypointColor is used for particle trails.
var WaypointColor = color.RGBA{B: 255, A: 255}
