package window

import (
	"image"
)

const (
	barHeight     = 28
	swatchSize    = 20
	swatchGap     = 4
	margin        = 8
	brushButtonW  = 28
	maxBrushShown = 5
)

// Layout positions every control of the window. All rectangles are in
// window pixels.
type Layout struct {
	Width, Height int
	Swatches      []image.Rectangle
	Erase         image.Rectangle
	Brushes       []image.Rectangle
	Canvas        image.Rectangle
	Status        image.Point
}

// WindowSize returns the window size that fits a canvas of the given size
// with all bars visible.
func WindowSize(canvas image.Point, swatches int) image.Point {
	w := canvas.X + 2*margin
	minW := margin + (swatches+1)*(swatchSize+swatchGap)
	if w < minW {
		w = minW
	}
	return image.Pt(w, canvas.Y+2*barHeight+2*margin)
}

// NewLayout lays out a window of width×height holding swatches palette
// entries and a canvas of the given size.
func NewLayout(width, height, swatches int, canvas image.Point) Layout {
	l := Layout{Width: width, Height: height}
	x := margin
	top := (barHeight - swatchSize) / 2
	for i := 0; i < swatches; i++ {
		l.Swatches = append(l.Swatches, image.Rect(x, top, x+swatchSize, top+swatchSize))
		x += swatchSize + swatchGap
	}
	l.Erase = image.Rect(x, top, x+swatchSize, top+swatchSize)

	bottom := height - barHeight
	bx := margin
	for i := 0; i < maxBrushShown; i++ {
		l.Brushes = append(l.Brushes, image.Rect(bx, bottom+2, bx+brushButtonW, height-2))
		bx += brushButtonW + swatchGap
	}
	l.Status = image.Pt(bx+margin, bottom+barHeight/2+4)

	origin := image.Pt(margin, barHeight+margin)
	l.Canvas = image.Rectangle{Min: origin, Max: origin.Add(canvas)}
	return l
}

// SwatchAt returns the palette index under p, or -1.
func (l Layout) SwatchAt(p image.Point) int {
	for i, r := range l.Swatches {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// BrushAt returns the brush size under p, or 0.
func (l Layout) BrushAt(p image.Point) int {
	for i, r := range l.Brushes {
		if p.In(r) {
			return i + 1
		}
	}
	return 0
}

// InToolbar reports whether p is over the palette or brush bar.
func (l Layout) InToolbar(p image.Point) bool {
	return p.Y < barHeight || p.Y >= l.Height-barHeight
}
