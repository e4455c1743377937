// Package gridpaint turns pointer strokes into fills of fixed-size grid
// cells on a drawable surface.
package gridpaint

import (
	"image"
	"math"
)

const (
	// CellSize is the side of one grid cell in surface units.
	CellSize = 20
	// DefaultBrushSize is the brush used when none has been chosen.
	DefaultBrushSize = 1
	// MaxBrushSize bounds the brush side so one paint step stays finite.
	// It spans 5120 surface units, wider than any canvas.
	MaxBrushSize = 256
)

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Rect is the bounding rectangle of a surface in viewport coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Surface is something the painter can fill. FillRect works in
// surface-local coordinates and is expected to clip anything outside the
// drawable area. color is passed through unchanged from SetColor.
type Surface interface {
	BoundingRect() Rect
	FillRect(x, y, w, h int, color string)
}

// Painter binds pointer input to cell fills. It is not safe for concurrent
// use; callers deliver events from a single goroutine.
type Painter struct {
	surface   Surface
	color     string
	brushSize int
	painting  bool
}

// Option modifies a Painter during creation.
type Option func(*Painter)

// WithColor sets the initial paint color.
func WithColor(color string) Option { return func(p *Painter) { p.color = color } }

// WithBrushSize sets the initial brush size in cells.
func WithBrushSize(n int) Option { return func(p *Painter) { p.SetBrushSize(n) } }

// New creates a Painter drawing onto s.
func New(s Surface, opts ...Option) *Painter {
	p := &Painter{surface: s, brushSize: DefaultBrushSize}
	for _, o := range opts {
		o(p)
	}
	return p
}

// SetColor sets the color used by later paint steps. An empty string
// clears the color, which disables painting.
func (p *Painter) SetColor(color string) { p.color = color }

// Color returns the current paint color, or "" when unset.
func (p *Painter) Color() string { return p.color }

// SetBrushSize sets the brush side length in cells. Values below one
// restore the default; values above MaxBrushSize are capped.
func (p *Painter) SetBrushSize(n int) {
	p.brushSize = clampBrush(n)
}

func clampBrush(n int) int {
	switch {
	case n < 1:
		return DefaultBrushSize
	case n > MaxBrushSize:
		return MaxBrushSize
	}
	return n
}

// BrushSize returns the brush side length in cells.
func (p *Painter) BrushSize() int { return p.brushSize }

// Painting reports whether a stroke is in progress.
func (p *Painter) Painting() bool { return p.painting }

// PointerDown starts a stroke at pos. Nothing happens until a color is set.
func (p *Painter) PointerDown(pos Point) {
	if p.color == "" {
		return
	}
	p.painting = true
	p.paint(pos)
}

// PointerMove continues the active stroke, if any.
func (p *Painter) PointerMove(pos Point) {
	if !p.painting {
		return
	}
	p.paint(pos)
}

// PointerUp ends the active stroke.
func (p *Painter) PointerUp() { p.painting = false }

func (p *Painter) paint(pos Point) {
	if p.surface == nil || p.color == "" {
		return
	}
	origin := Snap(localPos(pos, p.surface.BoundingRect()))
	for j := 0; j < p.brushSize; j++ {
		for i := 0; i < p.brushSize; i++ {
			p.surface.FillRect(origin.X+i*CellSize, origin.Y+j*CellSize, CellSize, CellSize, p.color)
		}
	}
}

func localPos(pos Point, r Rect) (float64, float64) {
	return pos.X - r.Left, pos.Y - r.Top
}

// Cells returns the top-left corners, in surface-local coordinates, of the
// cells covered by a brush of the given size placed at pos. Rows come
// first, then columns within a row. brush is clamped like SetBrushSize.
func Cells(pos Point, r Rect, brush int) []image.Point {
	brush = clampBrush(brush)
	origin := Snap(localPos(pos, r))
	out := make([]image.Point, 0, brush*brush)
	for j := 0; j < brush; j++ {
		for i := 0; i < brush; i++ {
			out = append(out, image.Pt(origin.X+i*CellSize, origin.Y+j*CellSize))
		}
	}
	return out
}

// Snap rounds a surface-local position down to the corner of its cell.
// Negative positions round toward negative infinity.
func Snap(x, y float64) image.Point {
	return image.Pt(
		int(math.Floor(x/CellSize))*CellSize,
		int(math.Floor(y/CellSize))*CellSize,
	)
}
