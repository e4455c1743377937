//go:build js && wasm

package surface

import (
	"syscall/js"

	"github.com/example/gridpaint/internal/gridpaint"
)

var _ gridpaint.Surface = (*CanvasSurface)(nil)

// CanvasSurface draws onto a DOM <canvas> element. Colors are handed to the
// 2D context unchanged, so any CSS color the browser accepts works.
type CanvasSurface struct {
	canvas js.Value
	ctx    js.Value
}

// NewCanvas wraps canvas and its 2D rendering context.
func NewCanvas(canvas js.Value) *CanvasSurface {
	return &CanvasSurface{canvas: canvas, ctx: canvas.Call("getContext", "2d")}
}

// Element returns the wrapped canvas element.
func (c *CanvasSurface) Element() js.Value { return c.canvas }

// BoundingRect implements gridpaint.Surface.
func (c *CanvasSurface) BoundingRect() gridpaint.Rect {
	r := c.canvas.Call("getBoundingClientRect")
	return gridpaint.Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

// FillRect implements gridpaint.Surface.
func (c *CanvasSurface) FillRect(x, y, w, h int, color string) {
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("fillRect", x, y, w, h)
}
