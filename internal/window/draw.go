package window

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/theme"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type frameState struct {
	layout  Layout
	canvas  *image.RGBA
	palette []colors.Entry
	theme   *theme.Theme
	color   string
	brush   int
	message string
}

// compose renders a complete frame into dst.
func compose(dst *image.RGBA, st frameState) {
	th := st.theme
	fillRect(dst, dst.Bounds(), th.Background)

	l := st.layout
	fillRect(dst, image.Rect(0, 0, l.Width, barHeight), th.ToolbarBackground)
	fillRect(dst, image.Rect(0, l.Height-barHeight, l.Width, l.Height), th.ToolbarBackground)

	fillRect(dst, l.Canvas, th.CanvasBackground)
	drawGrid(dst, l.Canvas, th.GridLine)
	draw.Draw(dst, l.Canvas, st.canvas, st.canvas.Bounds().Min, draw.Over)
	strokeRect(dst, l.Canvas.Inset(-1), th.ButtonBorder)

	for i, r := range l.Swatches {
		if i >= len(st.palette) {
			break
		}
		e := st.palette[i]
		fillRect(dst, r, e.Color)
		strokeRect(dst, r, th.ButtonBorder)
		if strings.EqualFold(e.Name, st.color) {
			strokeRect(dst, r.Inset(-2), th.ButtonSelected)
		}
	}
	drawCheckerboard(dst, l.Erase, 5, th.CanvasBackground, th.GridLine)
	strokeRect(dst, l.Erase, th.ButtonBorder)
	if st.color == EraseColor {
		strokeRect(dst, l.Erase.Inset(-2), th.ButtonSelected)
	}

	for i, r := range l.Brushes {
		bg := th.ButtonBackground
		if i+1 == st.brush {
			bg = th.ButtonSelected
		}
		fillRect(dst, r, bg)
		strokeRect(dst, r, th.ButtonBorder)
		drawLabel(dst, r.Min.X+4, r.Min.Y+15, fmt.Sprintf("%dx", i+1), th.ButtonText)
	}

	status := st.message
	if status == "" {
		status = statusLine(st.color, st.brush)
	}
	drawLabel(dst, l.Status.X, l.Status.Y, status, th.Foreground)
}

func statusLine(col string, brush int) string {
	if col == "" {
		return fmt.Sprintf("pick a color to paint  brush %d", brush)
	}
	return fmt.Sprintf("color %s  brush %d", col, brush)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// drawGrid draws one-pixel lines along every cell boundary inside r.
func drawGrid(dst *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x += gridpaint.CellSize {
		fillRect(dst, image.Rect(x, r.Min.Y, x+1, r.Max.Y), c)
	}
	for y := r.Min.Y; y < r.Max.Y; y += gridpaint.CellSize {
		fillRect(dst, image.Rect(r.Min.X, y, r.Max.X, y+1), c)
	}
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if (((x-rect.Min.X)/size)+((y-rect.Min.Y)/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func drawLabel(dst *image.RGBA, x, baseline int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}
