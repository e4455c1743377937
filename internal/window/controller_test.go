package window

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/surface"
	"github.com/example/gridpaint/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

func newTestController(t *testing.T, actions Actions) (*Controller, *gridpaint.Painter, *surface.ImageSurface) {
	t.Helper()
	canvas := surface.NewImage(200, 100)
	p := gridpaint.New(canvas)
	return NewController(p, canvas, nil, nil, actions), p, canvas
}

func press(p image.Point) mouse.Event {
	return mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress}
}

func release(p image.Point) mouse.Event {
	return mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease}
}

func move(p image.Point) mouse.Event {
	return mouse.Event{X: float32(p.X), Y: float32(p.Y), Direction: mouse.DirNone}
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestCanvasPlacedAtLayoutOrigin(t *testing.T) {
	c, _, canvas := newTestController(t, Actions{})
	assert.Equal(t, c.Layout().Canvas, canvas.ViewRect())
}

func TestPressWithoutColorDoesNotPaint(t *testing.T) {
	c, p, canvas := newTestController(t, Actions{})
	origin := c.Layout().Canvas.Min

	c.HandleMouse(press(origin.Add(image.Pt(5, 5))))

	assert.False(t, p.Painting())
	assert.Equal(t, color.RGBA{}, canvas.Image().RGBAAt(5, 5))
}

func TestSwatchThenStroke(t *testing.T) {
	c, p, canvas := newTestController(t, Actions{})
	l := c.Layout()

	red := colors.DefaultPalette()[2]
	require.Equal(t, "Red", red.Name)
	assert.True(t, c.HandleMouse(press(center(l.Swatches[2]))))
	assert.Equal(t, "Red", p.Color())
	assert.False(t, p.Painting(), "swatch press must not start a stroke")

	origin := l.Canvas.Min
	c.HandleMouse(press(origin.Add(image.Pt(5, 5))))
	c.HandleMouse(move(origin.Add(image.Pt(25, 5))))
	c.HandleMouse(release(origin.Add(image.Pt(25, 5))))
	c.HandleMouse(move(origin.Add(image.Pt(45, 5))))

	img := canvas.Image()
	assert.Equal(t, red.Color, img.RGBAAt(0, 0))
	assert.Equal(t, red.Color, img.RGBAAt(39, 19))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(40, 0))
}

func TestReleaseOutsideCanvasEndsStroke(t *testing.T) {
	c, p, _ := newTestController(t, Actions{})
	p.SetColor("red")
	origin := c.Layout().Canvas.Min

	c.HandleMouse(press(origin.Add(image.Pt(1, 1))))
	require.True(t, p.Painting())
	c.HandleMouse(release(image.Pt(0, 0)))
	assert.False(t, p.Painting())
}

func TestPressOutsideCanvasDoesNotStroke(t *testing.T) {
	c, p, _ := newTestController(t, Actions{})
	p.SetColor("red")
	l := c.Layout()

	c.HandleMouse(press(image.Pt(l.Width-1, barHeight+1)))
	assert.False(t, p.Painting())
}

func TestBrushButtonsAndKeys(t *testing.T) {
	c, p, _ := newTestController(t, Actions{})
	l := c.Layout()

	c.HandleMouse(press(center(l.Brushes[2])))
	assert.Equal(t, 3, p.BrushSize())

	dirty, quit := c.HandleKey(key.Event{Rune: '7', Direction: key.DirPress})
	assert.True(t, dirty)
	assert.False(t, quit)
	assert.Equal(t, 7, p.BrushSize())
}

func TestEraseSwatch(t *testing.T) {
	c, p, canvas := newTestController(t, Actions{})
	l := c.Layout()
	canvas.FillRect(0, 0, 20, 20, "blue")

	c.HandleMouse(press(center(l.Erase)))
	assert.Equal(t, EraseColor, p.Color())
	c.HandleMouse(press(l.Canvas.Min.Add(image.Pt(3, 3))))

	assert.Equal(t, color.RGBA{}, canvas.Image().RGBAAt(3, 3))
}

func TestClearColorKey(t *testing.T) {
	c, p, _ := newTestController(t, Actions{})
	p.SetColor("red")
	c.HandleKey(key.Event{Rune: '0', Direction: key.DirPress})
	assert.Equal(t, "", p.Color())
}

func TestQuitKeys(t *testing.T) {
	c, _, _ := newTestController(t, Actions{})
	_, quit := c.HandleKey(key.Event{Rune: 'q', Direction: key.DirPress})
	assert.True(t, quit)
	_, quit = c.HandleKey(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	assert.True(t, quit)
	_, quit = c.HandleKey(key.Event{Rune: 'q', Direction: key.DirRelease})
	assert.False(t, quit)
}

func TestSaveShortcut(t *testing.T) {
	var saved *image.RGBA
	c, p, canvas := newTestController(t, Actions{Save: func(img *image.RGBA) (string, error) {
		saved = img
		return "out.png", nil
	}})
	p.SetColor("red")
	p.PointerDown(gridpaint.Point{X: float64(c.Layout().Canvas.Min.X), Y: float64(c.Layout().Canvas.Min.Y)})

	dirty, _ := c.HandleKey(key.Event{Rune: 's', Modifiers: key.ModControl, Direction: key.DirPress})
	require.True(t, dirty)
	require.NotNil(t, saved)
	assert.NotSame(t, canvas.Image(), saved)
	assert.Equal(t, canvas.Image().Pix, saved.Pix)

	msg, showing := c.Message()
	assert.True(t, showing)
	assert.Equal(t, "saved out.png", msg)
}

func TestFailedActionsReported(t *testing.T) {
	boom := errors.New("boom")
	c, _, _ := newTestController(t, Actions{
		Copy:   func(*image.RGBA) error { return boom },
		Export: func(*image.RGBA) (string, error) { return "", boom },
	})

	c.HandleKey(key.Event{Rune: 'c', Modifiers: key.ModControl, Direction: key.DirPress})
	msg, _ := c.Message()
	assert.Equal(t, "copy failed: boom", msg)

	c.HandleKey(key.Event{Rune: 'e', Modifiers: key.ModControl, Direction: key.DirPress})
	msg, _ = c.Message()
	assert.Equal(t, "export failed: boom", msg)

	c.HandleKey(key.Event{Rune: 's', Modifiers: key.ModControl, Direction: key.DirPress})
	msg, _ = c.Message()
	assert.Equal(t, "save is not available", msg)
}

func TestClearCanvasShortcut(t *testing.T) {
	c, _, canvas := newTestController(t, Actions{})
	canvas.FillRect(0, 0, 20, 20, "red")
	c.HandleKey(key.Event{Rune: 'n', Modifiers: key.ModControl, Direction: key.DirPress})
	assert.Equal(t, color.RGBA{}, canvas.Image().RGBAAt(0, 0))
}

func TestApplySettings(t *testing.T) {
	c, p, canvas := newTestController(t, Actions{})
	sand := color.RGBA{194, 178, 128, 255}
	dark := theme.Default()
	dark.Name = "Dark"

	c.Apply(Settings{Palette: []colors.Entry{{Name: "Sand", Color: sand}}, Theme: dark})

	require.Len(t, c.Layout().Swatches, 1)
	c.HandleMouse(press(center(c.Layout().Swatches[0])))
	assert.Equal(t, "Sand", p.Color())
	c.HandleMouse(press(c.Layout().Canvas.Min))
	assert.Equal(t, sand, canvas.Image().RGBAAt(0, 0))
	assert.Equal(t, "Dark", c.frame().theme.Name)
}

func TestComposeDrawsCanvas(t *testing.T) {
	c, p, _ := newTestController(t, Actions{})
	p.SetColor("Blue")
	origin := c.Layout().Canvas.Min
	p.PointerDown(gridpaint.Point{X: float64(origin.X + 30), Y: float64(origin.Y + 30)})

	st := c.frame()
	dst := image.NewRGBA(image.Rect(0, 0, st.layout.Width, st.layout.Height))
	compose(dst, st)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, dst.RGBAAt(origin.X+25, origin.Y+25))
	assert.Equal(t, theme.Default().CanvasBackground, dst.RGBAAt(origin.X+5, origin.Y+5))
	assert.Equal(t, theme.Default().GridLine, dst.RGBAAt(origin.X, origin.Y+5))
}
