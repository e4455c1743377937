package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingRect(t *testing.T) {
	s := NewImage(200, 100, WithOrigin(image.Pt(48, 24)))
	assert.Equal(t, gridpaint.Rect{Left: 48, Top: 24, Width: 200, Height: 100}, s.BoundingRect())
	assert.Equal(t, image.Rect(48, 24, 248, 124), s.ViewRect())
}

func TestFillRectClips(t *testing.T) {
	var changed []image.Rectangle
	s := NewImage(30, 30, WithChangeListener(func(r image.Rectangle) { changed = append(changed, r) }))

	s.FillRect(20, 20, 20, 20, "red")
	s.FillRect(-40, -40, 20, 20, "red")

	red := color.RGBA{255, 0, 0, 255}
	assert.Equal(t, red, s.Image().RGBAAt(25, 25))
	assert.Equal(t, red, s.Image().RGBAAt(29, 29))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(19, 19))
	assert.Equal(t, []image.Rectangle{image.Rect(20, 20, 30, 30)}, changed)
}

func TestFillRectUnknownColorSkipped(t *testing.T) {
	calls := 0
	s := NewImage(20, 20, WithChangeListener(func(image.Rectangle) { calls++ }))

	s.FillRect(0, 0, 20, 20, "definitely not a color")
	s.FillRect(0, 0, 20, 20, "definitely not a color")

	assert.Zero(t, calls)
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(0, 0))
}

func TestTransparentErases(t *testing.T) {
	s := NewImage(20, 20)
	s.FillRect(0, 0, 20, 20, "blue")
	s.FillRect(0, 0, 20, 20, "transparent")
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(5, 5))
}

func TestPainterOnImageSurface(t *testing.T) {
	s := NewImage(100, 100, WithOrigin(image.Pt(10, 10)))
	p := gridpaint.New(s, gridpaint.WithColor("#00FF00"), gridpaint.WithBrushSize(2))

	p.PointerDown(gridpaint.Point{X: 55, Y: 37})
	p.PointerUp()

	green := color.RGBA{0, 255, 0, 255}
	img := s.Image()
	for _, pt := range []image.Point{{40, 20}, {79, 20}, {40, 59}, {79, 59}} {
		assert.Equal(t, green, img.RGBAAt(pt.X, pt.Y), "pixel %v", pt)
	}
	assert.Equal(t, color.RGBA{}, img.RGBAAt(39, 20))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(80, 20))
}

func TestFromImageRebases(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 25, 25))
	src.SetRGBA(5, 5, color.RGBA{1, 2, 3, 255})
	s := FromImage(src)
	require.Equal(t, image.Rect(0, 0, 20, 20), s.Image().Bounds())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, s.Image().RGBAAt(0, 0))
}

func TestSetResolverResetsCache(t *testing.T) {
	s := NewImage(20, 20)
	s.FillRect(0, 0, 20, 20, "Sand")
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(0, 0))

	sand := color.RGBA{194, 178, 128, 255}
	s.SetResolver(colors.NewResolver([]colors.Entry{{Name: "Sand", Color: sand}}))
	s.FillRect(0, 0, 20, 20, "Sand")
	assert.Equal(t, sand, s.Image().RGBAAt(0, 0))
}

func TestClear(t *testing.T) {
	s := NewImage(20, 20)
	s.FillRect(0, 0, 20, 20, "black")
	s.Clear()
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(10, 10))
}
