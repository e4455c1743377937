// Package surface provides drawable targets for the grid painter.
package surface

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/sirupsen/logrus"
)

var _ gridpaint.Surface = (*ImageSurface)(nil)

// ImageSurface is an RGBA canvas placed at an origin in viewport space.
type ImageSurface struct {
	img      *image.RGBA
	origin   image.Point
	resolver *colors.Resolver
	onChange func(image.Rectangle)

	cacheMu sync.Mutex
	cache   map[string]color.RGBA
	bad     map[string]bool
}

// Option modifies an ImageSurface during creation.
type Option func(*ImageSurface)

// WithOrigin places the canvas at p in viewport coordinates.
func WithOrigin(p image.Point) Option { return func(s *ImageSurface) { s.origin = p } }

// WithResolver sets the resolver used for color strings.
func WithResolver(r *colors.Resolver) Option { return func(s *ImageSurface) { s.resolver = r } }

// WithChangeListener registers a callback receiving each filled rectangle
// after clipping.
func WithChangeListener(fn func(image.Rectangle)) Option {
	return func(s *ImageSurface) { s.onChange = fn }
}

// NewImage creates a transparent canvas of the given size.
func NewImage(width, height int, opts ...Option) *ImageSurface {
	return FromImage(image.NewRGBA(image.Rect(0, 0, width, height)), opts...)
}

// FromImage wraps an existing canvas. Bounds are rebased to a zero origin.
func FromImage(img *image.RGBA, opts ...Option) *ImageSurface {
	if img.Bounds().Min != (image.Point{}) {
		rebased := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rebased, rebased.Bounds(), img, img.Bounds().Min, draw.Src)
		img = rebased
	}
	s := &ImageSurface{
		img:   img,
		cache: make(map[string]color.RGBA),
		bad:   make(map[string]bool),
	}
	for _, o := range opts {
		o(s)
	}
	if s.resolver == nil {
		s.resolver = colors.NewResolver(nil)
	}
	return s
}

// Image returns the backing canvas.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Origin returns the viewport position of the canvas' top-left corner.
func (s *ImageSurface) Origin() image.Point { return s.origin }

// SetOrigin moves the canvas within the viewport.
func (s *ImageSurface) SetOrigin(p image.Point) { s.origin = p }

// SetResolver swaps the color resolver, dropping cached lookups.
func (s *ImageSurface) SetResolver(r *colors.Resolver) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.resolver = r
	s.cache = make(map[string]color.RGBA)
	s.bad = make(map[string]bool)
}

// ViewRect returns the canvas rectangle in viewport coordinates.
func (s *ImageSurface) ViewRect() image.Rectangle {
	return s.img.Bounds().Add(s.origin)
}

// BoundingRect implements gridpaint.Surface.
func (s *ImageSurface) BoundingRect() gridpaint.Rect {
	b := s.img.Bounds()
	return gridpaint.Rect{
		Left:   float64(s.origin.X),
		Top:    float64(s.origin.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// FillRect implements gridpaint.Surface. Fills replace the pixels they
// cover, so a transparent color erases. Unknown colors are skipped.
func (s *ImageSurface) FillRect(x, y, w, h int, spec string) {
	c, ok := s.resolve(spec)
	if !ok {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
	if s.onChange != nil {
		s.onChange(r)
	}
}

// Clear resets every pixel to transparent.
func (s *ImageSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if s.onChange != nil {
		s.onChange(s.img.Bounds())
	}
}

func (s *ImageSurface) resolve(spec string) (color.RGBA, bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if c, ok := s.cache[spec]; ok {
		return c, true
	}
	if s.bad[spec] {
		return color.RGBA{}, false
	}
	c, err := s.resolver.Resolve(spec)
	if err != nil {
		s.bad[spec] = true
		logrus.WithField("color", spec).WithError(err).Warn("skipping fill with unknown color")
		return color.RGBA{}, false
	}
	s.cache[spec] = c
	return c, true
}
