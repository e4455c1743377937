// Package colors resolves the color strings used by the painter into RGBA
// values.
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/image/colornames"
)

// Entry is a named palette color.
type Entry struct {
	Name  string
	Color color.RGBA
}

// DefaultPalette returns the palette offered by the UI.
func DefaultPalette() []Entry {
	return []Entry{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Maroon", color.RGBA{128, 0, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Navy", color.RGBA{0, 0, 128, 255}},
		{"Olive", color.RGBA{128, 128, 0, 255}},
		{"Teal", color.RGBA{0, 128, 128, 255}},
		{"Purple", color.RGBA{128, 0, 128, 255}},
		{"Silver", color.RGBA{192, 192, 192, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
	}
}

// Resolver maps color strings to RGBA values. Palette names take precedence
// over hex, X11 and CSS color syntax.
type Resolver struct {
	palette []Entry
}

// NewResolver returns a resolver using palette. A nil palette uses
// DefaultPalette.
func NewResolver(palette []Entry) *Resolver {
	if palette == nil {
		palette = DefaultPalette()
	}
	p := make([]Entry, len(palette))
	copy(p, palette)
	return &Resolver{palette: p}
}

// Palette returns a copy of the configured palette.
func (r *Resolver) Palette() []Entry {
	out := make([]Entry, len(r.palette))
	copy(out, r.palette)
	return out
}

// Lookup returns the palette entry called name.
func (r *Resolver) Lookup(name string) (Entry, bool) {
	name = strings.TrimSpace(name)
	for _, e := range r.palette {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// NameOf returns the palette name for c, if any.
func (r *Resolver) NameOf(c color.RGBA) (string, bool) {
	for _, e := range r.palette {
		if e.Color == c {
			return e.Name, true
		}
	}
	return "", false
}

// Resolve parses spec.
func (r *Resolver) Resolve(spec string) (color.RGBA, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if e, ok := r.Lookup(s); ok {
		return e.Color, nil
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "#") && (len(lower) == 7 || len(lower) == 9) {
		return ParseHex(lower)
	}
	if c, ok := colornames.Map[lower]; ok {
		return c, nil
	}
	if lower == "transparent" {
		return color.RGBA{}, nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	cr, cg, cb, ca := c.RGBA255()
	return color.RGBA{R: cr, G: cg, B: cb, A: ca}, nil
}

// ParseHex parses #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
