package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/theme"
	"github.com/example/gridpaint/internal/tilemap"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Export bool
}

// Canvas holds the initial canvas size in pixels.
type Canvas struct {
	Width  int
	Height int
}

// Config holds the application configuration.
type Config struct {
	Color   string // initial paint color, empty leaves it unset
	Brush   int
	Canvas  Canvas
	Theme   string
	SaveDir string
	Notify  Notify
	// Palette lists entries that replace or extend the default palette.
	Palette []colors.Entry
	// Tiles maps palette color names to terrain kinds for map export.
	Tiles  map[string]tilemap.Kind
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Brush:  1,
		Canvas: Canvas{Width: DefaultWidth, Height: DefaultHeight},
		Tiles:  DefaultTiles(),
		Themes: make(map[string]*theme.Theme),
	}
}

// DefaultTiles returns the palette to terrain mapping used when the
// configuration has no [tiles] section.
func DefaultTiles() map[string]tilemap.Kind {
	return map[string]tilemap.Kind{
		"Yellow": tilemap.Land,
		"Cyan":   tilemap.CoastalWater,
		"Blue":   tilemap.Water,
		"Lime":   tilemap.Grass,
		"Green":  tilemap.Forest,
	}
}

// SetPaletteColor replaces the palette entry called name or appends it.
func (c *Config) SetPaletteColor(name string, col color.RGBA) {
	for i, e := range c.Palette {
		if strings.EqualFold(e.Name, name) {
			c.Palette[i].Color = col
			return
		}
	}
	c.Palette = append(c.Palette, colors.Entry{Name: name, Color: col})
}

// PaletteEntries merges the configured palette over the default one.
func (c *Config) PaletteEntries() []colors.Entry {
	out := colors.DefaultPalette()
	for _, e := range c.Palette {
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Name, e.Name) {
				out[i].Color = e.Color
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, e)
		}
	}
	return out
}

// Resolver returns a color resolver over PaletteEntries.
func (c *Config) Resolver() *colors.Resolver {
	return colors.NewResolver(c.PaletteEntries())
}

// TileColors maps the resolved color of every [tiles] entry to its kind.
// Names that don't resolve are reported in the error, the rest still map.
func (c *Config) TileColors() (map[color.RGBA]tilemap.Kind, error) {
	r := c.Resolver()
	out := make(map[color.RGBA]tilemap.Kind, len(c.Tiles))
	var bad []string
	for name, kind := range c.Tiles {
		col, err := r.Resolve(name)
		if err != nil {
			bad = append(bad, name)
			continue
		}
		out[col] = kind
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return out, fmt.Errorf("unknown tile colors: %s", strings.Join(bad, ", "))
	}
	return out, nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	fmt.Fprintf(&sb, "brush = %d\n", c.Brush)
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	if len(c.Palette) > 0 {
		sb.WriteString("[palette]\n")
		for _, e := range c.Palette {
			fmt.Fprintf(&sb, "%s = %s\n", e.Name, colors.Hex(e.Color))
		}
		sb.WriteString("\n")
	}

	// An empty [tiles] section still disables the default mapping.
	if c.Tiles != nil {
		sb.WriteString("[tiles]\n")
		names := make([]string, 0, len(c.Tiles))
		for name := range c.Tiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "%s = %s\n", name, c.Tiles[name])
		}
		sb.WriteString("\n")
	}

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, colors.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
