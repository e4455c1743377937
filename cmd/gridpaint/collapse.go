package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"math/rand"
	"os"

	"github.com/example/gridpaint/internal/config"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/tilemap"
	"github.com/sirupsen/logrus"
)

const defaultIterations = 5

var errNoCells = errors.New("image is smaller than one grid cell")

// collapseCmd turns a painting into a terrain tile map.
type collapseCmd struct {
	file          string
	fromClipboard bool
	iterations    int
	seed          int64
	keepPainted   bool
	output        string
	preview       string
	*root
	fs *flag.FlagSet
}

func (c *collapseCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCollapseCmd(args []string, r *root) (*collapseCmd, error) {
	fs := flag.NewFlagSet("collapse", flag.ExitOnError)
	c := &collapseCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "painted PNG to read")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "read the painting from the clipboard")
	fs.BoolVar(&c.fromClipboard, "from-clip", false, "read the painting from the clipboard (alias)")
	fs.IntVar(&c.iterations, "iterations", defaultIterations, "number of rule rounds")
	fs.Int64Var(&c.seed, "seed", 0, "random seed (0 picks one)")
	fs.BoolVar(&c.keepPainted, "keep-painted", false, "never change painted cells")
	fs.StringVar(&c.output, "output", "map.yaml", "tile map output path (- for stdout)")
	fs.StringVar(&c.preview, "preview", "", "optional PNG preview of the tile map")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.file == "" && !c.fromClipboard {
		return nil, fmt.Errorf("an input file or -from-clipboard is required")
	}
	if c.file != "" && c.fromClipboard {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be combined")
	}
	if c.iterations < 0 {
		return nil, fmt.Errorf("iterations must not be negative")
	}
	return c, nil
}

func (c *collapseCmd) Run() error {
	var (
		img *image.RGBA
		err error
	)
	if c.fromClipboard {
		img, err = loadClipboard()
	} else {
		img, err = loadPNG(c.file)
	}
	if err != nil {
		return err
	}

	seed := c.seed
	if seed == 0 {
		seed = nowFn().UnixNano()
	}
	m, grid, err := collapseImage(img, c.config, tilemap.Options{
		Iterations:  c.iterations,
		Rand:        rand.New(rand.NewSource(seed)),
		KeepPainted: c.keepPainted,
	})
	if err != nil {
		return err
	}
	m.Seed = seed

	if err := writeMap(c.output, m); err != nil {
		return err
	}
	var preview image.Image
	if c.preview != "" {
		preview = tilemap.Render(grid, gridpaint.CellSize, nil)
		if err := savePNG(c.preview, preview); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
	}
	logrus.WithFields(logrus.Fields{
		"width":  m.Width,
		"height": m.Height,
		"seed":   seed,
	}).Debug("collapsed tile map")
	if c.output != "-" && c.root != nil && c.notifier != nil {
		c.notifier.Export(c.output, preview)
	}
	return nil
}

// collapseImage classifies img by the configured tile colors and collapses
// it into a tile map.
func collapseImage(img image.Image, cfg *config.Config, opts tilemap.Options) (*tilemap.Map, [][]tilemap.Kind, error) {
	if cfg == nil {
		cfg = config.New()
	}
	kinds, err := cfg.TileColors()
	if err != nil {
		logrus.WithError(err).Warn("tile colors")
	}
	painted := tilemap.FromImage(img, gridpaint.CellSize, tilemap.PaletteClassifier(kinds))
	if len(painted) == 0 || len(painted[0]) == 0 {
		return nil, nil, errNoCells
	}
	grid, err := tilemap.Collapse(len(painted[0]), len(painted), painted, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("collapse: %w", err)
	}
	return tilemap.NewMap(grid, gridpaint.CellSize), grid, nil
}

func writeMap(path string, m *tilemap.Map) error {
	if path == "-" {
		if err := m.Encode(os.Stdout); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
