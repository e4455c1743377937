package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/example/gridpaint/internal/clipboard"
	"github.com/example/gridpaint/internal/config"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/surface"
	"github.com/sirupsen/logrus"
)

// strokeCmd replays one pointer stroke against an offscreen canvas.
type strokeCmd struct {
	input       string
	output      string
	toClipboard bool
	width       int
	height      int
	color       string
	brush       int
	originX     int
	originY     int
	points      []gridpaint.Point
	*root
	fs *flag.FlagSet
}

func (s *strokeCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseStrokeCmd(args []string, r *root) (*strokeCmd, error) {
	cfg := config.New()
	if r != nil && r.config != nil {
		cfg = r.config
	}
	fs := flag.NewFlagSet("stroke", flag.ExitOnError)
	s := &strokeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.input, "input", "", "PNG to paint on instead of a blank canvas")
	fs.StringVar(&s.output, "output", "painting.png", "output PNG path")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&s.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.IntVar(&s.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&s.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&s.color, "color", cfg.Color, "paint color (empty paints nothing)")
	fs.IntVar(&s.brush, "brush", cfg.Brush, "brush size in cells")
	fs.IntVar(&s.originX, "origin-x", 0, "viewport x of the canvas top-left corner")
	fs.IntVar(&s.originY, "origin-y", 0, "viewport y of the canvas top-left corner")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return nil, &UsageError{of: s}
	}
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("points need an x and a y, got %d values", len(rest))
	}
	for i := 0; i < len(rest); i += 2 {
		x, err := strconv.ParseFloat(rest[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x %q: %w", rest[i], err)
		}
		y, err := strconv.ParseFloat(rest[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y %q: %w", rest[i+1], err)
		}
		s.points = append(s.points, gridpaint.Point{X: x, Y: y})
	}
	if s.input == "" && (s.width < 1 || s.height < 1) {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", s.width, s.height)
	}
	if s.output == "" && !s.toClipboard {
		return nil, fmt.Errorf("an output file or -to-clipboard is required")
	}
	return s, nil
}

func (s *strokeCmd) resolverConfig() *config.Config {
	if s.root != nil && s.config != nil {
		return s.config
	}
	return config.New()
}

func (s *strokeCmd) Run() error {
	opts := []surface.Option{
		surface.WithOrigin(image.Pt(s.originX, s.originY)),
		surface.WithResolver(s.resolverConfig().Resolver()),
	}
	var canvas *surface.ImageSurface
	if s.input != "" {
		img, err := loadPNG(s.input)
		if err != nil {
			return err
		}
		canvas = surface.FromImage(img, opts...)
	} else {
		canvas = surface.NewImage(s.width, s.height, opts...)
	}

	if s.color == "" {
		logrus.Warn("no color set, the stroke paints nothing")
	}
	p := gridpaint.New(canvas, gridpaint.WithColor(s.color), gridpaint.WithBrushSize(s.brush))
	stroke(p, s.points)

	if s.output != "" {
		if err := savePNG(s.output, canvas.Image()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", s.output)
		s.root.notifySave(s.output)
	}
	if s.toClipboard {
		if err := clipboard.WriteImage(canvas.Image()); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		s.root.notifyCopy("stroke")
	}
	return nil
}

// stroke presses at the first point, drags through the rest and releases.
func stroke(p *gridpaint.Painter, points []gridpaint.Point) {
	if len(points) == 0 {
		return
	}
	p.PointerDown(points[0])
	for _, pt := range points[1:] {
		p.PointerMove(pt)
	}
	p.PointerUp()
}
