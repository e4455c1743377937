package main

import (
	"flag"
	"fmt"
	"image"
	"sync"

	"github.com/example/gridpaint/internal/clipboard"
	"github.com/example/gridpaint/internal/config"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/surface"
	"github.com/example/gridpaint/internal/tilemap"
	"github.com/example/gridpaint/internal/window"
	"github.com/sirupsen/logrus"
)

// paintCmd opens the painting window.
type paintCmd struct {
	width  int
	height int
	color  string
	brush  int
	output string
	reload bool
	*root
	fs *flag.FlagSet

	mu  sync.Mutex
	cfg *config.Config
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	cfg := config.New()
	if r != nil && r.config != nil {
		cfg = r.config
	}
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r, fs: fs, cfg: cfg}
	fs.Usage = usageFunc(p)
	fs.IntVar(&p.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&p.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&p.color, "color", cfg.Color, "initial paint color (empty leaves it unset)")
	fs.IntVar(&p.brush, "brush", cfg.Brush, "initial brush size in cells")
	fs.StringVar(&p.output, "output", "", "file written by ctrl+s (defaults to a timestamped file in save_dir)")
	fs.BoolVar(&p.reload, "reload", true, "reload palette and theme when the config file changes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	if p.width < gridpaint.CellSize || p.height < gridpaint.CellSize {
		return nil, fmt.Errorf("canvas must be at least %dx%d, got %dx%d", gridpaint.CellSize, gridpaint.CellSize, p.width, p.height)
	}
	return p, nil
}

func (p *paintCmd) currentConfig() *config.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

func (p *paintCmd) Run() error {
	cfg := p.currentConfig()
	canvas := surface.NewImage(p.width, p.height, surface.WithResolver(cfg.Resolver()))
	opts := []window.Option{
		window.WithCanvas(canvas),
		window.WithColor(p.color),
		window.WithBrushSize(p.brush),
		window.WithPalette(cfg.PaletteEntries()),
		window.WithActions(window.Actions{
			Save:   p.save,
			Copy:   p.copy,
			Export: p.export,
		}),
	}
	if p.root != nil && p.activeTheme != nil {
		opts = append(opts, window.WithTheme(p.activeTheme))
	}
	if p.reload && p.root != nil && p.configPath != "" {
		w, err := config.Watch(p.configPath)
		if err != nil {
			logrus.WithError(err).WithField("path", p.configPath).Warn("config reload disabled")
		} else {
			stop := make(chan struct{})
			opts = append(opts,
				window.WithUpdates(p.forward(w, stop)),
				window.WithOnClose(func() {
					close(stop)
					_ = w.Close()
				}),
			)
		}
	}
	window.New(opts...).Run()
	return nil
}

// forward turns reloaded configurations into window settings until stop
// is closed.
func (p *paintCmd) forward(w *config.Watcher, stop <-chan struct{}) <-chan window.Settings {
	out := make(chan window.Settings, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-stop:
				return
			case cfg, ok := <-w.Updates:
				if !ok {
					return
				}
				p.mu.Lock()
				p.cfg = cfg
				p.mu.Unlock()
				logrus.WithField("path", p.configPath).Info("config reloaded")
				st := window.Settings{
					Palette: cfg.PaletteEntries(),
					Theme:   p.resolveTheme(cfg),
				}
				select {
				case out <- st:
				case <-stop:
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warn("config reload")
			}
		}
	}()
	return out
}

func (p *paintCmd) save(img *image.RGBA) (string, error) {
	path := p.output
	if path == "" {
		path = timestampedPath(p.currentConfig().SaveDir, "gridpaint", "png")
	}
	if err := savePNG(path, img); err != nil {
		return "", err
	}
	p.root.notifySave(path)
	return path, nil
}

func (p *paintCmd) copy(img *image.RGBA) error {
	if err := clipboard.WriteImage(img); err != nil {
		return fmt.Errorf("copy PNG to clipboard: %w", err)
	}
	p.root.notifyCopy("painting")
	return nil
}

func (p *paintCmd) export(img *image.RGBA) (string, error) {
	cfg := p.currentConfig()
	m, grid, err := collapseImage(img, cfg, tilemap.Options{Iterations: defaultIterations})
	if err != nil {
		return "", err
	}
	path := timestampedPath(cfg.SaveDir, "gridpaint-map", "yaml")
	if err := writeMap(path, m); err != nil {
		return "", err
	}
	if p.root != nil && p.notifier != nil {
		p.notifier.Export(path, tilemap.Render(grid, gridpaint.CellSize, nil))
	}
	return path, nil
}
