// Package window runs the desktop painting window on top of shiny.
package window

import (
	"context"
	"image"
	"time"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/surface"
	"github.com/example/gridpaint/internal/theme"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// ProgramTitle is the base window title.
const ProgramTitle = "GridPaint"

// App holds the configuration of a painting window.
type App struct {
	Title   string
	Canvas  *surface.ImageSurface
	Painter *gridpaint.Painter
	Palette []colors.Entry
	Theme   *theme.Theme
	Actions Actions

	color   string
	brush   int
	updates <-chan Settings
	onClose func()
}

// Option modifies an App during creation.
type Option func(*App)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.Title = title } }

// WithCanvas sets the surface the window paints on.
func WithCanvas(s *surface.ImageSurface) Option { return func(a *App) { a.Canvas = s } }

// WithColor sets the color selected when the window opens.
func WithColor(c string) Option { return func(a *App) { a.color = c } }

// WithBrushSize sets the brush size selected when the window opens.
func WithBrushSize(n int) Option { return func(a *App) { a.brush = n } }

// WithPalette sets the palette swatches.
func WithPalette(p []colors.Entry) Option { return func(a *App) { a.Palette = p } }

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithActions sets the save, copy and export handlers.
func WithActions(act Actions) Option { return func(a *App) { a.Actions = act } }

// WithUpdates delivers live settings into the running window.
func WithUpdates(ch <-chan Settings) Option { return func(a *App) { a.updates = ch } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{Title: ProgramTitle}
	for _, o := range opts {
		o(a)
	}
	if a.Palette == nil {
		a.Palette = colors.DefaultPalette()
	}
	if a.Canvas == nil {
		a.Canvas = surface.NewImage(640, 480, surface.WithResolver(colors.NewResolver(a.Palette)))
	}
	a.Painter = gridpaint.New(a.Canvas, gridpaint.WithColor(a.color), gridpaint.WithBrushSize(a.brush))
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *App) Main(s screen.Screen) {
	ctl := NewController(a.Painter, a.Canvas, a.Palette, a.Theme, a.Actions)
	l := ctl.Layout()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: l.Width, Height: l.Height, Title: a.Title})
	if err != nil {
		logrus.WithError(err).Fatal("new window")
	}
	defer w.Release()
	if a.onClose != nil {
		defer a.onClose()
	}

	done := make(chan struct{})
	defer close(done)
	if a.updates != nil {
		go func() {
			for {
				select {
				case st, ok := <-a.updates:
					if !ok {
						return
					}
					w.Send(st)
				case <-done:
					return
				}
			}
		}()
	}

	frames := startFrames(func(ctx context.Context, st frameState) { drawFrame(ctx, s, w, st) })
	// The in-flight frame must finish before the window is released.
	defer frames.stop()

	var expiry *time.Timer
	scheduleExpiry := func() {
		if _, showing := ctl.Message(); !showing {
			return
		}
		if expiry != nil {
			expiry.Stop()
		}
		expiry = time.AfterFunc(messageDuration, func() { w.Send(paint.Event{}) })
	}
	defer func() {
		if expiry != nil {
			expiry.Stop()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				frames.cancelCurrent()
				return
			}
		case size.Event:
			ctl.Resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			frames.submit(ctl.frame())
		case mouse.Event:
			if ctl.HandleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			dirty, quit := ctl.HandleKey(e)
			if quit {
				return
			}
			if dirty {
				scheduleExpiry()
				w.Send(paint.Event{})
			}
		case Settings:
			ctl.Apply(e)
			scheduleExpiry()
			w.Send(paint.Event{})
		case error:
			logrus.WithError(e).Error("window event")
		}
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st frameState) {
	b, err := s.NewBuffer(image.Point{st.layout.Width, st.layout.Height})
	if err != nil {
		logrus.WithError(err).Error("new buffer")
		return
	}
	defer b.Release()

	compose(b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
