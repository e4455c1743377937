package window

import (
	"fmt"
	"image"
	"image/draw"
	"time"
	"unicode"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/surface"
	"github.com/example/gridpaint/internal/theme"
	"github.com/sirupsen/logrus"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// EraseColor is the color assigned by the erase swatch.
const EraseColor = "transparent"

const messageDuration = 2 * time.Second

// Actions are the output operations offered by the window. Each receives a
// copy of the canvas. Nil actions are reported as unavailable.
type Actions struct {
	Save   func(img *image.RGBA) (string, error)
	Copy   func(img *image.RGBA) error
	Export func(img *image.RGBA) (string, error)
}

// Settings carries live configuration changes into the window.
type Settings struct {
	Palette []colors.Entry
	Theme   *theme.Theme
}

// Controller owns the window state and turns input events into painter
// calls. It has no dependency on a running window so it can be driven
// directly.
type Controller struct {
	painter *gridpaint.Painter
	canvas  *surface.ImageSurface
	palette []colors.Entry
	theme   *theme.Theme
	actions Actions
	layout  Layout

	message      string
	messageUntil time.Time
	now          func() time.Time

	shortcuts map[shortcut]func()
}

type shortcut struct {
	r   rune
	mod key.Modifiers
}

// NewController wires a painter over canvas.
func NewController(p *gridpaint.Painter, canvas *surface.ImageSurface, palette []colors.Entry, th *theme.Theme, actions Actions) *Controller {
	if palette == nil {
		palette = colors.DefaultPalette()
	}
	if th == nil {
		th = theme.Default()
	}
	c := &Controller{
		painter: p,
		canvas:  canvas,
		palette: palette,
		theme:   th,
		actions: actions,
		now:     time.Now,
	}
	size := WindowSize(canvas.Image().Bounds().Size(), len(palette))
	c.Resize(size.X, size.Y)
	c.registerShortcuts()
	return c
}

// Layout returns the current layout.
func (c *Controller) Layout() Layout { return c.layout }

// Resize recomputes the layout for a new window size and keeps the canvas
// surface positioned where it is drawn.
func (c *Controller) Resize(width, height int) {
	c.layout = NewLayout(width, height, len(c.palette), c.canvas.Image().Bounds().Size())
	c.canvas.SetOrigin(c.layout.Canvas.Min)
}

// Apply installs new palette and theme settings.
func (c *Controller) Apply(s Settings) {
	if s.Palette != nil {
		c.palette = s.Palette
		c.canvas.SetResolver(colors.NewResolver(s.Palette))
		c.Resize(c.layout.Width, c.layout.Height)
	}
	if s.Theme != nil {
		c.theme = s.Theme
	}
	c.setMessage("settings reloaded")
}

// HandleMouse processes a mouse event and reports whether a repaint is
// needed.
func (c *Controller) HandleMouse(e mouse.Event) bool {
	pos := gridpaint.Point{X: float64(e.X), Y: float64(e.Y)}
	p := image.Pt(int(e.X), int(e.Y))

	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		if c.messageActive() {
			c.messageUntil = time.Time{}
		}
		if i := c.layout.SwatchAt(p); i >= 0 {
			c.painter.SetColor(c.palette[i].Name)
			return true
		}
		if p.In(c.layout.Erase) {
			c.painter.SetColor(EraseColor)
			return true
		}
		if n := c.layout.BrushAt(p); n > 0 {
			c.painter.SetBrushSize(n)
			return true
		}
		if c.layout.InToolbar(p) || !p.In(c.layout.Canvas) {
			return false
		}
		c.painter.PointerDown(pos)
		return true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		c.painter.PointerUp()
		return false
	case mouse.DirNone:
		if !c.painter.Painting() {
			return false
		}
		c.painter.PointerMove(pos)
		return true
	}
	return false
}

// HandleKey processes a key event. quit is true when the user asked to
// close the window.
func (c *Controller) HandleKey(e key.Event) (dirty, quit bool) {
	if e.Direction != key.DirPress {
		return false, false
	}
	if e.Code == key.CodeEscape {
		return false, true
	}
	r := unicode.ToLower(e.Rune)
	mods := e.Modifiers & (key.ModControl | key.ModMeta)
	if mods == 0 {
		switch {
		case r == 'q':
			return false, true
		case r >= '1' && r <= '9':
			c.painter.SetBrushSize(int(r - '0'))
			return true, false
		case r == '0':
			c.painter.SetColor("")
			c.setMessage("color cleared")
			return true, false
		}
	}
	if fn, ok := c.shortcuts[shortcut{r, mods}]; ok {
		fn()
		return true, false
	}
	return false, false
}

func (c *Controller) registerShortcuts() {
	c.shortcuts = map[shortcut]func(){}
	register := func(r rune, fn func()) {
		c.shortcuts[shortcut{r, key.ModControl}] = fn
		c.shortcuts[shortcut{r, key.ModMeta}] = fn
	}
	register('s', c.save)
	register('c', c.copy)
	register('e', c.export)
	register('n', func() {
		c.painter.PointerUp()
		c.canvas.Clear()
		c.setMessage("canvas cleared")
	})
}

func (c *Controller) save() {
	if c.actions.Save == nil {
		c.setMessage("save is not available")
		return
	}
	path, err := c.actions.Save(c.Snapshot())
	if err != nil {
		logrus.WithError(err).Error("save")
		c.setMessage(fmt.Sprintf("save failed: %v", err))
		return
	}
	c.setMessage(fmt.Sprintf("saved %s", path))
}

func (c *Controller) copy() {
	if c.actions.Copy == nil {
		c.setMessage("copy is not available")
		return
	}
	if err := c.actions.Copy(c.Snapshot()); err != nil {
		logrus.WithError(err).Error("copy")
		c.setMessage(fmt.Sprintf("copy failed: %v", err))
		return
	}
	c.setMessage("painting copied to clipboard")
}

func (c *Controller) export() {
	if c.actions.Export == nil {
		c.setMessage("export is not available")
		return
	}
	path, err := c.actions.Export(c.Snapshot())
	if err != nil {
		logrus.WithError(err).Error("export")
		c.setMessage(fmt.Sprintf("export failed: %v", err))
		return
	}
	c.setMessage(fmt.Sprintf("exported %s", path))
}

// Snapshot returns a copy of the canvas.
func (c *Controller) Snapshot() *image.RGBA {
	src := c.canvas.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

// Message returns the status line and whether it is still showing.
func (c *Controller) Message() (string, bool) {
	return c.message, c.messageActive()
}

func (c *Controller) messageActive() bool {
	return c.message != "" && c.now().Before(c.messageUntil)
}

func (c *Controller) setMessage(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
	logrus.Debug(msg)
}

// frame captures everything needed to draw one frame.
func (c *Controller) frame() frameState {
	msg := ""
	if c.messageActive() {
		msg = c.message
	}
	return frameState{
		layout:  c.layout,
		canvas:  c.Snapshot(),
		palette: c.palette,
		theme:   c.theme,
		color:   c.painter.Color(),
		brush:   c.painter.BrushSize(),
		message: msg,
	}
}
