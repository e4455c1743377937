//go:build js && wasm

// Command gridpaint-wasm binds the grid painter to the #paint-canvas element
// of the hosting page.
package main

import (
	"strconv"
	"syscall/js"

	"github.com/example/gridpaint/internal/gridpaint"
	"github.com/example/gridpaint/internal/surface"
	"github.com/sirupsen/logrus"
)

const canvasID = "paint-canvas"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	global := js.Global()
	doc := global.Get("document")

	var painter *gridpaint.Painter
	pending := gridpaint.New(nil)

	// The page can pick a color before the canvas is bound.
	global.Set("setPaintColor", js.FuncOf(func(this js.Value, args []js.Value) any {
		target := pending
		if painter != nil {
			target = painter
		}
		if len(args) == 0 || args[0].IsNull() || args[0].IsUndefined() {
			target.SetColor("")
			return nil
		}
		target.SetColor(args[0].String())
		return nil
	}))
	global.Set("setBrushSize", js.FuncOf(func(this js.Value, args []js.Value) any {
		target := pending
		if painter != nil {
			target = painter
		}
		if len(args) == 0 {
			target.SetBrushSize(gridpaint.DefaultBrushSize)
			return nil
		}
		target.SetBrushSize(brushArg(args[0]))
		return nil
	}))

	setup := js.FuncOf(func(this js.Value, args []js.Value) any {
		el := doc.Call("getElementById", canvasID)
		if el.IsNull() {
			logrus.WithField("id", canvasID).Error("canvas not found")
			return nil
		}
		painter = gridpaint.New(surface.NewCanvas(el),
			gridpaint.WithColor(pending.Color()),
			gridpaint.WithBrushSize(pending.BrushSize()),
		)
		bind(el, painter)
		logrus.WithField("id", canvasID).Info("painter ready")
		return nil
	})

	// Wasm usually starts after the document finished parsing.
	if doc.Get("readyState").String() == "loading" {
		doc.Call("addEventListener", "DOMContentLoaded", setup)
	} else {
		setup.Invoke()
	}

	select {}
}

func bind(el js.Value, p *gridpaint.Painter) {
	point := func(e js.Value) gridpaint.Point {
		return gridpaint.Point{X: e.Get("clientX").Float(), Y: e.Get("clientY").Float()}
	}
	el.Call("addEventListener", "mousedown", js.FuncOf(func(this js.Value, args []js.Value) any {
		p.PointerDown(point(args[0]))
		return nil
	}))
	el.Call("addEventListener", "mousemove", js.FuncOf(func(this js.Value, args []js.Value) any {
		p.PointerMove(point(args[0]))
		return nil
	}))
	el.Call("addEventListener", "mouseup", js.FuncOf(func(this js.Value, args []js.Value) any {
		p.PointerUp()
		return nil
	}))
}

// brushArg accepts a number or a numeric string; anything else yields 0,
// which the painter turns into the default size.
func brushArg(v js.Value) int {
	switch v.Type() {
	case js.TypeNumber:
		return v.Int()
	case js.TypeString:
		n, _ := strconv.Atoi(v.String())
		return n
	}
	return 0
}
