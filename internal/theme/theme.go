package theme

import (
	"image/color"
)

// Theme defines the colors of the painting window.
type Theme struct {
	Name string

	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Status text

	// Palette and brush bars
	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonSelected    color.RGBA
	ButtonText        color.RGBA
	ButtonBorder      color.RGBA

	// Canvas
	CanvasBackground color.RGBA
	GridLine         color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		ToolbarBackground: color.RGBA{220, 220, 220, 255},
		ButtonBackground:  color.RGBA{200, 200, 200, 255},
		ButtonSelected:    color.RGBA{150, 150, 150, 255},
		ButtonText:        color.RGBA{0, 0, 0, 255},
		ButtonBorder:      color.RGBA{0, 0, 0, 255},
		CanvasBackground:  color.RGBA{255, 255, 255, 255},
		GridLine:          color.RGBA{230, 230, 230, 255},
	}
}
