package tilemap

import (
	"image"
	"image/color"
	"image/draw"
)

// Classifier maps a painted cell color to a terrain kind. Returning
// Unpainted leaves the cell to chance.
type Classifier func(color.RGBA) Kind

// PaletteClassifier classifies exact color matches using kinds.
func PaletteClassifier(kinds map[color.RGBA]Kind) Classifier {
	return func(c color.RGBA) Kind {
		if c.A == 0 {
			return Unpainted
		}
		if k, ok := kinds[c]; ok {
			return k
		}
		return Unpainted
	}
}

// FromImage samples the top-left pixel of every cellSize cell of img. Cells
// that only partly fit at the right or bottom edge are dropped.
func FromImage(img image.Image, cellSize int, classify Classifier) [][]Kind {
	b := img.Bounds()
	if cellSize <= 0 {
		cellSize = 1
	}
	width := b.Dx() / cellSize
	height := b.Dy() / cellSize
	grid := newGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x*cellSize, b.Min.Y+y*cellSize)).(color.RGBA)
			grid[y][x] = classify(c)
		}
	}
	return grid
}

// DefaultColors is the preview palette for each kind.
func DefaultColors() map[Kind]color.RGBA {
	return map[Kind]color.RGBA{
		Land:         {194, 178, 128, 255},
		CoastalWater: {64, 164, 223, 255},
		Water:        {16, 64, 160, 255},
		Grass:        {96, 176, 64, 255},
		Forest:       {24, 96, 40, 255},
	}
}

// Render draws grid with one cellSize square per cell. Kinds missing from
// palette stay transparent.
func Render(grid [][]Kind, cellSize int, palette map[Kind]color.RGBA) *image.RGBA {
	if palette == nil {
		palette = DefaultColors()
	}
	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, width*cellSize, height*cellSize))
	for y, row := range grid {
		for x, k := range row {
			c, ok := palette[k]
			if !ok {
				continue
			}
			r := image.Rect(x*cellSize, y*cellSize, (x+1)*cellSize, (y+1)*cellSize)
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}
