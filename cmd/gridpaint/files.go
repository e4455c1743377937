package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/example/gridpaint/internal/clipboard"
)

var nowFn = time.Now

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	img, err := png.Decode(f)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return toRGBA(img), nil
}

func loadClipboard() (*image.RGBA, error) {
	img, err := clipboard.ReadImage()
	if err != nil {
		return nil, fmt.Errorf("read clipboard image: %w", err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// timestampedPath returns dir/prefix-YYYYMMDD-HHMMSS.ext.
func timestampedPath(dir, prefix, ext string) string {
	name := fmt.Sprintf("%s-%s.%s", prefix, nowFn().Format("20060102-150405"), ext)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
