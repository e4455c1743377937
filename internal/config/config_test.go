package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/gridpaint/internal/tilemap"
)

func TestParse(t *testing.T) {
	input := `
color = Red
brush = 3
width = 400
height = 200
theme = my_custom_theme
save_dir = /tmp/paintings

[notify]
save = true
copy = false
export = true

[palette]
Sand = #C2B280
Red = #EE1111

[tiles]
Sand = land
Blue = water

[theme.my_custom_theme]
Background = #111111
GridLine = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Color != "Red" {
		t.Errorf("Expected color 'Red', got '%s'", cfg.Color)
	}
	if cfg.Brush != 3 {
		t.Errorf("Expected brush 3, got %d", cfg.Brush)
	}
	if cfg.Canvas.Width != 400 || cfg.Canvas.Height != 200 {
		t.Errorf("Unexpected canvas size %+v", cfg.Canvas)
	}
	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/paintings" {
		t.Errorf("Expected save_dir '/tmp/paintings', got '%s'", cfg.SaveDir)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Export {
		t.Errorf("Unexpected notify settings %+v", cfg.Notify)
	}

	if len(cfg.Palette) != 2 {
		t.Fatalf("Expected 2 palette entries, got %d", len(cfg.Palette))
	}
	entries := cfg.PaletteEntries()
	var red, sand *color.RGBA
	for i := range entries {
		switch entries[i].Name {
		case "Red":
			red = &entries[i].Color
		case "Sand":
			sand = &entries[i].Color
		}
	}
	if red == nil || *red != (color.RGBA{0xEE, 0x11, 0x11, 255}) {
		t.Errorf("Red override not applied: %v", red)
	}
	if sand == nil || *sand != (color.RGBA{0xC2, 0xB2, 0x80, 255}) {
		t.Errorf("Sand not appended: %v", sand)
	}

	if len(cfg.Tiles) != 2 || cfg.Tiles["Sand"] != tilemap.Land || cfg.Tiles["Blue"] != tilemap.Water {
		t.Errorf("Unexpected tiles %v", cfg.Tiles)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"brush":   "brush = zero",
		"width":   "width = -3",
		"notify":  "[notify]\nsave = maybe",
		"palette": "[palette]\nSand = sandy",
		"tiles":   "[tiles]\nRed = lava",
		"theme":   "[theme.x]\nGridLine = red",
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()
	if cfg.Brush != 1 || cfg.Color != "" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	colors, err := cfg.TileColors()
	if err != nil {
		t.Fatalf("TileColors: %v", err)
	}
	if colors[color.RGBA{255, 255, 0, 255}] != tilemap.Land {
		t.Errorf("Yellow should map to land")
	}
}

func TestTileColorsReportsUnknown(t *testing.T) {
	cfg := New()
	cfg.Tiles = map[string]tilemap.Kind{"Nope": tilemap.Land, "Blue": tilemap.Water}
	colors, err := cfg.TileColors()
	if err == nil || !strings.Contains(err.Error(), "Nope") {
		t.Fatalf("expected error naming Nope, got %v", err)
	}
	if len(colors) != 1 {
		t.Errorf("expected the known entry to still map, got %v", colors)
	}
}

func TestCircular(t *testing.T) {
	input := `color = #00FF00
brush = 2
theme = dark
save_dir = /home/user/paint

[notify]
save = true
copy = true
export = false

[palette]
Sand = #C2B280

[tiles]
Sand = land

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Color != cfg2.Color || cfg.Brush != cfg2.Brush || cfg.Canvas != cfg2.Canvas {
		t.Errorf("Root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("Theme/SaveDir mismatch: %q/%q vs %q/%q", cfg.Theme, cfg.SaveDir, cfg2.Theme, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if len(cfg2.Palette) != 1 || cfg2.Palette[0] != cfg.Palette[0] {
		t.Errorf("Palette mismatch: %v vs %v", cfg.Palette, cfg2.Palette)
	}
	if len(cfg2.Tiles) != 1 || cfg2.Tiles["Sand"] != tilemap.Land {
		t.Errorf("Tiles mismatch: %v", cfg2.Tiles)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestCircularEmptyTiles(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[tiles]\n"))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	if len(cfg.Tiles) != 0 {
		t.Fatalf("expected no tiles, got %v", cfg.Tiles)
	}

	out := cfg.String()
	if !strings.Contains(out, "[tiles]\n") {
		t.Fatalf("expected an empty [tiles] section in:\n%s", out)
	}
	cfg2, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if len(cfg2.Tiles) != 0 {
		t.Errorf("expected tiles to stay disabled, got %v", cfg2.Tiles)
	}
}

func TestLoaderOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("brush = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Brush != 4 {
		t.Errorf("Expected brush 4, got %d", cfg.Brush)
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.rc")
	if err := os.WriteFile(path, []byte("brush = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("brush = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Brush != 5 {
			t.Errorf("Expected reloaded brush 5, got %d", cfg.Brush)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
