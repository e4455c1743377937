package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/theme"
	"github.com/example/gridpaint/internal/tilemap"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	tilesSeen := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			if currentSection == "tiles" && !tilesSeen {
				// An explicit [tiles] section replaces the defaults.
				cfg.Tiles = make(map[string]tilemap.Kind)
				tilesSeen = true
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "palette":
			err = setPaletteField(cfg, key, value)
		case currentSection == "tiles":
			err = setTileField(cfg, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		cfg.Color = value
	case "brush":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.Brush = n
	case "width":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.Canvas.Width = n
	case "height":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.Canvas.Height = n
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "export":
		n.Export = b
	}
	return nil
}

func setPaletteField(cfg *Config, key, value string) error {
	col, err := colors.ParseHex(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	cfg.SetPaletteColor(key, col)
	return nil
}

func setTileField(cfg *Config, key, value string) error {
	kind, err := tilemap.ParseKind(value)
	if err != nil {
		return fmt.Errorf("tile for %s: %w", key, err)
	}
	cfg.Tiles[key] = kind
	return nil
}
