package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/gridpaint/internal/colors"
	"github.com/example/gridpaint/internal/config"
)

type colorsCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	cfg := config.New()
	if c.root != nil && c.config != nil {
		cfg = c.config
	}
	palette := cfg.PaletteEntries()
	if len(palette) == 0 {
		fmt.Fprintln(c.out, "no colors available")
		return nil
	}
	fmt.Fprintln(c.out, "available palette colors (* marks the initial color):")
	for idx, entry := range palette {
		marker := " "
		if strings.EqualFold(entry.Name, cfg.Color) {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.out, "%s %2d: %-12s %s %s\n", marker, idx+1, entry.Name, colors.Hex(entry.Color), block)
	}
	fmt.Fprintln(c.out, "any #RRGGBB[AA] value, X11 color name or CSS color is accepted as well")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
