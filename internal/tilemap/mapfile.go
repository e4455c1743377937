package tilemap

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map is the exported form of a collapsed grid.
type Map struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	CellSize int      `yaml:"cell_size"`
	Seed     int64    `yaml:"seed,omitempty"`
	Rows     []string `yaml:"rows"`
	Legend   []string `yaml:"legend"`
}

// legend characters indexed by kind; '.' is Unpainted.
var legend = map[Kind]byte{
	Unpainted:    '.',
	Land:         'L',
	CoastalWater: 'c',
	Water:        'w',
	Grass:        'g',
	Forest:       'F',
}

// NewMap converts grid into a Map.
func NewMap(grid [][]Kind, cellSize int) *Map {
	m := &Map{Height: len(grid), CellSize: cellSize}
	if len(grid) > 0 {
		m.Width = len(grid[0])
	}
	for _, row := range grid {
		var sb strings.Builder
		for _, k := range row {
			sb.WriteByte(legend[k])
		}
		m.Rows = append(m.Rows, sb.String())
	}
	for _, k := range append([]Kind{Unpainted}, Kinds()...) {
		m.Legend = append(m.Legend, fmt.Sprintf("%c=%s", legend[k], k))
	}
	return m
}

// Grid decodes the rows back into kinds.
func (m *Map) Grid() ([][]Kind, error) {
	if len(m.Rows) != m.Height {
		return nil, ErrHeightMismatch
	}
	reverse := make(map[byte]Kind, len(legend))
	for k, c := range legend {
		reverse[c] = k
	}
	grid := newGrid(m.Width, m.Height)
	for y, row := range m.Rows {
		if len(row) != m.Width {
			return nil, ErrWidthMismatch
		}
		for x := 0; x < len(row); x++ {
			k, ok := reverse[row[x]]
			if !ok {
				return nil, fmt.Errorf("row %d: unknown tile %q", y, row[x])
			}
			grid[y][x] = k
		}
	}
	return grid, nil
}

// Encode writes m as YAML.
func (m *Map) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	return enc.Close()
}

// DecodeMap reads a YAML map.
func DecodeMap(r io.Reader) (*Map, error) {
	var m Map
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	return &m, nil
}
