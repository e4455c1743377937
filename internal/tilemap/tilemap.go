// Package tilemap grows a terrain map from a painted grid.
//
// Every cell starts as either the kind that was painted there or a random
// kind, then a fixed number of rounds apply neighbour rules that thin out
// isolated land, turn crowded land into grass, seed forests and shape the
// coastline.
package tilemap

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Kind is a terrain type.
type Kind int

const (
	// Unpainted marks a cell the user did not paint.
	Unpainted Kind = -1

	Land Kind = iota - 1
	CoastalWater
	Water
	Grass
	Forest
)

// kindCount is the number of real terrain kinds.
const kindCount = 5

var kindNames = map[Kind]string{
	Unpainted:    "unpainted",
	Land:         "land",
	CoastalWater: "coastal_water",
	Water:        "water",
	Grass:        "grass",
	Forest:       "forest",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists the terrain kinds in declaration order.
func Kinds() []Kind { return []Kind{Land, CoastalWater, Water, Grass, Forest} }

// ParseKind returns the kind called name.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	n = strings.ReplaceAll(n, " ", "_")
	for k, v := range kindNames {
		if v == n {
			return k, nil
		}
	}
	return Unpainted, fmt.Errorf("unknown tile kind %q", name)
}

var (
	ErrHeightMismatch = errors.New("painted tiles height does not match the provided height")
	ErrWidthMismatch  = errors.New("painted tiles width does not match the provided width")
)

// Options tunes Collapse.
type Options struct {
	// Iterations is the number of rule rounds applied.
	Iterations int
	// Rand supplies randomness. Nil uses a time seeded source.
	Rand *rand.Rand
	// KeepPainted pins painted cells so the rules only reshape the rest.
	KeepPainted bool
}

// Collapse builds a width×height map from painted. painted must have
// exactly height rows of width cells; Unpainted cells are filled randomly.
func Collapse(width, height int, painted [][]Kind, opts Options) ([][]Kind, error) {
	if len(painted) != height {
		return nil, ErrHeightMismatch
	}
	for _, row := range painted {
		if len(row) != width {
			return nil, ErrWidthMismatch
		}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := newGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if painted[y][x] != Unpainted {
				grid[y][x] = painted[y][x]
			} else {
				grid[y][x] = Kind(rng.Intn(kindCount))
			}
		}
	}

	for i := 0; i < opts.Iterations; i++ {
		next := newGrid(width, height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if opts.KeepPainted && painted[y][x] != Unpainted {
					next[y][x] = grid[y][x]
					continue
				}
				land, forest := countNeighbours(grid, x, y)
				next[y][x] = step(grid[y][x], land, forest, rng)
			}
		}
		grid = next
	}
	return grid, nil
}

// step applies the first matching rule to a single cell.
func step(cur Kind, land, forest int, rng *rand.Rand) Kind {
	chance := func(p float64, to Kind) Kind {
		if rng.Float64() < p {
			return to
		}
		return cur
	}
	switch {
	case cur == Land && land <= 1:
		return chance(0.1, CoastalWater)
	case cur == Land && land > 3:
		return chance(0.75, Grass)
	case cur == Grass && land < 4:
		return chance(0.75, Land)
	case cur == Grass && land > 1 && forest > 0 && forest <= 3:
		return chance(0.3, Forest)
	case cur == Forest && (forest <= 2 || forest > 3):
		return chance(0.4, Grass)
	case cur == CoastalWater && land >= 3:
		return chance(0.25, Land)
	case cur == CoastalWater && land < 1:
		return chance(0.2, Water)
	case cur == Water && land > 0:
		return chance(0.3, CoastalWater)
	}
	return cur
}

// countNeighbours counts the 4-neighbours of (x, y) that are land-like
// (land, grass or forest) and that are forest.
func countNeighbours(grid [][]Kind, x, y int) (land, forest int) {
	for _, n := range neighbours(x, y, len(grid[0]), len(grid)) {
		switch grid[n.y][n.x] {
		case Land, Grass:
			land++
		case Forest:
			land++
			forest++
		}
	}
	return land, forest
}

type coordinate struct {
	x, y int
}

func neighbours(x, y, width, height int) []coordinate {
	candidates := [4]coordinate{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
	out := make([]coordinate, 0, 4)
	for _, c := range candidates {
		if c.x >= 0 && c.x < width && c.y >= 0 && c.y < height {
			out = append(out, c)
		}
	}
	return out
}

func newGrid(width, height int) [][]Kind {
	g := make([][]Kind, height)
	for i := range g {
		g[i] = make([]Kind, width)
	}
	return g
}

// Blank returns a width×height grid of Unpainted cells.
func Blank(width, height int) [][]Kind {
	g := newGrid(width, height)
	for _, row := range g {
		for i := range row {
			row[i] = Unpainted
		}
	}
	return g
}
