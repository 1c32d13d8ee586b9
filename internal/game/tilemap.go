package game

import (
	"errors"
	"fmt"
	"math"
)

const (
	TileSize  = 20 // pixels per grid cell
	ArenaCols = 15
	ArenaRows = 15

	brickHits = 2 // projectile hits a brick absorbs before it crumbles
)

// Terrain identifies what occupies a grid cell.
type Terrain uint8

const (
	TerrainEmpty Terrain = iota // open ground, holds no object
	TerrainBrick                // destructible wall
	TerrainSteel                // indestructible wall
	TerrainWater                // blocks vehicles, bullets fly over it
	TerrainBase                 // template marker for the base; never stored in a tile
	terrainCount                // sentinel
)

func (t Terrain) String() string {
	switch t {
	case TerrainEmpty:
		return "empty"
	case TerrainBrick:
		return "brick"
	case TerrainSteel:
		return "steel"
	case TerrainWater:
		return "water"
	case TerrainBase:
		return "base"
	default:
		return "unknown"
	}
}

// terrainBlocksMovement returns true if a vehicle cannot enter the cell.
func terrainBlocksMovement(t Terrain) bool {
	switch t {
	case TerrainBrick, TerrainSteel, TerrainWater:
		return true
	default:
		return false
	}
}

// terrainStopsProjectiles returns true if a projectile is consumed by the cell.
// Water is deliberately absent.
func terrainStopsProjectiles(t Terrain) bool {
	switch t {
	case TerrainBrick, TerrainSteel:
		return true
	default:
		return false
	}
}

// terrainDefaultHits returns the starting hit count for a cell.
// 0 means the cell cannot be worn down.
func terrainDefaultHits(t Terrain) int {
	if t == TerrainBrick {
		return brickHits
	}
	return 0
}

// Template is a rectangular grid of terrain codes, indexed [row][col].
type Template [][]uint8

// DefaultTemplate is the built-in 15x15 arena. The base sits in the bottom
// centre inside a ring of bricks.
var DefaultTemplate = Template{
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 2, 0, 0, 1, 0, 0, 2, 0, 1, 1, 0},
	{0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0},
	{0, 0, 0, 1, 1, 0, 3, 3, 3, 0, 1, 1, 0, 0, 0},
	{0, 2, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 2, 0},
	{0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0},
	{0, 1, 0, 0, 0, 1, 0, 2, 0, 1, 0, 0, 0, 1, 0},
	{0, 1, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 1, 0},
	{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
	{0, 2, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 2, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0},
	{0, 1, 0, 1, 0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 0},
	{0, 0, 0, 0, 0, 0, 1, 4, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0},
}

// ErrMalformedTemplate is returned by BuildArena for templates it cannot decode.
var ErrMalformedTemplate = errors.New("malformed arena template")

// Tile is one cell of the arena grid.
type Tile struct {
	Terrain Terrain
	Hits    int // remaining hits for destructible terrain, 0 if immune
}

// Cell is a snapshot of one non-empty tile together with its grid position.
type Cell struct {
	Col, Row int
	Terrain  Terrain
	Hits     int
}

// Bounds returns the pixel box covered by the cell.
func (c Cell) Bounds() Box {
	return Box{X: float64(c.Col * TileSize), Y: float64(c.Row * TileSize), W: TileSize, H: TileSize}
}

// Immune reports whether projectiles can never wear the cell down.
func (c Cell) Immune() bool { return c.Hits == 0 }

// Base is the structure the player defends.
type Base struct {
	X, Y      float64
	Destroyed bool
}

// Bounds returns the pixel box covered by the base.
func (b *Base) Bounds() Box {
	return Box{X: b.X, Y: b.Y, W: TileSize, H: TileSize}
}

// Arena is the authoritative terrain grid plus the optional base.
type Arena struct {
	Cols  int
	Rows  int
	Tiles []Tile // row-major: index = row*Cols + col
	Base  *Base  // nil when the template has no base marker
}

// BuildArena decodes a template into terrain tiles and at most one base.
// The template must be rectangular, use only codes 0-4 and contain at most
// one base marker.
func BuildArena(t Template) (*Arena, error) {
	if len(t) == 0 || len(t[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedTemplate)
	}
	rows, cols := len(t), len(t[0])
	a := &Arena{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
	for row, line := range t {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedTemplate, row, len(line), cols)
		}
		for col, code := range line {
			kind := Terrain(code)
			if kind >= terrainCount {
				return nil, fmt.Errorf("%w: code %d at (%d,%d)", ErrMalformedTemplate, code, col, row)
			}
			if kind == TerrainBase {
				if a.Base != nil {
					return nil, fmt.Errorf("%w: second base at (%d,%d)", ErrMalformedTemplate, col, row)
				}
				a.Base = &Base{X: float64(col * TileSize), Y: float64(row * TileSize)}
				continue
			}
			a.Tiles[row*cols+col] = Tile{Terrain: kind, Hits: terrainDefaultHits(kind)}
		}
	}
	return a, nil
}

// MustBuildArena is BuildArena for templates compiled into the binary.
func MustBuildArena(t Template) *Arena {
	a, err := BuildArena(t)
	if err != nil {
		panic(err)
	}
	return a
}

// Width returns the arena width in pixels.
func (a *Arena) Width() float64 { return float64(a.Cols * TileSize) }

// Height returns the arena height in pixels.
func (a *Arena) Height() float64 { return float64(a.Rows * TileSize) }

// inBounds returns true if (col, row) is within the grid.
func (a *Arena) inBounds(col, row int) bool {
	return col >= 0 && col < a.Cols && row >= 0 && row < a.Rows
}

// At returns a pointer to the tile at (col, row), or nil if out of bounds.
func (a *Arena) At(col, row int) *Tile {
	if !a.inBounds(col, row) {
		return nil
	}
	return &a.Tiles[row*a.Cols+col]
}

// TerrainAt returns the terrain at (col, row); out of bounds reads as empty.
func (a *Arena) TerrainAt(col, row int) Terrain {
	if !a.inBounds(col, row) {
		return TerrainEmpty
	}
	return a.Tiles[row*a.Cols+col].Terrain
}

// Cells returns every non-empty tile in row-major order.
func (a *Arena) Cells() []Cell {
	out := make([]Cell, 0, len(a.Tiles)/2)
	for i, t := range a.Tiles {
		if t.Terrain == TerrainEmpty {
			continue
		}
		out = append(out, Cell{Col: i % a.Cols, Row: i / a.Cols, Terrain: t.Terrain, Hits: t.Hits})
	}
	return out
}

// CountTerrain returns how many tiles currently hold terrain t.
func (a *Arena) CountTerrain(t Terrain) int {
	n := 0
	for _, tile := range a.Tiles {
		if tile.Terrain == t {
			n++
		}
	}
	return n
}

// span returns the inclusive tile range that could overlap b, clipped to the grid.
func (a *Arena) span(b Box) (c0, r0, c1, r1 int) {
	c0 = int(math.Floor(b.X / TileSize))
	r0 = int(math.Floor(b.Y / TileSize))
	c1 = int(math.Floor((b.X + b.W) / TileSize))
	r1 = int(math.Floor((b.Y + b.H) / TileSize))
	if c0 < 0 {
		c0 = 0
	}
	if r0 < 0 {
		r0 = 0
	}
	if c1 >= a.Cols {
		c1 = a.Cols - 1
	}
	if r1 >= a.Rows {
		r1 = a.Rows - 1
	}
	return c0, r0, c1, r1
}

// BlocksVehicle returns true if obj overlaps any brick, steel or water cell.
func (a *Arena) BlocksVehicle(obj Boxed) bool {
	b := obj.Bounds()
	c0, r0, c1, r1 := a.span(b)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			t := a.Tiles[row*a.Cols+col].Terrain
			if !terrainBlocksMovement(t) {
				continue
			}
			if Intersects(b, Cell{Col: col, Row: row}) {
				return true
			}
		}
	}
	return false
}

// projectileTarget returns the first cell that stops obj, scanning the
// overlapped tiles in reverse row-major order.
func (a *Arena) projectileTarget(obj Boxed) (col, row int, ok bool) {
	b := obj.Bounds()
	c0, r0, c1, r1 := a.span(b)
	for row = r1; row >= r0; row-- {
		for col = c1; col >= c0; col-- {
			t := a.Tiles[row*a.Cols+col].Terrain
			if !terrainStopsProjectiles(t) {
				continue
			}
			if Intersects(b, Cell{Col: col, Row: row}) {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

// HitTile applies one projectile hit to (col, row). Destructible cells lose a
// hit and are cleared at zero; immune cells are untouched. It returns true if
// the cell was removed.
func (a *Arena) HitTile(col, row int) bool {
	t := a.At(col, row)
	if t == nil || t.Hits <= 0 {
		return false // out of bounds, empty or immune
	}
	t.Hits--
	if t.Hits > 0 {
		return false
	}
	*t = Tile{}
	return true
}
