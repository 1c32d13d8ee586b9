package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

// cellWidth is the number of terminal columns per arena tile; terminal cells
// are roughly twice as tall as they are wide.
const cellWidth = 2

// Glyph is one terminal cell of the rendered arena.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

var (
	styleEmpty      = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleBrick      = tcell.StyleDefault.Foreground(tcell.ColorMaroon).Background(tcell.ColorBlack)
	styleSteel      = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	styleWater      = tcell.StyleDefault.Foreground(tcell.ColorBlue).Background(tcell.ColorNavy)
	styleBase       = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	styleBaseDown   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorBlack).Bold(true)
	styleOpponent   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack).Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

func terrainGlyph(t game.Terrain) Glyph {
	switch t {
	case game.TerrainBrick:
		return Glyph{'▒', styleBrick}
	case game.TerrainSteel:
		return Glyph{'█', styleSteel}
	case game.TerrainWater:
		return Glyph{'~', styleWater}
	default:
		return Glyph{' ', styleEmpty}
	}
}

func vehicleRune(d game.Direction) rune {
	switch d {
	case game.Down:
		return '▼'
	case game.Left:
		return '◀'
	case game.Right:
		return '▶'
	default:
		return '▲'
	}
}

// tileOf returns the tile holding pixel point (x, y), clamped to the arena.
func tileOf(a *game.Arena, x, y float64) (col, row int) {
	col = int(x) / game.TileSize
	row = int(y) / game.TileSize
	col = max(0, min(col, a.Cols-1))
	row = max(0, min(row, a.Rows-1))
	return col, row
}

// Frame renders the round's arena into a rows x (cols*cellWidth) glyph grid.
// Vehicles and projectiles are drawn in the tile under their centre.
func Frame(r *game.Round) [][]Glyph {
	a := r.Arena()
	if a == nil {
		return nil
	}
	out := make([][]Glyph, a.Rows)
	for row := range out {
		out[row] = make([]Glyph, a.Cols*cellWidth)
		for col := 0; col < a.Cols; col++ {
			g := terrainGlyph(a.TerrainAt(col, row))
			put(out, col, row, g, g)
		}
	}

	if b := a.Base; b != nil {
		col, row := tileOf(a, b.X, b.Y)
		if b.Destroyed {
			put(out, col, row, Glyph{'X', styleBaseDown}, Glyph{'X', styleBaseDown})
		} else {
			put(out, col, row, Glyph{'[', styleBase}, Glyph{']', styleBase})
		}
	}

	for _, p := range r.Projectiles() {
		if !p.Active {
			continue
		}
		col, row := tileOf(a, p.X+3, p.Y+3)
		g := Glyph{'•', styleProjectile}
		put(out, col, row, g, Glyph{' ', styleEmpty})
	}

	for _, o := range r.Opponents() {
		cx, cy := o.Center()
		col, row := tileOf(a, cx, cy)
		g := Glyph{vehicleRune(o.Facing), styleOpponent}
		put(out, col, row, g, g)
	}
	if p := r.Player(); p != nil {
		cx, cy := p.Center()
		col, row := tileOf(a, cx, cy)
		g := Glyph{vehicleRune(p.Facing), stylePlayer}
		put(out, col, row, g, g)
	}
	return out
}

func put(out [][]Glyph, col, row int, left, right Glyph) {
	out[row][col*cellWidth] = left
	out[row][col*cellWidth+1] = right
}

// hudLine is the status text above the arena.
func hudLine(s game.Stats, demo bool) string {
	line := fmt.Sprintf("SCORE %06d  WAVE %d  LIVES %d", s.Score, s.Wave, s.Lives)
	if demo {
		line += "  DEMO"
	}
	return line
}
