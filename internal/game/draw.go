package game

import "image/color"

// Surface is the drawing target a host hands to Round.Draw. Coordinates are
// arena pixels; PushTransform translates by (tx, ty) then rotates by theta
// radians, and PopTransform undoes the most recent push.
type Surface interface {
	Clear(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h, width float64, c color.RGBA)
	PushTransform(tx, ty, theta float64)
	PopTransform()
}

// Palette.
var (
	ColorBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}

	ColorBrick  = color.RGBA{R: 0xaa, G: 0x55, B: 0x22, A: 0xff}
	ColorMortar = color.RGBA{R: 0x66, G: 0x33, B: 0x11, A: 0xff}
	ColorSteel  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	ColorRivet  = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	ColorWater  = color.RGBA{R: 0x00, G: 0x66, B: 0xff, A: 0xff}
	ColorRipple = color.RGBA{R: 0x00, G: 0x88, B: 0xff, A: 0xff}

	ColorBase          = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	ColorBaseInner     = color.RGBA{R: 0x00, G: 0xaa, B: 0xff, A: 0xff}
	ColorBaseCore      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorBaseDestroyed = color.RGBA{R: 0x44, G: 0x00, B: 0x00, A: 0xff}

	ColorPlayerBody     = color.RGBA{R: 0x00, G: 0xaa, B: 0x00, A: 0xff}
	ColorPlayerBarrel   = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	ColorOpponentBody   = color.RGBA{R: 0xaa, G: 0x00, B: 0x00, A: 0xff}
	ColorOpponentBarrel = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	ColorTread          = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

	colorImpact    = color.RGBA{R: 0xff, G: 0xf0, B: 0xa0, A: 0xff}
	colorImpactHot = color.RGBA{R: 0xff, G: 0x60, B: 0x20, A: 0xff}

	ColorProjectile = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
)

const (
	treadWidth     = 3.0
	barrelWidth    = 4.0
	barrelLength   = 10.0
	barrelOverhang = 6.0 // px the barrel sticks out past the hull
)

// Draw renders the round in back-to-front order: background, terrain, base,
// player, opponents, projectiles, impact flashes. It draws nothing but the
// background before the first Start.
func (r *Round) Draw(s Surface) {
	s.Clear(ColorBackground)
	if r.arena == nil {
		return
	}
	for _, c := range r.arena.Cells() {
		drawCell(s, c)
	}
	if b := r.arena.Base; b != nil {
		drawBase(s, b)
	}
	if r.player != nil {
		drawVehicle(s, r.player)
	}
	for _, o := range r.opponents {
		drawVehicle(s, o)
	}
	for _, p := range r.projectiles {
		if p.Active {
			s.FillRect(p.X, p.Y, projectileSize, projectileSize, ColorProjectile)
		}
	}
	for _, i := range r.impacts {
		drawImpact(s, i)
	}
}

func drawCell(s Surface, c Cell) {
	x, y := float64(c.Col*TileSize), float64(c.Row*TileSize)
	switch c.Terrain {
	case TerrainBrick:
		s.FillRect(x, y, TileSize, TileSize, ColorBrick)
		half := float64(TileSize / 2)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				s.StrokeRect(x+float64(j)*half, y+float64(i)*half, half, half, 1, ColorMortar)
			}
		}
	case TerrainSteel:
		s.FillRect(x, y, TileSize, TileSize, ColorSteel)
		for _, off := range [4][2]float64{{2, 2}, {12, 2}, {2, 12}, {12, 12}} {
			s.FillRect(x+off[0], y+off[1], 6, 6, ColorRivet)
		}
	case TerrainWater:
		s.FillRect(x, y, TileSize, TileSize, ColorWater)
		for i := 0; i < 3; i++ {
			s.FillRect(x+2+float64(i)*6, y+5, 4, 2, ColorRipple)
			s.FillRect(x+4+float64(i)*6, y+12, 4, 2, ColorRipple)
		}
	}
}

func drawBase(s Surface, b *Base) {
	if b.Destroyed {
		s.FillRect(b.X, b.Y, TileSize, TileSize, ColorBaseDestroyed)
		return
	}
	s.FillRect(b.X, b.Y, TileSize, TileSize, ColorBase)
	s.FillRect(b.X+4, b.Y+4, 12, 12, ColorBaseInner)
	s.FillRect(b.X+7, b.Y+7, 6, 6, ColorBaseCore)
}

// drawVehicle draws hull, barrel and treads in the vehicle's local frame,
// rotated so the barrel points along Facing.
func drawVehicle(s Surface, v *Vehicle) {
	body, barrel := ColorPlayerBody, ColorPlayerBarrel
	if v.Side == SideOpponent {
		body, barrel = ColorOpponentBody, ColorOpponentBarrel
	}
	cx, cy := v.Center()
	hw, hh := v.W/2, v.H/2

	s.PushTransform(cx, cy, v.Facing.Angle())
	s.FillRect(-hw, -hh, v.W, v.H, body)
	s.FillRect(-barrelWidth/2, -hh-barrelOverhang, barrelWidth, barrelLength, barrel)
	s.FillRect(-hw, -hh, treadWidth, v.H, ColorTread)
	s.FillRect(hw-treadWidth, -hh, treadWidth, v.H, ColorTread)
	s.PopTransform()
}

// drawImpact draws a shrinking flash outline.
func drawImpact(s Surface, i *Impact) {
	size := 10 * (1 - i.Progress()*0.6)
	c := colorImpact
	if i.Kind == EventPlayerHit || i.Kind == EventBaseDestroyed {
		c = colorImpactHot
	}
	s.StrokeRect(i.X-size/2, i.Y-size/2, size, size, 1.5, c)
}
