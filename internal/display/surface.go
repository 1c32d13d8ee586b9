package display

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// xform is a rotation followed by a translation. Rotations used by the game
// are multiples of a quarter turn, so transformed rectangles stay
// axis-aligned.
type xform struct {
	tx, ty   float64
	cos, sin float64
}

var identity = xform{cos: 1}

// then composes child inside parent: parent(child(p)).
func (parent xform) then(child xform) xform {
	return xform{
		tx:  parent.tx + parent.cos*child.tx - parent.sin*child.ty,
		ty:  parent.ty + parent.sin*child.tx + parent.cos*child.ty,
		cos: parent.cos*child.cos - parent.sin*child.sin,
		sin: parent.sin*child.cos + parent.cos*child.sin,
	}
}

func (t xform) apply(x, y float64) (float64, float64) {
	return t.tx + t.cos*x - t.sin*y, t.ty + t.sin*x + t.cos*y
}

// rect maps a local rectangle through t and returns its bounding box.
func (t xform) rect(x, y, w, h float64) (rx, ry, rw, rh float64) {
	x0, y0 := t.apply(x, y)
	x1, y1 := t.apply(x+w, y+h)
	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)
	return minX, minY, maxX - minX, maxY - minY
}

// snap rounds away float noise from sin/cos of quarter turns.
func snap(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Surface draws game primitives onto an ebiten image, offset to the arena's
// position on screen.
type Surface struct {
	dst   *ebiten.Image
	stack []xform
}

// NewSurface returns a surface whose origin is (offX, offY) on dst.
func NewSurface(dst *ebiten.Image, offX, offY float64) *Surface {
	s := &Surface{}
	s.Reset(dst, offX, offY)
	return s
}

// Reset retargets the surface for a new frame.
func (s *Surface) Reset(dst *ebiten.Image, offX, offY float64) {
	s.dst = dst
	s.stack = append(s.stack[:0], xform{tx: offX, ty: offY, cos: 1})
}

func (s *Surface) top() xform {
	if len(s.stack) == 0 {
		return identity
	}
	return s.stack[len(s.stack)-1]
}

// Clear fills the arena area with c. The rest of the screen belongs to the
// host panels.
func (s *Surface) Clear(c color.RGBA) {
	t := s.top()
	vector.FillRect(s.dst, float32(t.tx), float32(t.ty),
		float32(arenaPixels), float32(arenaPixels), c, false)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	rx, ry, rw, rh := s.top().rect(x, y, w, h)
	vector.FillRect(s.dst, float32(snap(rx)), float32(snap(ry)), float32(snap(rw)), float32(snap(rh)), c, false)
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, c color.RGBA) {
	rx, ry, rw, rh := s.top().rect(x, y, w, h)
	vector.StrokeRect(s.dst, float32(snap(rx)), float32(snap(ry)), float32(snap(rw)), float32(snap(rh)), float32(width), c, false)
}

func (s *Surface) PushTransform(tx, ty, theta float64) {
	s.stack = append(s.stack, s.top().then(xform{tx: tx, ty: ty, cos: math.Cos(theta), sin: math.Sin(theta)}))
}

func (s *Surface) PopTransform() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}
