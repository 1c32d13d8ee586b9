package game

import "math"

// Box is an axis-aligned rectangle in arena pixels. X, Y is the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// Boxed is anything that occupies an axis-aligned box in the arena.
// Vehicles, projectiles, terrain cells and the base all implement it.
type Boxed interface {
	Bounds() Box
}

// Bounds lets a bare Box be used wherever a Boxed is expected.
func (b Box) Bounds() Box { return b }

// Intersects reports whether two boxes overlap strictly on both axes.
// Boxes that only share an edge do not intersect.
func Intersects(a, b Boxed) bool {
	ba, bb := a.Bounds(), b.Bounds()
	return ba.X < bb.X+bb.W &&
		ba.X+ba.W > bb.X &&
		ba.Y < bb.Y+bb.H &&
		ba.Y+ba.H > bb.Y
}

// Direction is one of the four cardinal facings.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	directionCount // sentinel
)

// Directions lists every facing in a stable order.
var Directions = [directionCount]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit step for the direction (screen coordinates, +Y down).
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Angle is the drawing rotation for the facing, in radians. Up is 0.
func (d Direction) Angle() float64 {
	switch d {
	case Right:
		return math.Pi / 2
	case Down:
		return math.Pi
	case Left:
		return -math.Pi / 2
	default:
		return 0
	}
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
