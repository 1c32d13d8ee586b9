package game

import (
	"math"
	"math/rand"
)

const (
	pilotMinHold = 20 // ticks to keep a heading before re-deciding
	pilotMaxHold = 60
	pilotChase   = 0.6 // chance a new heading closes on the nearest opponent
)

// Autopilot drives the player for demos and headless batch runs. It wanders
// with a bias toward the nearest opponent and shoots whatever lines up with
// its barrel. It never plans a route.
type Autopilot struct {
	rng  *rand.Rand
	dir  Direction
	hold int
}

// NewAutopilot returns a pilot with its own seeded random source.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		dir: Up,
	}
}

// Drive issues this tick's move and fire commands through the round's input
// entry points. Call it once before each Tick.
func (a *Autopilot) Drive(r *Round) {
	p := r.Player()
	if p == nil || !r.Running() {
		return
	}

	if d, ok := alignedTarget(r, p); ok {
		a.dir = d
		a.hold = pilotMinHold
	} else if a.hold <= 0 {
		a.dir = a.pickHeading(r, p)
		a.hold = pilotMinHold + a.rng.Intn(pilotMaxHold-pilotMinHold)
	}
	a.hold--

	x, y := p.X, p.Y
	r.MovePlayer(a.dir)
	if p.X == x && p.Y == y {
		a.hold = 0 // stuck; pick again next tick
	}

	if d, ok := alignedTarget(r, p); ok && d == p.Facing && p.CanFire(r.Now()) && !baseInLine(r, p) {
		r.PlayerFire()
	}
}

// pickHeading chooses a new direction, usually toward the nearest opponent
// along the axis with the larger gap.
func (a *Autopilot) pickHeading(r *Round, p *Vehicle) Direction {
	target := nearestOpponent(r, p)
	if target == nil || a.rng.Float64() >= pilotChase {
		return Directions[a.rng.Intn(len(Directions))]
	}
	px, py := p.Center()
	tx, ty := target.Center()
	dx, dy := tx-px, ty-py
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Down
	}
	return Up
}

func nearestOpponent(r *Round, p *Vehicle) *Vehicle {
	var best *Vehicle
	bestD := -1.0
	px, py := p.Center()
	for _, o := range r.Opponents() {
		ox, oy := o.Center()
		d := manhattan(px, py, ox, oy)
		if bestD < 0 || d < bestD {
			best, bestD = o, d
		}
	}
	return best
}

// alignedTarget returns the direction of an opponent that a projectile fired
// from p would cross, if any. It ignores terrain in between.
func alignedTarget(r *Round, p *Vehicle) (Direction, bool) {
	px, py := p.Center()
	for _, o := range r.Opponents() {
		ox, oy := o.Center()
		reachX := (o.W + projectileSize) / 2
		reachY := (o.H + projectileSize) / 2
		if math.Abs(ox-px) < reachX {
			if oy < py {
				return Up, true
			}
			return Down, true
		}
		if math.Abs(oy-py) < reachY {
			if ox < px {
				return Left, true
			}
			return Right, true
		}
	}
	return p.Facing, false
}

// baseInLine reports whether a shot along p's facing would cross the base.
func baseInLine(r *Round, p *Vehicle) bool {
	a := r.Arena()
	if a == nil || a.Base == nil || a.Base.Destroyed {
		return false
	}
	b := a.Base
	px, py := p.Center()
	bx, by := b.X+TileSize/2, b.Y+TileSize/2
	reach := (TileSize + projectileSize) / 2.0
	switch p.Facing {
	case Down:
		return math.Abs(bx-px) < reach && by > py
	case Up:
		return math.Abs(bx-px) < reach && by < py
	case Left:
		return math.Abs(by-py) < reach && bx < px
	default:
		return math.Abs(by-py) < reach && bx > px
	}
}
