package game

import "fmt"

// --- Combat constants ---

const (
	projectileSize  = 6.0 // px, square
	projectileSpeed = 5.0 // px per tick

	impactLifetime = 8 // ticks a hit flash stays on screen
)

// Projectile is a bullet in flight. It travels in a straight line until it
// leaves the arena or hits something.
type Projectile struct {
	X, Y   float64
	Dir    Direction
	Side   Side
	Owner  string // label of the vehicle that fired it
	Speed  float64
	Active bool
}

// Bounds returns the projectile's collision box.
func (p *Projectile) Bounds() Box {
	return Box{X: p.X, Y: p.Y, W: projectileSize, H: projectileSize}
}

// Advance moves the projectile one step and deactivates it once its top-left
// corner is outside [0, w] x [0, h].
func (p *Projectile) Advance(w, h float64) {
	if !p.Active {
		return
	}
	dx, dy := p.Dir.Delta()
	p.X += dx * p.Speed
	p.Y += dy * p.Speed
	if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
		p.Active = false
	}
}

// Impact is a short-lived flash where a projectile struck something.
type Impact struct {
	X, Y float64 // centre
	Kind EventKind
	age  int
}

// Progress returns 0 for a fresh impact rising to 1 as it expires.
func (i *Impact) Progress() float64 {
	return float64(i.age) / float64(impactLifetime)
}

// Fire spawns a projectile from the centre of v in its facing direction if
// v's cooldown has elapsed. It returns false when v is still reloading.
func (r *Round) Fire(v *Vehicle) bool {
	if v == nil {
		return false
	}
	now := r.Now()
	if !v.CanFire(now) {
		return false
	}
	v.readyAt = now + v.Cooldown

	cx, cy := v.Center()
	p := &Projectile{
		X:      cx - projectileSize/2,
		Y:      cy - projectileSize/2,
		Dir:    v.Facing,
		Side:   v.Side,
		Owner:  v.Label,
		Speed:  projectileSpeed,
		Active: true,
	}
	r.projectiles = append(r.projectiles, p)
	if v.Side == SidePlayer {
		r.counters.PlayerShots++
	} else {
		r.counters.OpponentShots++
	}
	r.emit(Event{Kind: EventShotFired, Actor: v.Label, X: p.X, Y: p.Y,
		Value: fmt.Sprintf("(%.0f,%.0f) %s", p.X, p.Y, p.Dir)})
	return true
}

// updateProjectiles advances every projectile, then resolves collisions for
// those still active. Resolution stops as soon as the round ends.
func (r *Round) updateProjectiles() {
	w, h := r.arena.Width(), r.arena.Height()
	for _, p := range r.projectiles {
		p.Advance(w, h)
	}
	for _, p := range r.projectiles {
		if !p.Active {
			continue
		}
		if r.resolve(p) {
			return
		}
	}
}

// resolve applies the first thing p hits, in priority order: terrain, then the
// base, then vehicles of the other side. It returns true if the hit ended the
// round.
func (r *Round) resolve(p *Projectile) bool {
	if col, row, ok := r.arena.projectileTarget(p); ok {
		p.Active = false
		kind := r.arena.TerrainAt(col, row)
		ev := Event{Actor: p.Owner, Col: col, Row: row,
			X: float64(col*TileSize + TileSize/2), Y: float64(row*TileSize + TileSize/2)}
		switch {
		case r.arena.HitTile(col, row):
			r.counters.BricksDestroyed++
			ev.Kind = EventBrickDestroyed
		case kind == TerrainBrick:
			ev.Kind = EventBrickDamaged
		default:
			ev.Kind = EventShotBlocked
		}
		ev.Value = fmt.Sprintf("%s at (%d,%d)", kind, col, row)
		r.addImpact(p, ev.Kind)
		r.emit(ev)
		return false
	}

	if b := r.arena.Base; b != nil && !b.Destroyed && Intersects(p, b) {
		p.Active = false
		b.Destroyed = true
		r.addImpact(p, EventBaseDestroyed)
		r.emit(Event{Kind: EventBaseDestroyed, Actor: p.Owner, X: b.X, Y: b.Y, Value: "base hit"})
		r.end(EndBaseDestroyed)
		return true
	}

	if p.Side == SidePlayer {
		for i := len(r.opponents) - 1; i >= 0; i-- {
			o := r.opponents[i]
			if !Intersects(p, o) {
				continue
			}
			p.Active = false
			r.opponents = append(r.opponents[:i], r.opponents[i+1:]...)
			r.score += pointsPerOpponent
			r.counters.OpponentsDestroyed++
			r.addImpact(p, EventOpponentDestroyed)
			r.emit(Event{Kind: EventOpponentDestroyed, Actor: p.Owner, X: o.X, Y: o.Y,
				Value: fmt.Sprintf("%s destroyed, score %d", o.Label, r.score)})
			r.pushStats()
			return false
		}
		return false
	}

	if r.player != nil && Intersects(p, r.player) {
		p.Active = false
		r.lives--
		r.counters.PlayerHits++
		r.addImpact(p, EventPlayerHit)
		r.emit(Event{Kind: EventPlayerHit, Actor: p.Owner, X: r.player.X, Y: r.player.Y,
			Value: fmt.Sprintf("lives %d", r.lives)})
		r.pushStats()
		if r.lives <= 0 {
			r.end(EndOutOfLives)
			return true
		}
		r.player.X, r.player.Y = r.spawnX, r.spawnY
		r.emit(Event{Kind: EventPlayerRespawned, Actor: r.player.Label, X: r.player.X, Y: r.player.Y,
			Value: fmt.Sprintf("(%.0f,%.0f)", r.player.X, r.player.Y)})
	}
	return false
}

// purgeProjectiles drops inactive projectiles, reusing the backing array.
func (r *Round) purgeProjectiles() {
	kept := r.projectiles[:0]
	for _, p := range r.projectiles {
		if p.Active {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(r.projectiles); i++ {
		r.projectiles[i] = nil
	}
	r.projectiles = kept
}

func (r *Round) addImpact(p *Projectile, kind EventKind) {
	r.impacts = append(r.impacts, &Impact{
		X:    p.X + projectileSize/2,
		Y:    p.Y + projectileSize/2,
		Kind: kind,
	})
}

// ageImpacts ages and prunes hit flashes.
func (r *Round) ageImpacts() {
	kept := r.impacts[:0]
	for _, i := range r.impacts {
		i.age++
		if i.age < impactLifetime {
			kept = append(kept, i)
		}
	}
	r.impacts = kept
}
