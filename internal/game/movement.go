package game

// AttemptMove turns v to face d and tries one step of v.Speed pixels that way.
// The candidate position is clamped to the arena. The step is undone if it
// would overlap blocking terrain, the base or another vehicle; the facing
// change always sticks. It returns false when the step was rejected.
func (r *Round) AttemptMove(v *Vehicle, d Direction) bool {
	if v == nil {
		return false
	}
	v.Facing = d
	if r.arena == nil {
		return false
	}

	oldX, oldY := v.X, v.Y
	dx, dy := d.Delta()
	v.X = clamp(v.X+dx*v.Speed, 0, r.arena.Width()-v.W)
	v.Y = clamp(v.Y+dy*v.Speed, 0, r.arena.Height()-v.H)

	if r.blocked(v) {
		v.X, v.Y = oldX, oldY
		return false
	}
	return true
}

// blocked returns true if v, at its current position, overlaps anything it
// may not share space with.
func (r *Round) blocked(v *Vehicle) bool {
	if r.arena.BlocksVehicle(v) {
		return true
	}
	if b := r.arena.Base; b != nil && Intersects(v, b) {
		return true
	}
	return r.touchesVehicle(v)
}

// touchesVehicle checks v against every other vehicle. The player is only
// checked against opponents; opponents are checked against the player and
// each other.
func (r *Round) touchesVehicle(v *Vehicle) bool {
	if v.Side == SideOpponent && r.player != nil && Intersects(v, r.player) {
		return true
	}
	for _, o := range r.opponents {
		if o != v && Intersects(v, o) {
			return true
		}
	}
	return false
}
