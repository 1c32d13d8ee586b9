package game

// Per-tick odds for opponent behaviour.
const (
	PTurn = 0.02
	PFire = 0.02
)

// steerOpponents runs one step of the opponent controller for each opponent:
// maybe turn to a random direction, always try to move forward, maybe fire.
// Opponents do not aim.
func (r *Round) steerOpponents() {
	for _, o := range r.opponents {
		if r.rng.Float64() < r.pTurn {
			o.Facing = Directions[r.rng.Intn(len(Directions))]
		}
		r.AttemptMove(o, o.Facing)
		if r.rng.Float64() < r.pFire {
			r.Fire(o)
		}
	}
}
