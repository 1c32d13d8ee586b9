package game

import (
	"fmt"
	"time"
)

// TestRound is a headless round harness used by tests and the headless
// report. It wraps a started Round with an EventLog and an optional
// Autopilot, and supports arranging a scene before the first tick.
type TestRound struct {
	*Round
	Log   *EventLog
	Pilot *Autopilot

	roundOpts []Option
	verbose   bool
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptInfra harnessOptionKind = iota // round options, verbose, pilot; applied before Start
	harnessOptScene                          // place vehicles and projectiles; applied after Start
)

// HarnessOption is a builder function applied to a TestRound during construction.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*TestRound)
}

// Seeded fixes the round's random source.
func Seeded(seed int64) HarnessOption {
	return RoundOptions(WithSeed(seed))
}

// RoundOptions passes options through to NewRound.
func RoundOptions(opts ...Option) HarnessOption {
	return HarnessOption{harnessOptInfra, func(tr *TestRound) {
		tr.roundOpts = append(tr.roundOpts, opts...)
	}}
}

// Verbose enables per-tick position logging.
func Verbose(v bool) HarnessOption {
	return HarnessOption{harnessOptInfra, func(tr *TestRound) {
		tr.verbose = v
	}}
}

// Piloted drives the player with an Autopilot seeded from seed.
func Piloted(seed int64) HarnessOption {
	return HarnessOption{harnessOptInfra, func(tr *TestRound) {
		tr.Pilot = NewAutopilot(seed)
	}}
}

// Quiet stops opponents from turning or firing on their own.
func Quiet() HarnessOption {
	return RoundOptions(WithOpponentOdds(0, 0))
}

// ClearOpponents removes the spawned first wave.
func ClearOpponents() HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		tr.opponents = nil
	}}
}

// PlaceOpponent adds an opponent at (x, y) facing d, without collision checks.
func PlaceOpponent(x, y float64, d Direction) HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		tr.nextID++
		o := NewOpponent(tr.nextID, x, y)
		o.Facing = d
		tr.opponents = append(tr.opponents, o)
	}}
}

// PlacePlayer moves the player to (x, y) facing d, without collision checks.
func PlacePlayer(x, y float64, d Direction) HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		tr.player.X, tr.player.Y = x, y
		tr.player.Facing = d
	}}
}

// FreezeOpponents sets every current opponent's speed to zero.
func FreezeOpponents() HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		for _, o := range tr.opponents {
			o.Speed = 0
		}
	}}
}

// PlaceProjectile launches a projectile at (x, y) heading d for side.
func PlaceProjectile(x, y float64, d Direction, side Side) HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		owner := "P"
		if side == SideOpponent {
			owner = "O?"
		}
		tr.projectiles = append(tr.projectiles, &Projectile{
			X: x, Y: y, Dir: d, Side: side, Owner: owner,
			Speed: projectileSpeed, Active: true,
		})
	}}
}

// SetLives overrides the starting lives.
func SetLives(n int) HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		tr.lives = n
	}}
}

// SetScore overrides the starting score.
func SetScore(n int) HarnessOption {
	return HarnessOption{harnessOptScene, func(tr *TestRound) {
		tr.score = n
	}}
}

// NewTestRound constructs and starts a round from the given options in two
// ordered passes:
//  1. Infrastructure (round options, verbose, pilot), then NewRound + Start
//  2. Scene arrangement
//
// It panics if the round options are invalid; tests pass known-good templates.
func NewTestRound(opts ...HarnessOption) *TestRound {
	tr := &TestRound{}
	tr.roundOpts = []Option{WithSeed(1)}
	for _, o := range opts {
		if o.kind == harnessOptInfra {
			o.fn(tr)
		}
	}
	tr.Log = NewEventLog(tr.verbose)
	tr.roundOpts = append(tr.roundOpts, WithListener(tr.Log))
	r, err := NewRound(tr.roundOpts...)
	if err != nil {
		panic(fmt.Sprintf("test round: %v", err))
	}
	tr.Round = r
	tr.Start()
	for _, o := range opts {
		if o.kind == harnessOptScene {
			o.fn(tr)
		}
	}
	return tr
}

// RunTicks advances the round n ticks, or until it ends.
func (tr *TestRound) RunTicks(n int) {
	for i := 0; i < n && tr.Running(); i++ {
		tr.step()
	}
}

// RunUntil advances the round up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tr *TestRound) RunUntil(predicate func(*TestRound) bool, maxTicks int) int {
	for i := 0; i < maxTicks && tr.Running(); i++ {
		tr.step()
		if predicate(tr) {
			return tr.CurrentTick()
		}
	}
	return -1
}

// step drives the player if piloted, ticks once and records verbose positions.
func (tr *TestRound) step() {
	if tr.Pilot != nil {
		tr.Pilot.Drive(tr.Round)
	}
	tr.Tick()
	if !tr.Log.Verbose() {
		return
	}
	tick := tr.CurrentTick()
	if p := tr.player; p != nil {
		tr.Log.AddVerbose(positionEvent(tick, p))
	}
	for _, o := range tr.opponents {
		tr.Log.AddVerbose(positionEvent(tick, o))
	}
}

func positionEvent(tick int, v *Vehicle) Event {
	return Event{
		Kind:  EventPosition,
		Tick:  tick,
		Actor: v.Label,
		X:     v.X,
		Y:     v.Y,
		Value: fmt.Sprintf("(%.1f,%.1f) %s", v.X, v.Y, v.Facing),
	}
}

// AdvanceClock moves the cooldown clock forward without ticking the world.
func (tr *TestRound) AdvanceClock(d time.Duration) {
	tr.elapsed += d
}

// RoundSnapshot captures a lightweight state summary.
type RoundSnapshot struct {
	Tick        int
	Phase       Phase
	Stats       Stats
	Player      VehicleSnapshot
	Opponents   []VehicleSnapshot
	Projectiles int
}

// VehicleSnapshot is a lightweight copy of a vehicle's state at a tick.
type VehicleSnapshot struct {
	Label  string
	X, Y   float64
	Facing Direction
}

// Snapshot returns the current state of all vehicles.
func (tr *TestRound) Snapshot() RoundSnapshot {
	snap := RoundSnapshot{
		Tick:        tr.CurrentTick(),
		Phase:       tr.Phase(),
		Stats:       tr.Stats(),
		Projectiles: len(tr.projectiles),
	}
	if p := tr.player; p != nil {
		snap.Player = VehicleSnapshot{Label: p.Label, X: p.X, Y: p.Y, Facing: p.Facing}
	}
	for _, o := range tr.opponents {
		snap.Opponents = append(snap.Opponents, VehicleSnapshot{Label: o.Label, X: o.X, Y: o.Y, Facing: o.Facing})
	}
	return snap
}
