package game

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// TickDuration is the simulated time one Tick represents.
	TickDuration = time.Second / 60

	pointsPerOpponent = 100
	startingLives     = 3
	startingWave      = 1
	maxWaveSize       = 5
)

// Phase is the round's lifecycle state.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Counters tallies what happened over a round, for reports.
type Counters struct {
	PlayerShots        int
	OpponentShots      int
	BricksDestroyed    int
	OpponentsDestroyed int
	PlayerHits         int
	WavesCleared       int
}

// Round owns all state of one play session. It is not safe for concurrent
// use: hosts must call every method from a single goroutine.
type Round struct {
	template  Template
	seed      int64
	rng       *rand.Rand
	clock     func() time.Duration // nil: the round's own tick clock
	hud       HUD
	listeners []Listener

	pTurn float64
	pFire float64

	spawnX, spawnY float64
	spawnSet       bool

	phase       Phase
	arena       *Arena
	player      *Vehicle
	opponents   []*Vehicle
	projectiles []*Projectile
	impacts     []*Impact
	score       int
	wave        int
	lives       int
	tick        int
	elapsed     time.Duration
	nextID      int
	outcome     Outcome
	counters    Counters
}

// Option configures a Round at construction.
type Option func(*Round)

// WithSeed makes opponent behaviour reproducible. Seed 0 picks one from the wall clock.
func WithSeed(seed int64) Option {
	return func(r *Round) { r.seed = seed }
}

// WithTemplate replaces the built-in arena.
func WithTemplate(t Template) Option {
	return func(r *Round) { r.template = t }
}

// WithHUD attaches the score/wave/lives sink.
func WithHUD(h HUD) Option {
	return func(r *Round) { r.hud = h }
}

// WithListener subscribes l to every round event.
func WithListener(l Listener) Option {
	return func(r *Round) { r.listeners = append(r.listeners, l) }
}

// WithClock overrides the time source used for fire cooldowns.
func WithClock(now func() time.Duration) Option {
	return func(r *Round) { r.clock = now }
}

// WithOpponentOdds sets the per-tick turn and fire probabilities.
func WithOpponentOdds(pTurn, pFire float64) Option {
	return func(r *Round) {
		r.pTurn = pTurn
		r.pFire = pFire
	}
}

// WithPlayerSpawn overrides the player's start position.
func WithPlayerSpawn(x, y float64) Option {
	return func(r *Round) {
		r.spawnX, r.spawnY = x, y
		r.spawnSet = true
	}
}

// NewRound validates the arena template and returns a round in PhaseNotStarted.
func NewRound(opts ...Option) (*Round, error) {
	r := &Round{
		template: DefaultTemplate,
		pTurn:    PTurn,
		pFire:    PFire,
	}
	for _, o := range opts {
		o(r)
	}
	a, err := BuildArena(r.template)
	if err != nil {
		return nil, fmt.Errorf("new round: %w", err)
	}
	if r.seed == 0 {
		r.seed = time.Now().UnixNano()
	}
	r.rng = rand.New(rand.NewSource(r.seed)) // #nosec G404 -- game only
	if !r.spawnSet {
		r.spawnX, r.spawnY = playerSpawnFor(a)
	}
	return r, nil
}

// playerSpawnFor returns the fixed bottom-centre start: the centre column,
// in the open row above the base's inner brick wall.
func playerSpawnFor(a *Arena) (x, y float64) {
	col := a.Cols / 2
	row := a.Rows - 4
	if row < 0 {
		row = 0
	}
	return float64(col*TileSize + spawnInset), float64(row*TileSize + spawnInset)
}

// opponentSpawns returns the three spawn points along the top edge.
func opponentSpawns(a *Arena) [3][2]float64 {
	return [3][2]float64{
		{0, 0},
		{float64((a.Cols - 1) * TileSize), 0},
		{float64((a.Cols / 2) * TileSize), 0},
	}
}

// WaveSize returns how many opponents wave n fields.
func WaveSize(n int) int {
	return min(2+n, maxWaveSize)
}

// Start resets the session and enters PhaseRunning. It rebuilds the arena,
// places the player at the spawn point and fields the first wave. Calling it
// on a running or ended round restarts it.
func (r *Round) Start() {
	r.arena = MustBuildArena(r.template)
	r.score = 0
	r.wave = startingWave
	r.lives = startingLives
	r.tick = 0
	r.elapsed = 0
	r.nextID = 0
	r.projectiles = nil
	r.impacts = nil
	r.opponents = nil
	r.outcome = Outcome{}
	r.counters = Counters{}
	r.player = NewPlayer(r.spawnX, r.spawnY)
	r.phase = PhaseRunning

	r.emit(Event{Kind: EventRoundStarted, Actor: "--", Value: fmt.Sprintf("seed=%d", r.seed)})
	r.spawnWave()
	r.pushStats()
}

// Tick advances the simulation by one step. It does nothing unless the round
// is running.
func (r *Round) Tick() {
	if r.phase != PhaseRunning {
		return
	}
	r.tick++
	r.elapsed += TickDuration

	r.steerOpponents()
	r.updateProjectiles()
	r.purgeProjectiles()
	r.ageImpacts()
	if r.phase != PhaseRunning {
		return
	}

	if len(r.opponents) == 0 {
		r.counters.WavesCleared++
		r.emit(Event{Kind: EventWaveCleared, Actor: "--", Value: fmt.Sprintf("wave %d cleared", r.wave)})
		r.wave++
		r.spawnWave()
		r.pushStats()
	}
}

// spawnWave fields WaveSize(r.wave) opponents, cycling through the spawn points.
func (r *Round) spawnWave() {
	points := opponentSpawns(r.arena)
	count := WaveSize(r.wave)
	for i := 0; i < count; i++ {
		p := points[i%len(points)]
		r.nextID++
		o := NewOpponent(r.nextID, p[0]+spawnInset, p[1]+spawnInset)
		r.opponents = append(r.opponents, o)
	}
	r.emit(Event{Kind: EventWaveSpawned, Actor: "--", Value: fmt.Sprintf("wave %d: %d opponents", r.wave, count)})
}

// MovePlayer is the input entry point for movement.
func (r *Round) MovePlayer(d Direction) {
	if r.phase != PhaseRunning || r.player == nil {
		return
	}
	r.AttemptMove(r.player, d)
}

// PlayerFire is the input entry point for shooting.
func (r *Round) PlayerFire() {
	if r.phase != PhaseRunning || r.player == nil {
		return
	}
	r.Fire(r.player)
}

// end stops the round and notifies the HUD once.
func (r *Round) end(reason EndReason) {
	if r.phase == PhaseEnded {
		return
	}
	r.phase = PhaseEnded
	if r.lives < 0 {
		r.lives = 0
	}
	r.outcome = Outcome{
		Reason:     reason,
		FinalScore: r.score,
		Wave:       r.wave,
		Lives:      r.lives,
		Tick:       r.tick,
		Elapsed:    r.elapsed,
	}
	r.emit(Event{Kind: EventRoundEnded, Actor: "--", Value: fmt.Sprintf("%s, score %d", reason, r.score)})
	if r.hud != nil {
		r.hud.RoundOver(r.outcome)
	}
}

// emit stamps e with the current tick and stats and fans it out.
func (r *Round) emit(e Event) {
	e.Tick = r.tick
	e.Stats = r.Stats()
	for _, l := range r.listeners {
		l.OnEvent(e)
	}
}

// pushStats sends the current counters to the HUD.
func (r *Round) pushStats() {
	if r.hud != nil {
		r.hud.ShowStats(r.Stats())
	}
}

// Now returns the time used for fire cooldowns.
func (r *Round) Now() time.Duration {
	if r.clock != nil {
		return r.clock()
	}
	return r.elapsed
}

// Phase returns the lifecycle state.
func (r *Round) Phase() Phase { return r.phase }

// Running reports whether the round is in PhaseRunning.
func (r *Round) Running() bool { return r.phase == PhaseRunning }

// Stats returns score, wave and lives.
func (r *Round) Stats() Stats {
	return Stats{Score: r.score, Wave: r.wave, Lives: r.lives}
}

// Outcome returns the final result; its Reason is EndNone until the round ends.
func (r *Round) Outcome() Outcome { return r.outcome }

// Arena returns the current terrain, or nil before the first Start.
func (r *Round) Arena() *Arena { return r.arena }

// Player returns the player's vehicle, or nil before the first Start.
func (r *Round) Player() *Vehicle { return r.player }

// Opponents returns the live opponents. The slice is owned by the round.
func (r *Round) Opponents() []*Vehicle { return r.opponents }

// Projectiles returns the projectiles currently in flight.
func (r *Round) Projectiles() []*Projectile { return r.projectiles }

// Impacts returns the hit flashes still on screen.
func (r *Round) Impacts() []*Impact { return r.impacts }

// CurrentTick returns the number of ticks since Start.
func (r *Round) CurrentTick() int { return r.tick }

// Seed returns the seed the round's random source was built from.
func (r *Round) Seed() int64 { return r.seed }

// Counters returns the round's running tallies.
func (r *Round) Counters() Counters { return r.counters }

// PlayerSpawn returns the player's fixed start position.
func (r *Round) PlayerSpawn() (x, y float64) { return r.spawnX, r.spawnY }
