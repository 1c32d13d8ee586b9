package game

import "fmt"

// EventKind names something that happened during a tick.
type EventKind uint8

const (
	EventRoundStarted EventKind = iota
	EventShotFired
	EventShotBlocked // stopped by steel
	EventBrickDamaged
	EventBrickDestroyed
	EventOpponentDestroyed
	EventPlayerHit
	EventPlayerRespawned
	EventBaseDestroyed
	EventWaveCleared
	EventWaveSpawned
	EventRoundEnded
	EventPosition // per-tick vehicle position, recorded only by verbose logs
	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	EventRoundStarted:      "round_started",
	EventShotFired:         "shot_fired",
	EventShotBlocked:       "shot_blocked",
	EventBrickDamaged:      "brick_damaged",
	EventBrickDestroyed:    "brick_destroyed",
	EventOpponentDestroyed: "opponent_destroyed",
	EventPlayerHit:         "player_hit",
	EventPlayerRespawned:   "player_respawned",
	EventBaseDestroyed:     "base_destroyed",
	EventWaveCleared:       "wave_cleared",
	EventWaveSpawned:       "wave_spawned",
	EventRoundEnded:        "round_ended",
	EventPosition:          "position",
}

func (k EventKind) String() string {
	if k >= eventKindCount {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is one structured record emitted by a Round.
type Event struct {
	Kind     EventKind
	Tick     int
	Actor    string // vehicle label, or "--" for round-level events
	X, Y     float64
	Col, Row int // grid cell for terrain events
	Stats    Stats
	Value    string // human-readable detail
}

// String formats the event as a fixed-width log line.
//
//	[T=042] P    shot_fired         (137,265) up
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-18s %s", e.Tick, e.Actor, e.Kind, e.Value)
}

// Listener receives round events synchronously, on the goroutine running the round.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Stats is the HUD-facing view of the round counters.
type Stats struct {
	Score int
	Wave  int
	Lives int
}

// HUD receives score, wave and lives whenever one of them changes, and the
// final outcome once when the round ends.
type HUD interface {
	ShowStats(s Stats)
	RoundOver(o Outcome)
}
