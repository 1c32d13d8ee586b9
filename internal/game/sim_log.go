package game

import (
	"fmt"
	"strings"
)

// EventLog collects structured round events. Unlike FeedLog in the display
// package (a bounded on-screen ring), EventLog is unbounded and
// machine-readable; tests and the headless report query it.
type EventLog struct {
	entries []Event
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick position
// entries are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// OnEvent records e. It makes EventLog a Listener.
func (el *EventLog) OnEvent(e Event) {
	if e.Kind == EventPosition && !el.verbose {
		return
	}
	el.entries = append(el.entries, e)
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(e Event) {
	if !el.verbose {
		return
	}
	el.entries = append(el.entries, e)
}

// Verbose reports whether per-tick entries are kept.
func (el *EventLog) Verbose() bool { return el.verbose }

// Entries returns all recorded entries.
func (el *EventLog) Entries() []Event {
	return el.entries
}

// Len returns the number of recorded entries.
func (el *EventLog) Len() int { return len(el.entries) }

// Filter returns entries of the given kind.
func (el *EventLog) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range el.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// FilterActor returns entries for a specific vehicle label.
func (el *EventLog) FilterActor(label string) []Event {
	var out []Event
	for _, e := range el.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []Event {
	var out []Event
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries are of the given kind.
func (el *EventLog) Count(kind EventKind) int {
	n := 0
	for _, e := range el.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry of kind, or false if none.
func (el *EventLog) LastOf(kind EventKind) (Event, bool) {
	for i := len(el.entries) - 1; i >= 0; i-- {
		if el.entries[i].Kind == kind {
			return el.entries[i], true
		}
	}
	return Event{}, false
}

// HasEntry returns true if at least one entry of kind has a value containing valueSubstr.
func (el *EventLog) HasEntry(kind EventKind, valueSubstr string) bool {
	for _, e := range el.entries {
		if e.Kind != kind {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	return formatEvents(el.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (el *EventLog) FormatRange(fromTick, toTick int) string {
	return formatEvents(el.FilterTickRange(fromTick, toTick))
}

func formatEvents(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the round state.
func (el *EventLog) Summary(r *Round) string {
	var sb strings.Builder
	st := r.Stats()
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s) ---\n", r.CurrentTick(), r.Phase())
	fmt.Fprintf(&sb, "Score=%d  Wave=%d  Lives=%d\n", st.Score, st.Wave, st.Lives)

	if p := r.Player(); p != nil {
		fmt.Fprintf(&sb, "Player: (%.0f,%.0f) facing %s\n", p.X, p.Y, p.Facing)
	}
	if len(r.Opponents()) == 0 {
		sb.WriteString("Opponents: none\n")
	} else {
		labels := make([]string, len(r.Opponents()))
		for i, o := range r.Opponents() {
			labels[i] = fmt.Sprintf("%s(%.0f,%.0f)", o.Label, o.X, o.Y)
		}
		fmt.Fprintf(&sb, "Opponents: %s\n", strings.Join(labels, " "))
	}
	fmt.Fprintf(&sb, "Projectiles in flight: %d\n", len(r.Projectiles()))
	if a := r.Arena(); a != nil {
		fmt.Fprintf(&sb, "Terrain: brick=%d steel=%d water=%d\n",
			a.CountTerrain(TerrainBrick), a.CountTerrain(TerrainSteel), a.CountTerrain(TerrainWater))
	}

	fmt.Fprintf(&sb, "Events: shots=%d kills=%d hits=%d bricks=%d\n",
		el.Count(EventShotFired), el.Count(EventOpponentDestroyed),
		el.Count(EventPlayerHit), el.Count(EventBrickDestroyed))
	return sb.String()
}
