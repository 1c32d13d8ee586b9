package game

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// reportWindowTicks is the default sliding window for recent-pressure reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// Sample captures the round's pressure at one point in time.
type Sample struct {
	Tick        int
	Stats       Stats
	Opponents   int
	Projectiles int
	Bricks      int
	// Closest opponent distance to the base in px; -1 with no base or no opponents.
	BaseThreat float64
}

// RoundReporter collects periodic samples from a round and can summarise
// them over a sliding window.
type RoundReporter struct {
	history     []Sample
	windowTicks int
}

// NewRoundReporter creates a reporter with the given window size.
func NewRoundReporter(windowTicks int) *RoundReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &RoundReporter{windowTicks: windowTicks}
}

// Collect gathers a sample from the current round state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (rr *RoundReporter) Collect(r *Round) {
	s := Sample{
		Tick:        r.CurrentTick(),
		Stats:       r.Stats(),
		Opponents:   len(r.Opponents()),
		Projectiles: len(r.Projectiles()),
		BaseThreat:  -1,
	}
	if a := r.Arena(); a != nil {
		s.Bricks = a.CountTerrain(TerrainBrick)
		if b := a.Base; b != nil {
			bx, by := b.X+TileSize/2, b.Y+TileSize/2
			for _, o := range r.Opponents() {
				ox, oy := o.Center()
				d := manhattan(ox, oy, bx, by)
				if s.BaseThreat < 0 || d < s.BaseThreat {
					s.BaseThreat = d
				}
			}
		}
	}
	rr.history = append(rr.history, s)
}

func manhattan(ax, ay, bx, by float64) float64 {
	return math.Abs(ax-bx) + math.Abs(ay-by)
}

// Latest returns the most recent sample, or nil if none.
func (rr *RoundReporter) Latest() *Sample {
	if len(rr.history) == 0 {
		return nil
	}
	return &rr.history[len(rr.history)-1]
}

// History returns every collected sample.
func (rr *RoundReporter) History() []Sample { return rr.history }

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgOpponents   float64
	AvgProjectiles float64
	MinBaseThreat  float64 // -1 if never threatened
	ScoreGained    int
	LivesLost      int
	BricksLost     int
}

// WindowSummary returns an aggregated summary over the recent time window.
func (rr *RoundReporter) WindowSummary() *WindowReport {
	if len(rr.history) == 0 {
		return nil
	}
	latestTick := rr.history[len(rr.history)-1].Tick
	cutoff := latestTick - rr.windowTicks
	var window []Sample
	for i := len(rr.history) - 1; i >= 0; i-- {
		if rr.history[i].Tick < cutoff {
			break
		}
		window = append(window, rr.history[i])
	}

	newest, oldest := window[0], window[len(window)-1]
	wr := &WindowReport{
		FromTick:      oldest.Tick,
		ToTick:        newest.Tick,
		SampleCount:   len(window),
		MinBaseThreat: -1,
		ScoreGained:   newest.Stats.Score - oldest.Stats.Score,
		LivesLost:     oldest.Stats.Lives - newest.Stats.Lives,
		BricksLost:    oldest.Bricks - newest.Bricks,
	}
	for _, s := range window {
		wr.AvgOpponents += float64(s.Opponents)
		wr.AvgProjectiles += float64(s.Projectiles)
		if s.BaseThreat >= 0 && (wr.MinBaseThreat < 0 || s.BaseThreat < wr.MinBaseThreat) {
			wr.MinBaseThreat = s.BaseThreat
		}
	}
	n := float64(len(window))
	wr.AvgOpponents /= n
	wr.AvgProjectiles /= n
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Pressure Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  opponents=%.1f  projectiles=%.1f\n", wr.AvgOpponents, wr.AvgProjectiles)
	if wr.MinBaseThreat < 0 {
		sb.WriteString("  base threat: none\n")
	} else {
		fmt.Fprintf(&sb, "  base threat: closest %.0fpx (%s)\n", wr.MinBaseThreat, threatLabel(wr.MinBaseThreat))
	}
	fmt.Fprintf(&sb, "  score +%d  lives -%d  bricks -%d\n", wr.ScoreGained, wr.LivesLost, wr.BricksLost)
	return sb.String()
}

func threatLabel(d float64) string {
	switch {
	case d < 3*TileSize:
		return "critical"
	case d < 6*TileSize:
		return "close"
	case d < 10*TileSize:
		return "approaching"
	default:
		return "distant"
	}
}

// --- Final round report ---

// RunReport is the end-of-round summary.
type RunReport struct {
	Seed     int64
	Phase    Phase
	Outcome  Outcome
	Stats    Stats
	Ticks    int
	Elapsed  time.Duration
	Counters Counters
}

// Report builds a RunReport from the round's current state.
func (r *Round) Report() RunReport {
	return RunReport{
		Seed:     r.seed,
		Phase:    r.phase,
		Outcome:  r.outcome,
		Stats:    r.Stats(),
		Ticks:    r.tick,
		Elapsed:  r.elapsed,
		Counters: r.counters,
	}
}

// Accuracy returns the share of player shots that destroyed an opponent.
func (rep RunReport) Accuracy() float64 {
	if rep.Counters.PlayerShots == 0 {
		return 0
	}
	return float64(rep.Counters.OpponentsDestroyed) / float64(rep.Counters.PlayerShots)
}

// FormatReport renders a RunReport as plain text suitable for the clipboard.
func FormatReport(rep RunReport) string {
	var sb strings.Builder
	sb.WriteString("=== BRICK GUARD ROUND REPORT ===\n")
	fmt.Fprintf(&sb, "seed: %d\n", rep.Seed)
	if rep.Outcome.Ended() {
		fmt.Fprintf(&sb, "result: defeat, %s\n", rep.Outcome.Description())
	} else {
		fmt.Fprintf(&sb, "result: %s\n", rep.Phase)
	}
	fmt.Fprintf(&sb, "score: %d  wave: %d  lives: %d\n", rep.Stats.Score, rep.Stats.Wave, rep.Stats.Lives)
	fmt.Fprintf(&sb, "ticks: %d (%s)\n", rep.Ticks, rep.Elapsed.Round(time.Millisecond))

	c := rep.Counters
	sb.WriteString("\n--- Combat ---\n")
	fmt.Fprintf(&sb, "  player shots:        %d\n", c.PlayerShots)
	fmt.Fprintf(&sb, "  opponent shots:      %d\n", c.OpponentShots)
	fmt.Fprintf(&sb, "  opponents destroyed: %d (%.0f%% of shots)\n", c.OpponentsDestroyed, rep.Accuracy()*100)
	fmt.Fprintf(&sb, "  times hit:           %d\n", c.PlayerHits)
	fmt.Fprintf(&sb, "  bricks destroyed:    %d\n", c.BricksDestroyed)
	fmt.Fprintf(&sb, "  waves cleared:       %d\n", c.WavesCleared)
	return sb.String()
}
