package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Brick-Guard/internal/config"
	"github.com/Garsondee/Brick-Guard/internal/game"
	"github.com/Garsondee/Brick-Guard/internal/logging"
)

const sampleEvery = 60 // ticks between reporter samples

type runStats struct {
	runIndex int
	seed     int64

	ticks    int
	ended    bool
	reason   game.EndReason
	stats    game.Stats
	counters game.Counters

	firstKillTick  int
	firstHitTick   int
	firstBrickTick int
	firstClearTick int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configDir string

	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.IntVar(&runs, "runs", 0, "number of headless rounds (0 = config headless.runs)")
	flag.IntVar(&ticks, "ticks", 0, "tick budget per round (0 = config headless.ticks)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "autopilot", "scenario name (autopilot, idle)")
	flag.Parse()

	logger := logging.New("info", "console", os.Stderr)
	if err := config.Load(configDir); err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	settings, err := config.Get()
	if err != nil {
		logger.Fatal().Err(err).Msg("decode config")
	}
	if runs == 0 {
		runs = settings.Headless.Runs
	}
	if ticks == 0 {
		ticks = settings.Headless.Ticks
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "autopilot" && scenario != "idle" {
		fmt.Printf("error: unsupported scenario %q (supported: autopilot, idle)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runRound(i+1, seed, ticks, scenario == "autopilot")
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runRound plays one seeded round until it ends or the tick budget runs out.
func runRound(runIndex int, seed int64, ticks int, piloted bool) runStats {
	opts := []game.HarnessOption{game.Seeded(seed)}
	if piloted {
		opts = append(opts, game.Piloted(seed))
	}
	tr := game.NewTestRound(opts...)
	rr := game.NewRoundReporter(0)
	rr.Collect(tr.Round)
	for i := 0; i < ticks && tr.Running(); i++ {
		tr.RunTicks(1)
		if tr.CurrentTick()%sampleEvery == 0 {
			rr.Collect(tr.Round)
		}
	}
	if tr.CurrentTick()%sampleEvery != 0 {
		rr.Collect(tr.Round)
	}

	entries := tr.Log.Entries()
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		ticks:          tr.CurrentTick(),
		ended:          !tr.Running(),
		reason:         tr.Outcome().Reason,
		stats:          tr.Stats(),
		counters:       tr.Counters(),
		firstKillTick:  firstTick(entries, game.EventOpponentDestroyed),
		firstHitTick:   firstTick(entries, game.EventPlayerHit),
		firstBrickTick: firstTick(entries, game.EventBrickDestroyed),
		firstClearTick: firstTick(entries, game.EventWaveCleared),
		windowSummary:  rr.WindowSummary(),
	}
}

func firstTick(entries []game.Event, kind game.EventKind) int {
	for _, e := range entries {
		if e.Kind == kind {
			return e.Tick
		}
	}
	return -1
}

func (rs runStats) result() string {
	if !rs.ended {
		return "survived"
	}
	return rs.reason.String()
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s ticks=%d score=%d wave=%d lives=%d\n",
		rs.result(), rs.ticks, rs.stats.Score, rs.stats.Wave, rs.stats.Lives)
	fmt.Printf("phase_markers: first_kill=%d first_hit=%d first_brick=%d first_clear=%d\n",
		rs.firstKillTick, rs.firstHitTick, rs.firstBrickTick, rs.firstClearTick)
	fmt.Printf("event_totals: player_shots=%d opponent_shots=%d kills=%d hits=%d bricks=%d waves_cleared=%d\n",
		rs.counters.PlayerShots, rs.counters.OpponentShots, rs.counters.OpponentsDestroyed,
		rs.counters.PlayerHits, rs.counters.BricksDestroyed, rs.counters.WavesCleared)
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

// aggregate is the cross-run summary.
type aggregate struct {
	runs          int
	avgScore      float64
	avgWave       float64
	avgEndTick    string
	accuracy      float64
	outcomes      map[string]int
	firstKillTick string
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all), outcomes: map[string]int{}}
	totalScore, totalWave, shots, kills := 0, 0, 0, 0
	endTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	for _, rs := range all {
		totalScore += rs.stats.Score
		totalWave += rs.stats.Wave
		shots += rs.counters.PlayerShots
		kills += rs.counters.OpponentsDestroyed
		agg.outcomes[rs.result()]++
		if rs.ended {
			endTicks = append(endTicks, rs.ticks)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
	}
	agg.avgScore = avg(totalScore, len(all))
	agg.avgWave = avg(totalWave, len(all))
	agg.accuracy = avg(kills, shots) * 100
	agg.avgEndTick = avgTickString(endTicks)
	agg.firstKillTick = avgTickString(killTicks)
	return agg
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d avg_score=%.1f avg_wave=%.2f accuracy=%.0f%%\n", agg.runs, agg.avgScore, agg.avgWave, agg.accuracy)
	fmt.Printf("avg_end_tick=%s avg_first_kill=%s\n", agg.avgEndTick, agg.firstKillTick)
	fmt.Printf("outcomes: %s\n", joinCounts(agg.outcomes))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
