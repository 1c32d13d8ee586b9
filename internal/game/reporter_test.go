package game

import (
	"strings"
	"testing"
)

func TestRoundReporter_Window(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents(),
		PlaceOpponent(142, 102, Up),
		FreezeOpponents(),
		PlaceProjectile(147, 119, Up, SidePlayer),
	)
	rr := NewRoundReporter(120)
	if rr.WindowSummary() != nil || rr.Latest() != nil {
		t.Fatal("empty reporter should have no summary")
	}
	rr.Collect(tr.Round)
	tr.RunTicks(60)
	rr.Collect(tr.Round)

	wr := rr.WindowSummary()
	if wr == nil {
		t.Fatal("expected a window summary")
	}
	if wr.SampleCount != 2 || wr.FromTick != 0 || wr.ToTick != 60 {
		t.Fatalf("window = %+v", wr)
	}
	if wr.ScoreGained != 100 {
		t.Fatalf("score gained = %d, want 100", wr.ScoreGained)
	}
	if wr.MinBaseThreat <= 0 {
		t.Fatalf("base threat = %v, want a positive distance", wr.MinBaseThreat)
	}
	if !strings.Contains(wr.Format(), "score +100") {
		t.Fatalf("format:\n%s", wr.Format())
	}
	if len(rr.History()) != 2 || rr.Latest().Tick != 60 {
		t.Fatal("history bookkeeping is wrong")
	}
}

func TestRoundReporter_WindowDropsOldSamples(t *testing.T) {
	tr := NewTestRound(Quiet())
	rr := NewRoundReporter(30)
	for i := 0; i < 4; i++ {
		rr.Collect(tr.Round)
		tr.RunTicks(20)
	}
	// Samples at ticks 0, 20, 40, 60; the window reaches back to tick 30.
	wr := rr.WindowSummary()
	if wr.SampleCount != 2 || wr.FromTick != 40 {
		t.Fatalf("window = %+v", wr)
	}
}

func TestFormatReport(t *testing.T) {
	tr := NewTestRound(Seeded(9), Quiet(), ClearOpponents(),
		PlaceOpponent(142, 102, Up),
		FreezeOpponents(),
		PlaceProjectile(147, 119, Up, SidePlayer),
	)
	tr.RunTicks(1)
	tr.Fire(tr.Player())
	tr.projectiles = append(tr.projectiles, &Projectile{X: 147, Y: 262, Dir: Down, Side: SideOpponent, Speed: 5, Active: true})
	tr.RunTicks(1)

	rep := tr.Report()
	if rep.Seed != 9 || rep.Outcome.Reason != EndBaseDestroyed || rep.Stats.Score != 100 {
		t.Fatalf("report = %+v", rep)
	}
	out := FormatReport(rep)
	for _, want := range []string{
		"seed: 9",
		"result: defeat, the base was destroyed",
		"score: 100  wave: 2",
		"player shots:        1",
		"opponents destroyed: 1 (100% of shots)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunReport_AccuracyNoShots(t *testing.T) {
	if (RunReport{}).Accuracy() != 0 {
		t.Fatal("accuracy with no shots should be 0")
	}
}
