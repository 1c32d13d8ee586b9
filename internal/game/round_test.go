package game

import (
	"errors"
	"testing"
)

// recordingHUD captures every HUD call in order.
type recordingHUD struct {
	stats    []Stats
	outcomes []Outcome
}

func (h *recordingHUD) ShowStats(s Stats)   { h.stats = append(h.stats, s) }
func (h *recordingHUD) RoundOver(o Outcome) { h.outcomes = append(h.outcomes, o) }

func TestNewRound_NotStarted(t *testing.T) {
	r, err := NewRound(WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	if r.Phase() != PhaseNotStarted {
		t.Fatalf("phase = %s, want not_started", r.Phase())
	}
	r.Tick()
	if r.CurrentTick() != 0 || r.Arena() != nil {
		t.Fatal("Tick before Start should do nothing")
	}
	if r.Seed() != 5 {
		t.Fatalf("seed = %d, want 5", r.Seed())
	}
}

func TestNewRound_BadTemplate(t *testing.T) {
	_, err := NewRound(WithTemplate(Template{{0, 4}, {4}}))
	if !errors.Is(err, ErrMalformedTemplate) {
		t.Fatalf("err = %v, want ErrMalformedTemplate", err)
	}
}

func TestStart_FirstWave(t *testing.T) {
	tr := NewTestRound(Quiet())
	if st := tr.Stats(); st != (Stats{Score: 0, Wave: 1, Lives: 3}) {
		t.Fatalf("stats = %+v", st)
	}
	if tr.Phase() != PhaseRunning {
		t.Fatalf("phase = %s", tr.Phase())
	}
	want := [][2]float64{{2, 2}, {282, 2}, {142, 2}}
	ops := tr.Opponents()
	if len(ops) != len(want) {
		t.Fatalf("opponents = %d, want %d", len(ops), len(want))
	}
	for i, o := range ops {
		if o.X != want[i][0] || o.Y != want[i][1] || o.Facing != Down || o.Side != SideOpponent {
			t.Fatalf("opponent %d = %+v, want at %v facing down", i, o, want[i])
		}
		if o.Speed != 1 {
			t.Fatalf("opponent speed = %v, want 1", o.Speed)
		}
	}
}

func TestWaveSize(t *testing.T) {
	cases := map[int]int{1: 3, 2: 4, 3: 5, 4: 5, 20: 5}
	for wave, want := range cases {
		if got := WaveSize(wave); got != want {
			t.Fatalf("WaveSize(%d) = %d, want %d", wave, got, want)
		}
	}
}

func TestTick_WaveAdvancesOnEmptySet(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents())
	tr.RunTicks(1)
	if tr.Stats().Wave != 2 {
		t.Fatalf("wave = %d, want 2", tr.Stats().Wave)
	}
	if len(tr.Opponents()) != 4 {
		t.Fatalf("opponents = %d, want 4", len(tr.Opponents()))
	}
	if tr.Log.Count(EventWaveCleared) != 1 || tr.Log.Count(EventWaveSpawned) != 2 {
		t.Fatalf("unexpected wave events:\n%s", tr.Log.Format())
	}

	tr.opponents = nil
	tr.RunTicks(1)
	ops := tr.Opponents()
	if tr.Stats().Wave != 3 || len(ops) != 5 {
		t.Fatalf("wave=%d opponents=%d, want 3 and 5", tr.Stats().Wave, len(ops))
	}
	// Spawn points cycle, so the fourth and fifth share the first two points.
	if ops[3].X != ops[0].X || ops[3].Y != ops[0].Y || ops[4].X != ops[1].X {
		t.Fatal("spawn points should cycle i % 3")
	}
}

func TestTick_WaveSizeCapsAtFive(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents())
	tr.wave = 4
	tr.RunTicks(1)
	if tr.Stats().Wave != 5 || len(tr.Opponents()) != 5 {
		t.Fatalf("wave=%d opponents=%d, want 5 and 5", tr.Stats().Wave, len(tr.Opponents()))
	}
}

func TestTick_NeverStartsWithZeroOpponents(t *testing.T) {
	tr := NewTestRound(Seeded(11), Piloted(11))
	for i := 0; i < 3000 && tr.Running(); i++ {
		tr.step()
		if tr.Running() && len(tr.Opponents()) == 0 {
			t.Fatalf("tick %d ended running with no opponents", tr.CurrentTick())
		}
	}
}

func TestStart_Restart(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents(),
		PlaceProjectile(147, 262, Down, SideOpponent),
	)
	tr.RunTicks(1)
	if tr.Phase() != PhaseEnded {
		t.Fatal("round should have ended")
	}
	tr.Arena().HitTile(1, 1)
	tr.Arena().HitTile(1, 1)

	tr.Start()
	if tr.Phase() != PhaseRunning || tr.CurrentTick() != 0 {
		t.Fatal("Start should reset to a fresh running round")
	}
	if tr.Arena().Base.Destroyed {
		t.Fatal("restart should rebuild the base")
	}
	if tr.Arena().TerrainAt(1, 1) != TerrainBrick {
		t.Fatal("restart should rebuild terrain")
	}
	if st := tr.Stats(); st != (Stats{Score: 0, Wave: 1, Lives: 3}) {
		t.Fatalf("stats = %+v after restart", st)
	}
	if len(tr.Projectiles()) != 0 || len(tr.Opponents()) != 3 {
		t.Fatal("restart should clear projectiles and field wave 1")
	}
	if tr.Outcome().Ended() {
		t.Fatal("outcome should be cleared")
	}
}

func TestTick_NoopAfterEnd(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents(),
		PlaceProjectile(147, 262, Down, SideOpponent),
	)
	tr.RunTicks(1)
	tick := tr.CurrentTick()
	tr.Tick()
	tr.MovePlayer(Left)
	tr.PlayerFire()
	if tr.CurrentTick() != tick {
		t.Fatal("Tick after end should not advance")
	}
	if tr.Player().X != 142 || len(tr.Projectiles()) != 0 {
		t.Fatal("input after end should be ignored")
	}
}

func TestHUD_Notifications(t *testing.T) {
	h := &recordingHUD{}
	tr := NewTestRound(Quiet(), ClearOpponents(),
		RoundOptions(WithHUD(h)),
		PlaceOpponent(142, 102, Up),
		FreezeOpponents(),
		PlaceProjectile(147, 119, Up, SidePlayer),
	)
	if len(h.stats) != 1 || h.stats[0] != (Stats{Score: 0, Wave: 1, Lives: 3}) {
		t.Fatalf("start stats = %+v", h.stats)
	}

	tr.RunTicks(1) // kill (score) then empty set (wave)
	if len(h.stats) != 3 {
		t.Fatalf("stats calls = %d, want 3: %+v", len(h.stats), h.stats)
	}
	if h.stats[1].Score != 100 || h.stats[2].Wave != 2 {
		t.Fatalf("unexpected stats sequence %+v", h.stats)
	}

	tr.projectiles = append(tr.projectiles, &Projectile{X: 147, Y: 262, Dir: Down, Side: SideOpponent, Speed: 5, Active: true})
	tr.RunTicks(1)
	tr.RunTicks(5)
	if len(h.outcomes) != 1 {
		t.Fatalf("RoundOver calls = %d, want 1", len(h.outcomes))
	}
	if o := h.outcomes[0]; o.FinalScore != 100 || o.Reason != EndBaseDestroyed || o.Wave != 2 {
		t.Fatalf("outcome = %+v", o)
	}
}

func TestPhase_Strings(t *testing.T) {
	if PhaseNotStarted.String() != "not_started" || PhaseRunning.String() != "running" || PhaseEnded.String() != "ended" {
		t.Fatal("unexpected phase names")
	}
	if EndOutOfLives.String() != "out_of_lives" || EndBaseDestroyed.String() != "base_destroyed" {
		t.Fatal("unexpected end reason names")
	}
}
