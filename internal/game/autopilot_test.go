package game

import "testing"

func TestAlignedTarget(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents(), PlaceOpponent(142, 102, Up))
	if d, ok := alignedTarget(tr.Round, tr.Player()); !ok || d != Up {
		t.Fatalf("aligned = %s,%v, want up", d, ok)
	}

	tr2 := NewTestRound(Quiet(), ClearOpponents(), PlaceOpponent(40, 224, Up))
	if d, ok := alignedTarget(tr2.Round, tr2.Player()); !ok || d != Left {
		t.Fatalf("aligned = %s,%v, want left", d, ok)
	}

	tr3 := NewTestRound(Quiet(), ClearOpponents(), PlaceOpponent(2, 2, Up))
	if _, ok := alignedTarget(tr3.Round, tr3.Player()); ok {
		t.Fatal("diagonal opponent should not be aligned")
	}
}

func TestBaseInLine(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents())
	p := tr.Player()
	p.Facing = Down
	if !baseInLine(tr.Round, p) {
		t.Fatal("base is straight below the spawn")
	}
	p.Facing = Up
	if baseInLine(tr.Round, p) {
		t.Fatal("base is not above the spawn")
	}
}

func TestAutopilot_FiresAtAlignedOpponent(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents(),
		PlaceOpponent(142, 102, Up),
		FreezeOpponents(),
	)
	a := NewAutopilot(1)
	a.Drive(tr.Round)
	p := tr.Player()
	if p.Facing != Up {
		t.Fatalf("facing = %s, want up", p.Facing)
	}
	if tr.Counters().PlayerShots != 1 {
		t.Fatalf("shots = %d, want 1", tr.Counters().PlayerShots)
	}
}

func TestAutopilot_HoldsFireOverBase(t *testing.T) {
	// Opponent straight below the player, past the base.
	tr := NewTestRound(Quiet(), ClearOpponents(),
		PlaceOpponent(142, 284, Up),
		FreezeOpponents(),
	)
	a := NewAutopilot(1)
	a.Drive(tr.Round)
	if tr.Player().Facing != Down {
		t.Fatalf("facing = %s, want down", tr.Player().Facing)
	}
	if tr.Counters().PlayerShots != 0 {
		t.Fatal("autopilot fired through its own base")
	}
}

func TestAutopilot_IdleWhenNotRunning(t *testing.T) {
	r, err := NewRound(WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	NewAutopilot(1).Drive(r) // must not panic without a player
}
