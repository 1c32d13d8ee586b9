package term

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

func newTestHost(t *testing.T, seed int64) (*Host, *time.Time) {
	t.Helper()
	h, err := New(nil, Options{Seed: seed})
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Unix(1000, 0)
	h.now = func() time.Time { return clock }
	return h, &clock
}

func TestKeyDirection(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want game.Direction
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.Up, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.Left, true},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.Right, true},
		{tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), game.Down, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.Up, false},
	}
	for _, c := range cases {
		d, ok := keyDirection(c.ev)
		if ok != c.ok || (ok && d != c.want) {
			t.Errorf("%v: got %s,%v", c.ev.Name(), d, ok)
		}
	}
}

func TestKeyHolds_Expire(t *testing.T) {
	var k keyHolds
	t0 := time.Unix(0, 0)
	if _, ok := k.direction(t0); ok {
		t.Fatal("nothing pressed yet")
	}
	k.press(game.Left, t0)
	if d, ok := k.direction(t0.Add(100 * time.Millisecond)); !ok || d != game.Left {
		t.Fatal("press should still be held")
	}
	if _, ok := k.direction(t0.Add(holdWindow + time.Millisecond)); ok {
		t.Fatal("hold should have expired")
	}
	k.pressFire(t0)
	if !k.firing(t0.Add(holdWindow)) || k.firing(t0.Add(2*holdWindow)) {
		t.Fatal("fire hold window wrong")
	}
}

func TestFrame_DefaultArena(t *testing.T) {
	h, _ := newTestHost(t, 1)
	if Frame(h.round) != nil {
		t.Fatal("no frame before the round starts")
	}
	h.start()
	f := Frame(h.round)
	if len(f) != game.ArenaRows || len(f[0]) != game.ArenaCols*cellWidth {
		t.Fatalf("frame is %dx%d", len(f[0]), len(f))
	}
	// Base at (7,13), steel at (7,6), water at (6,3), player at spawn tile (7,11).
	if f[13][14].Rune != '[' || f[13][15].Rune != ']' {
		t.Fatalf("base glyphs = %q%q", f[13][14].Rune, f[13][15].Rune)
	}
	if f[6][14].Rune != '█' || f[3][12].Rune != '~' {
		t.Fatal("immune terrain glyphs wrong")
	}
	if f[11][14].Rune != '▲' || f[11][14].Style != stylePlayer {
		t.Fatalf("player glyph = %q", f[11][14].Rune)
	}
	if f[0][0].Rune != '▼' || f[0][0].Style != styleOpponent {
		t.Fatalf("opponent glyph = %q", f[0][0].Rune)
	}
}

func TestHost_InputDrivesPlayer(t *testing.T) {
	h, clock := newTestHost(t, 1)
	h.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !h.round.Running() {
		t.Fatal("Enter should start the round")
	}
	startX, _ := h.round.PlayerSpawn()
	h.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	h.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	h.step()
	p := h.round.Player()
	if p.Facing != game.Left || p.X != startX-2 {
		t.Fatalf("player at x=%v facing %s", p.X, p.Facing)
	}
	if h.round.Counters().PlayerShots != 1 {
		t.Fatal("space should fire")
	}

	*clock = clock.Add(time.Second)
	h.step()
	if p.X != startX-2 {
		t.Fatal("expired hold still moves the player")
	}
}

func TestHost_QuitAndDemo(t *testing.T) {
	h, _ := newTestHost(t, 1)
	if h.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("Esc should stop the loop")
	}
	h.handleEvent(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone))
	if !h.demo || h.pilot == nil {
		t.Fatal("F2 should enable the demo pilot")
	}
}

func TestHUDLine(t *testing.T) {
	line := hudLine(game.Stats{Score: 300, Wave: 2, Lives: 1}, true)
	if !strings.Contains(line, "SCORE 000300") || !strings.HasSuffix(line, "DEMO") {
		t.Fatalf("hud line = %q", line)
	}
}
