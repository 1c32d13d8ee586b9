package display

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

func TestXform_QuarterTurns(t *testing.T) {
	s := NewSurface(nil, 0, hudHeight)
	s.PushTransform(10, 10, game.Right.Angle())

	x, y, w, h := s.top().rect(-8, -8, 16, 16)
	if snap(x) != 2 || snap(y) != 26 || snap(w) != 16 || snap(h) != 16 {
		t.Fatalf("hull = (%v,%v,%v,%v), want (2,26,16,16)", x, y, w, h)
	}

	// The barrel points along local -y; facing right it must extend to +x.
	x, y, w, h = s.top().rect(-2, -14, 4, 10)
	if snap(x) != 14 || snap(y) != 32 || snap(w) != 10 || snap(h) != 4 {
		t.Fatalf("barrel = (%v,%v,%v,%v), want (14,32,10,4)", x, y, w, h)
	}

	s.PopTransform()
	if s.top() != (xform{tx: 0, ty: hudHeight, cos: 1}) {
		t.Fatalf("pop did not restore the base transform: %+v", s.top())
	}
	s.PopTransform() // the base transform is never popped
	if len(s.stack) != 1 {
		t.Fatalf("stack depth = %d, want 1", len(s.stack))
	}
}

func TestXform_Nested(t *testing.T) {
	outer := xform{tx: 100, ty: 0, cos: math.Cos(math.Pi), sin: math.Sin(math.Pi)}
	inner := xform{tx: 10, ty: 0, cos: 1}
	x, y := outer.then(inner).apply(1, 0)
	if snap(x) != 89 || snap(y) != 0 {
		t.Fatalf("nested apply = (%v,%v), want (89,0)", x, y)
	}
}

func TestRepeater(t *testing.T) {
	r := repeater{every: 50 * time.Millisecond}
	dt := 10 * time.Millisecond

	if !r.step(ControlUp, dt) {
		t.Fatal("first frame of a press must fire")
	}
	for i := 0; i < 4; i++ {
		if r.step(ControlUp, dt) {
			t.Fatalf("fired early at frame %d", i+2)
		}
	}
	if !r.step(ControlUp, dt) {
		t.Fatal("expected a repeat after 50ms")
	}
	if !r.step(ControlFire, dt) {
		t.Fatal("switching buttons fires immediately")
	}
	if r.step(ControlNone, dt) || r.step(ControlNone, dt) {
		t.Fatal("released controls never fire")
	}
}

func TestControlAt(t *testing.T) {
	for c, rect := range controlLayout {
		mid := rect.Min.Add(rect.Size().Div(2))
		if got := controlAt(mid.X, mid.Y); got != c {
			t.Errorf("centre of %d maps to %d", c, got)
		}
	}
	if controlAt(arenaPixels/2, hudHeight+arenaPixels/2) != ControlNone {
		t.Fatal("the arena is not a control")
	}
}

func TestControlDirection(t *testing.T) {
	if d, ok := ControlLeft.direction(); !ok || d != game.Left {
		t.Fatalf("left = %s,%v", d, ok)
	}
	if _, ok := ControlFire.direction(); ok {
		t.Fatal("fire is not a direction")
	}
}

func TestHeldDirections(t *testing.T) {
	keys := map[ebiten.Key]bool{ebiten.KeyD: true, ebiten.KeyArrowDown: true}
	pressed := func(k ebiten.Key) bool { return keys[k] }
	got := heldDirections(pressed)
	if len(got) != 2 || got[0] != game.Down || got[1] != game.Right {
		t.Fatalf("got %v, want [down right]", got)
	}
	if got := heldDirections(func(ebiten.Key) bool { return false }); len(got) != 0 {
		t.Fatalf("no keys held, got %v", got)
	}
}

func TestPointerActions_FireOncePerPress(t *testing.T) {
	r := repeater{every: 50 * time.Millisecond}
	dt := 10 * time.Millisecond

	prev := ControlNone
	shots := 0
	for i := 0; i < 20; i++ {
		_, move, fire := pointerActions(&r, prev, ControlFire, dt)
		if move {
			t.Fatal("fire button must not move")
		}
		if fire {
			shots++
		}
		prev = ControlFire
	}
	if shots != 1 {
		t.Fatalf("holding fire for 200ms shot %d times, want 1", shots)
	}

	pointerActions(&r, prev, ControlNone, dt)
	if _, _, fire := pointerActions(&r, ControlNone, ControlFire, dt); !fire {
		t.Fatal("a fresh press must fire")
	}
}

func TestPointerActions_PadRepeats(t *testing.T) {
	r := repeater{every: 50 * time.Millisecond}
	dt := 10 * time.Millisecond

	moves := 0
	prev := ControlNone
	for i := 0; i < 11; i++ {
		d, move, fire := pointerActions(&r, prev, ControlLeft, dt)
		if fire {
			t.Fatal("the d-pad never fires")
		}
		if move {
			if d != game.Left {
				t.Fatalf("moved %s, want left", d)
			}
			moves++
		}
		prev = ControlLeft
	}
	if moves != 3 {
		t.Fatalf("moves over 110ms = %d, want 3", moves)
	}
}

func TestFeedLog_RingBuffer(t *testing.T) {
	fl := NewFeedLog()
	for i := 0; i < feedMaxEntries+5; i++ {
		fl.Add(i, "P", game.EventOpponentDestroyed, "x")
	}
	got := fl.Recent()
	if len(got) != feedMaxEntries {
		t.Fatalf("len = %d, want %d", len(got), feedMaxEntries)
	}
	if got[0].Tick != 5 || got[len(got)-1].Tick != feedMaxEntries+4 {
		t.Fatalf("window = %d..%d", got[0].Tick, got[len(got)-1].Tick)
	}
	fl.Reset()
	if len(fl.Recent()) != 0 {
		t.Fatal("reset left entries behind")
	}
}

func TestFeedLog_SkipsNoise(t *testing.T) {
	fl := NewFeedLog()
	r, err := game.NewRound(game.WithSeed(1), game.WithListener(fl))
	if err != nil {
		t.Fatal(err)
	}
	r.Start()
	r.PlayerFire()
	for _, e := range fl.Recent() {
		if e.Kind == game.EventShotFired {
			t.Fatal("shots should not reach the feed")
		}
	}
	if len(fl.Recent()) == 0 || fl.Recent()[0].Kind != game.EventRoundStarted {
		t.Fatalf("feed = %+v", fl.Recent())
	}
}

func TestHUDState(t *testing.T) {
	g, err := New(Options{Seed: 3, TouchRepeat: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	g.start()
	if g.hud.stats != (game.Stats{Score: 0, Wave: 1, Lives: 3}) {
		t.Fatalf("hud stats = %+v", g.hud.stats)
	}
	if g.hud.over {
		t.Fatal("fresh round reported over")
	}
	w, h := g.Layout(0, 0)
	if w != ScreenWidth || h != ScreenHeight {
		t.Fatalf("layout = %dx%d", w, h)
	}
}
