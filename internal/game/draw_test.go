package game

import (
	"image/color"
	"testing"
)

type drawCall struct {
	op         string
	x, y, w, h float64
	c          color.RGBA
}

// recordingSurface logs every primitive it is asked to draw.
type recordingSurface struct {
	calls []drawCall
	depth int
	max   int
}

func (s *recordingSurface) Clear(c color.RGBA) {
	s.calls = append(s.calls, drawCall{op: "clear", c: c})
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	s.calls = append(s.calls, drawCall{op: "fill", x: x, y: y, w: w, h: h, c: c})
}

func (s *recordingSurface) StrokeRect(x, y, w, h, _ float64, c color.RGBA) {
	s.calls = append(s.calls, drawCall{op: "stroke", x: x, y: y, w: w, h: h, c: c})
}

func (s *recordingSurface) PushTransform(tx, ty, theta float64) {
	s.calls = append(s.calls, drawCall{op: "push", x: tx, y: ty, w: theta})
	s.depth++
	if s.depth > s.max {
		s.max = s.depth
	}
}

func (s *recordingSurface) PopTransform() {
	s.calls = append(s.calls, drawCall{op: "pop"})
	s.depth--
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func TestDraw_BeforeStartOnlyClears(t *testing.T) {
	r, err := NewRound(WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	s := &recordingSurface{}
	r.Draw(s)
	if len(s.calls) != 1 || s.calls[0].op != "clear" || s.calls[0].c != ColorBackground {
		t.Fatalf("calls = %+v", s.calls)
	}
}

func TestDraw_Primitives(t *testing.T) {
	tr := NewTestRound(
		RoundOptions(WithTemplate(Template{{1, 2, 3}})),
		Quiet(), ClearOpponents(),
		PlacePlayer(2, 2, Up),
	)
	s := &recordingSurface{}
	tr.Draw(s)

	if s.calls[0].op != "clear" {
		t.Fatal("frame must start with a clear")
	}
	// brick 1+4 strokes, steel 1+4 rivets, water 1+6 ripples, vehicle 4.
	if n := s.count("fill"); n != 17 {
		t.Fatalf("fills = %d, want 17", n)
	}
	if n := s.count("stroke"); n != 4 {
		t.Fatalf("strokes = %d, want 4", n)
	}
	if s.count("push") != 1 || s.count("pop") != 1 || s.depth != 0 {
		t.Fatal("transforms must be balanced")
	}

	var push, body drawCall
	for i, c := range s.calls {
		if c.op == "push" {
			push, body = c, s.calls[i+1]
			break
		}
	}
	if push.x != 10 || push.y != 10 || push.w != 0 {
		t.Fatalf("vehicle transform = %+v, want centre (10,10) angle 0", push)
	}
	if body.c != ColorPlayerBody || body.x != -8 || body.y != -8 || body.w != 16 {
		t.Fatalf("hull = %+v", body)
	}
}

func TestDraw_DestroyedBase(t *testing.T) {
	tr := NewTestRound(Quiet(), ClearOpponents(),
		PlaceProjectile(147, 262, Down, SideOpponent),
	)
	tr.RunTicks(1)
	s := &recordingSurface{}
	tr.Draw(s)
	found := false
	for _, c := range s.calls {
		if c.op == "fill" && c.c == ColorBaseDestroyed && c.x == 140 && c.y == 260 {
			found = true
		}
		if c.c == ColorBaseCore {
			t.Fatal("destroyed base should not draw its core")
		}
	}
	if !found {
		t.Fatal("destroyed base not drawn")
	}
}

func TestDraw_ProjectilesAndOpponents(t *testing.T) {
	tr := NewTestRound(Quiet())
	tr.Fire(tr.Player())
	s := &recordingSurface{}
	tr.Draw(s)
	if s.count("push") != 4 {
		t.Fatalf("vehicle transforms = %d, want 4", s.count("push"))
	}
	last := s.calls[len(s.calls)-1]
	if last.c != ColorProjectile || last.w != 6 || last.h != 6 {
		t.Fatalf("last call = %+v, want a 6x6 projectile", last)
	}
}
