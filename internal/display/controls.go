package display

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

// Control is an on-screen button.
type Control uint8

const (
	ControlNone Control = iota
	ControlUp
	ControlDown
	ControlLeft
	ControlRight
	ControlFire
)

const (
	padButton = 34 // d-pad button edge
	padGap    = 2
)

// controlRects returns the on-screen button layout inside the control strip.
func controlRects() map[Control]image.Rectangle {
	cx := 80
	cy := controlTop + controlHeight/2
	half := padButton / 2
	step := padButton + padGap
	sq := func(x, y int) image.Rectangle {
		return image.Rect(x-half, y-half, x+half, y+half)
	}
	return map[Control]image.Rectangle{
		ControlUp:    sq(cx, cy-step),
		ControlDown:  sq(cx, cy+step),
		ControlLeft:  sq(cx-step, cy),
		ControlRight: sq(cx+step, cy),
		ControlFire:  image.Rect(arenaPixels-110, cy-28, arenaPixels-20, cy+28),
	}
}

var controlLayout = controlRects()

// controlAt returns the button under screen point (x, y).
func controlAt(x, y int) Control {
	pt := image.Pt(x, y)
	for c, r := range controlLayout {
		if pt.In(r) {
			return c
		}
	}
	return ControlNone
}

// direction maps a d-pad button to a facing.
func (c Control) direction() (game.Direction, bool) {
	switch c {
	case ControlUp:
		return game.Up, true
	case ControlDown:
		return game.Down, true
	case ControlLeft:
		return game.Left, true
	case ControlRight:
		return game.Right, true
	}
	return game.Up, false
}

// repeater turns a held button into discrete presses: one on the first
// frame, then one every interval while it stays held.
type repeater struct {
	every time.Duration
	held  Control
	acc   time.Duration
}

// step advances the repeater by dt with c held (ControlNone when released)
// and reports whether the held control fires this frame.
func (r *repeater) step(c Control, dt time.Duration) bool {
	if c != r.held {
		r.held, r.acc = c, 0
		return c != ControlNone
	}
	if c == ControlNone {
		return false
	}
	r.acc += dt
	if r.every > 0 && r.acc >= r.every {
		r.acc -= r.every
		return true
	}
	return false
}

// drawControls renders the d-pad and fire button, highlighting the held one.
func drawControls(screen *ebiten.Image, held Control) {
	vector.FillRect(screen, 0, controlTop, arenaPixels, controlHeight, color.RGBA{R: 18, G: 18, B: 20, A: 255}, false)
	labels := map[Control]string{
		ControlUp: "^", ControlDown: "v", ControlLeft: "<", ControlRight: ">", ControlFire: "FIRE",
	}
	for c, r := range controlLayout {
		fill := color.RGBA{R: 50, G: 50, B: 58, A: 255}
		if c == held {
			fill = color.RGBA{R: 90, G: 90, B: 104, A: 255}
		}
		x, y := float32(r.Min.X), float32(r.Min.Y)
		w, h := float32(r.Dx()), float32(r.Dy())
		vector.FillRect(screen, x, y, w, h, fill, false)
		vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{R: 120, G: 120, B: 130, A: 255}, false)
		label := labels[c]
		tx := r.Min.X + (r.Dx()-7*len(label))/2
		ty := r.Min.Y + r.Dy()/2 + 4
		text.Draw(screen, label, basicfont.Face7x13, tx, ty, color.White)
	}
}
