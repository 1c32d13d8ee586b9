package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

const (
	frameInterval = 16 * time.Millisecond
	// holdWindow is how long a key counts as held after its last press or
	// auto-repeat; terminals report presses only.
	holdWindow = 150 * time.Millisecond
)

// keyHolds approximates held keys from press events.
type keyHolds struct {
	dir     game.Direction
	dirAt   time.Time
	hasDir  bool
	fireAt  time.Time
	hasFire bool
}

func (k *keyHolds) press(d game.Direction, now time.Time) {
	k.dir, k.dirAt, k.hasDir = d, now, true
}

func (k *keyHolds) pressFire(now time.Time) {
	k.fireAt, k.hasFire = now, true
}

func (k *keyHolds) direction(now time.Time) (game.Direction, bool) {
	if !k.hasDir || now.Sub(k.dirAt) > holdWindow {
		return k.dir, false
	}
	return k.dir, true
}

func (k *keyHolds) firing(now time.Time) bool {
	return k.hasFire && now.Sub(k.fireAt) <= holdWindow
}

func (k *keyHolds) clear() { *k = keyHolds{} }

// keyDirection maps arrow keys and WASD to a facing.
func keyDirection(ev *tcell.EventKey) (game.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Up, true
	case tcell.KeyDown:
		return game.Down, true
	case tcell.KeyLeft:
		return game.Left, true
	case tcell.KeyRight:
		return game.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.Up, true
		case 's', 'S':
			return game.Down, true
		case 'a', 'A':
			return game.Left, true
		case 'd', 'D':
			return game.Right, true
		}
	}
	return game.Up, false
}

type hudState struct {
	stats   game.Stats
	outcome game.Outcome
}

func (h *hudState) ShowStats(s game.Stats)    { h.stats = s }
func (h *hudState) RoundOver(o game.Outcome) { h.outcome = o }

// Options configures a Host.
type Options struct {
	Seed      int64
	Listeners []game.Listener
	Logger    zerolog.Logger
}

// Host runs a round in a terminal. Only the Run loop touches the round.
type Host struct {
	screen tcell.Screen
	round  *game.Round
	hud    *hudState
	holds  keyHolds
	pilot  *game.Autopilot
	demo   bool
	logger zerolog.Logger
	now    func() time.Time
}

// New wraps an initialised screen.
func New(screen tcell.Screen, opts Options) (*Host, error) {
	h := &Host{
		screen: screen,
		hud:    &hudState{},
		logger: opts.Logger,
		now:    time.Now,
	}
	roundOpts := []game.Option{game.WithSeed(opts.Seed), game.WithHUD(h.hud)}
	for _, l := range opts.Listeners {
		roundOpts = append(roundOpts, game.WithListener(l))
	}
	r, err := game.NewRound(roundOpts...)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	h.round = r
	return h, nil
}

// Round exposes the hosted round.
func (h *Host) Round() *game.Round { return h.round }

// Run polls events and ticks the round until the player quits.
func (h *Host) Run() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	h.draw()
	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.step()
			h.draw()
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		now := h.now()
		if ev.Key() == tcell.KeyF2 {
			h.demo = !h.demo
			if h.demo {
				h.pilot = game.NewAutopilot(now.UnixNano())
			}
			return true
		}
		if !h.round.Running() {
			if ev.Key() == tcell.KeyEnter {
				h.start()
			}
			return true
		}
		if d, ok := keyDirection(ev); ok {
			h.holds.press(d, now)
		} else if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			h.holds.pressFire(now)
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) start() {
	h.holds.clear()
	h.round.Start()
	h.logger.Info().Int64("seed", h.round.Seed()).Msg("round started")
}

// step applies held input and advances the round one tick.
func (h *Host) step() {
	if !h.round.Running() {
		return
	}
	if h.demo && h.pilot != nil {
		h.pilot.Drive(h.round)
	} else {
		now := h.now()
		if d, ok := h.holds.direction(now); ok {
			h.round.MovePlayer(d)
		}
		if h.holds.firing(now) {
			h.round.PlayerFire()
		}
	}
	h.round.Tick()
}

func (h *Host) draw() {
	h.screen.Clear()
	h.putString(0, 0, hudLine(h.hud.stats, h.demo), styleHUD)

	for row, line := range Frame(h.round) {
		for col, g := range line {
			h.screen.SetContent(col, row+1, g.Rune, nil, g.Style)
		}
	}

	footer := game.ArenaRows + 2
	switch h.round.Phase() {
	case game.PhaseNotStarted:
		h.putString(0, footer, "BRICK GUARD  Enter start  arrows/WASD move  Space fire  F2 demo  Esc quit", styleHUD)
	case game.PhaseEnded:
		o := h.hud.outcome
		h.putString(0, footer, fmt.Sprintf("GAME OVER: %s, final score %d", o.Description(), o.FinalScore), styleHUD)
		h.putString(0, footer+1, "Enter restart  Esc quit", styleHUD)
	}
	h.screen.Show()
}

func (h *Host) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}
