package display

import (
	"fmt"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

const (
	hudHeight     = 24
	arenaPixels   = game.ArenaCols * game.TileSize
	controlTop    = hudHeight + arenaPixels
	controlHeight = 120

	// ScreenWidth and ScreenHeight are the logical layout size.
	ScreenWidth  = arenaPixels + feedPanelWidth
	ScreenHeight = controlTop + controlHeight

	statusFrames = 120 // how long a status message stays up
)

// Options configures a Game.
type Options struct {
	Seed        int64
	TouchRepeat time.Duration
	Listeners   []game.Listener
	Logger      zerolog.Logger
}

// hudState is the game.HUD sink for the ebiten host.
type hudState struct {
	stats   game.Stats
	outcome game.Outcome
	over    bool
}

func (h *hudState) ShowStats(s game.Stats) { h.stats = s }

func (h *hudState) RoundOver(o game.Outcome) {
	h.outcome = o
	h.over = true
}

// Game is the ebiten host. It owns the round and drives it from Update, one
// Tick per frame.
type Game struct {
	round   *game.Round
	hud     *hudState
	feed    *FeedLog
	surface *Surface
	logger  zerolog.Logger

	pilot *game.Autopilot
	demo  bool

	repeat   repeater
	held     Control
	touchIDs []ebiten.TouchID

	status      string
	statusUntil int
	frame       int
}

// New builds the host with a round waiting on the start screen.
func New(opts Options) (*Game, error) {
	g := &Game{
		hud:     &hudState{},
		feed:    NewFeedLog(),
		surface: NewSurface(nil, 0, hudHeight),
		logger:  opts.Logger,
		repeat:  repeater{every: opts.TouchRepeat},
	}
	roundOpts := []game.Option{
		game.WithSeed(opts.Seed),
		game.WithHUD(g.hud),
		game.WithListener(g.feed),
	}
	for _, l := range opts.Listeners {
		roundOpts = append(roundOpts, game.WithListener(l))
	}
	r, err := game.NewRound(roundOpts...)
	if err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	g.round = r
	return g, nil
}

// Round exposes the hosted round.
func (g *Game) Round() *game.Round { return g.round }

func (g *Game) start() {
	g.feed.Reset()
	g.hud.over = false
	g.round.Start()
	if g.demo {
		g.pilot = game.NewAutopilot(g.round.Seed())
	}
	g.logger.Info().Int64("seed", g.round.Seed()).Bool("demo", g.demo).Msg("round started")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.frame + statusFrames
}

func (g *Game) Update() error {
	g.frame++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.demo = !g.demo
		if g.demo {
			g.pilot = game.NewAutopilot(int64(g.frame))
			g.setStatus("demo on")
		} else {
			g.setStatus("demo off")
		}
	}

	if !g.round.Running() {
		g.held = ControlNone
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) || g.justTapped() {
			g.start()
			return nil
		}
		if g.round.Phase() == game.PhaseEnded && inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copyReport()
		}
		return nil
	}

	if g.demo {
		g.pilot.Drive(g.round)
	} else {
		g.handleInput()
	}
	g.round.Tick()
	return nil
}

// handleInput samples held keys and the on-screen controls for this frame.
func (g *Game) handleInput() {
	for _, d := range heldDirections(ebiten.IsKeyPressed) {
		g.round.MovePlayer(d)
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		g.round.PlayerFire()
	}

	prev := g.held
	g.held = g.pointerControl()
	d, move, fire := pointerActions(&g.repeat, prev, g.held, game.TickDuration)
	if move {
		g.round.MovePlayer(d)
	}
	if fire {
		g.round.PlayerFire()
	}
}

// pointerActions turns the control held this frame into input. The d-pad
// repeats while held; the fire button shoots once per press.
func pointerActions(r *repeater, prev, c Control, dt time.Duration) (d game.Direction, move, fire bool) {
	if c == ControlFire {
		r.step(ControlNone, dt)
		return game.Up, false, prev != ControlFire
	}
	if !r.step(c, dt) {
		return game.Up, false, false
	}
	d, move = c.direction()
	return d, move, false
}

// heldDirections returns every held movement key in up, down, left, right
// order. Each one moves the player, so two keys make a diagonal.
func heldDirections(pressed func(ebiten.Key) bool) []game.Direction {
	keys := [...]struct {
		d          game.Direction
		arrow, alt ebiten.Key
	}{
		{game.Up, ebiten.KeyArrowUp, ebiten.KeyW},
		{game.Down, ebiten.KeyArrowDown, ebiten.KeyS},
		{game.Left, ebiten.KeyArrowLeft, ebiten.KeyA},
		{game.Right, ebiten.KeyArrowRight, ebiten.KeyD},
	}
	var held []game.Direction
	for _, k := range keys {
		if pressed(k.arrow) || pressed(k.alt) {
			held = append(held, k.d)
		}
	}
	return held
}

// pointerControl returns the button under the first touch, or under the
// mouse while the left button is down.
func (g *Game) pointerControl() Control {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		return controlAt(ebiten.TouchPosition(g.touchIDs[0]))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return controlAt(ebiten.CursorPosition())
	}
	return ControlNone
}

func (g *Game) justTapped() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

func (g *Game) copyReport() {
	if err := clipboard.WriteAll(game.FormatReport(g.round.Report())); err != nil {
		g.logger.Warn().Err(err).Msg("copy round report")
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("report copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 10, A: 255})

	g.surface.Reset(screen, 0, hudHeight)
	g.round.Draw(g.surface)

	g.drawHUD(screen)
	drawControls(screen, g.held)
	g.feed.Draw(screen, arenaPixels, ScreenHeight)

	switch g.round.Phase() {
	case game.PhaseNotStarted:
		drawPanel(screen, []string{
			"BRICK GUARD",
			"",
			"Enter or tap to start",
			"arrows/WASD move  Space fire",
			"F2 demo  Esc quit",
		})
	case game.PhaseEnded:
		o := g.hud.outcome
		drawPanel(screen, []string{
			"GAME OVER",
			o.Description(),
			fmt.Sprintf("final score %d  wave %d", o.FinalScore, o.Wave),
			"",
			"Enter or tap to restart",
			"C copy report",
		})
	}

	if g.status != "" && g.frame < g.statusUntil {
		text.Draw(screen, g.status, basicfont.Face7x13, 8, controlTop+controlHeight-8, color.RGBA{R: 240, G: 220, B: 120, A: 255})
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, arenaPixels, hudHeight, color.RGBA{R: 20, G: 20, B: 24, A: 255}, false)
	s := g.hud.stats
	line := fmt.Sprintf("SCORE %06d  WAVE %d  LIVES %d", s.Score, s.Wave, s.Lives)
	text.Draw(screen, line, basicfont.Face7x13, 8, 16, color.White)
	if g.demo {
		text.Draw(screen, "DEMO", basicfont.Face7x13, arenaPixels-36, 16, color.RGBA{R: 240, G: 220, B: 120, A: 255})
	}
}

// drawPanel centres a block of lines over the arena.
func drawPanel(screen *ebiten.Image, lines []string) {
	const lineH = 16
	w := 0
	for _, l := range lines {
		if n := len(l) * 7; n > w {
			w = n
		}
	}
	w += 24
	h := len(lines)*lineH + 16
	x := (arenaPixels - w) / 2
	y := hudHeight + (arenaPixels-h)/2
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 0, G: 0, B: 0, A: 220}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, false)
	for i, l := range lines {
		lx := x + (w-len(l)*7)/2
		text.Draw(screen, l, basicfont.Face7x13, lx, y+20+i*lineH, color.White)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}
