package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one short synthesised sound.
type Cue uint8

const (
	CueShot Cue = iota
	CueBrickChip
	CueBrickBreak
	CueOpponentDown
	CuePlayerHit
	CueBaseDown
	CueWaveCleared
	cueCount
)

var cueNames = [cueCount]string{
	CueShot:         "shot",
	CueBrickChip:    "brick_chip",
	CueBrickBreak:   "brick_break",
	CueOpponentDown: "opponent_down",
	CuePlayerHit:    "player_hit",
	CueBaseDown:     "base_down",
	CueWaveCleared:  "wave_cleared",
}

func (c Cue) String() string {
	if c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

type wave uint8

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

type note struct {
	wave wave
	freq float64
	dur  time.Duration
}

var cueNotes = [cueCount][]note{
	CueShot:         {{waveSquare, 660, 40 * time.Millisecond}},
	CueBrickChip:    {{waveNoise, 0, 30 * time.Millisecond}},
	CueBrickBreak:   {{waveNoise, 0, 90 * time.Millisecond}},
	CueOpponentDown: {{waveSine, 440, 60 * time.Millisecond}, {waveSine, 220, 120 * time.Millisecond}},
	CuePlayerHit:    {{waveSquare, 160, 200 * time.Millisecond}},
	CueBaseDown:     {{waveSquare, 110, 250 * time.Millisecond}, {waveSquare, 82, 400 * time.Millisecond}},
	CueWaveCleared: {
		{waveSine, 523, 80 * time.Millisecond},
		{waveSine, 659, 80 * time.Millisecond},
		{waveSine, 784, 160 * time.Millisecond},
	},
}

// CueFor maps a round event to the cue played for it.
func CueFor(e game.Event) (Cue, bool) {
	switch e.Kind {
	case game.EventShotFired:
		return CueShot, true
	case game.EventBrickDamaged:
		return CueBrickChip, true
	case game.EventBrickDestroyed:
		return CueBrickBreak, true
	case game.EventOpponentDestroyed:
		return CueOpponentDown, true
	case game.EventPlayerHit:
		return CuePlayerHit, true
	case game.EventBaseDestroyed:
		return CueBaseDown, true
	case game.EventWaveCleared:
		return CueWaveCleared, true
	}
	return 0, false
}

// Player plays cues for round events through the speaker. A Player whose
// speaker failed to open, or that was built disabled, drops every cue.
type Player struct {
	mixer   *beep.Mixer
	volume  float64
	enabled bool
	rng     *rand.Rand
}

// NewPlayer opens the speaker when enabled is true. The returned Player is
// always usable; the error reports why sound is off.
func NewPlayer(enabled bool, volume float64) (*Player, error) {
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- noise only
	}
	if !enabled {
		return p, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return p, err
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return p, nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool { return p.enabled }

// OnEvent implements game.Listener.
func (p *Player) OnEvent(e game.Event) {
	if c, ok := CueFor(e); ok {
		p.Play(c)
	}
}

// Play queues c on the mixer.
func (p *Player) Play(c Cue) {
	if !p.enabled || c >= cueCount {
		return
	}
	s := p.streamer(c)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.enabled = false
}

// streamer builds the finite stream for c at the player's volume.
func (p *Player) streamer(c Cue) beep.Streamer {
	notes := cueNotes[c]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, beep.Take(sampleRate.N(n.dur), p.source(n)))
	}
	return volume(beep.Seq(parts...), p.volume)
}

func (p *Player) source(n note) beep.Streamer {
	switch n.wave {
	case waveSine:
		if s, err := generators.SineTone(sampleRate, n.freq); err == nil {
			return s
		}
	case waveSquare:
		if s, err := generators.SquareTone(sampleRate, n.freq); err == nil {
			return s
		}
	}
	return p.noise()
}

func (p *Player) noise() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := p.rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}

// math.Log2(0) is -Inf, so a zero volume is made silent instead.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
