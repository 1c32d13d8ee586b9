package display

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

const (
	feedPanelWidth = 220
	feedMaxEntries = 60
	feedLineHeight = 14
	feedRecent     = 3 // latest entries drawn highlighted
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Actor   string
	Kind    game.EventKind
	Message string
}

// Line formats the entry for the panel.
func (e FeedEntry) Line() string {
	return fmt.Sprintf("%4d %-3s %s", e.Tick, e.Actor, e.Message)
}

// FeedLog is a ring buffer of round events rendered beside the arena.
type FeedLog struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeedLog creates a feed with a fixed capacity.
func NewFeedLog() *FeedLog {
	return &FeedLog{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// OnEvent implements game.Listener. Shots and position samples are too
// frequent to read and are skipped.
func (fl *FeedLog) OnEvent(e game.Event) {
	switch e.Kind {
	case game.EventShotFired, game.EventShotBlocked, game.EventPosition:
		return
	}
	fl.Add(e.Tick, e.Actor, e.Kind, e.Value)
}

// Add appends an entry to the feed.
func (fl *FeedLog) Add(tick int, actor string, kind game.EventKind, msg string) {
	fl.entries[fl.head] = FeedEntry{
		Tick:    tick,
		Actor:   actor,
		Kind:    kind,
		Message: msg,
	}
	fl.head = (fl.head + 1) % feedMaxEntries
	if fl.count < feedMaxEntries {
		fl.count++
	}
}

// Reset empties the feed for a new round.
func (fl *FeedLog) Reset() {
	fl.head, fl.count = 0, 0
}

// Recent returns entries in chronological order (oldest first).
func (fl *FeedLog) Recent() []FeedEntry {
	result := make([]FeedEntry, fl.count)
	for i := 0; i < fl.count; i++ {
		idx := (fl.head - fl.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = fl.entries[idx]
	}
	return result
}

// dotColor picks the side marker for an entry.
func dotColor(k game.EventKind) color.RGBA {
	switch k {
	case game.EventOpponentDestroyed, game.EventWaveCleared:
		return game.ColorPlayerBody
	case game.EventPlayerHit, game.EventBaseDestroyed, game.EventRoundEnded:
		return game.ColorOpponentBody
	case game.EventBrickDamaged, game.EventBrickDestroyed:
		return game.ColorBrick
	default:
		return game.ColorSteel
	}
}

// Draw renders the feed panel at panelX, newest entry at the bottom.
func (fl *FeedLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 12, G: 12, B: 14, A: 255}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 60, G: 60, B: 70, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 18, color.RGBA{R: 24, G: 24, B: 30, A: 255}, false)
	text.Draw(screen, "EVENTS", basicfont.Face7x13, panelX+8, 13, color.White)

	entries := fl.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 22
	for i, e := range entries {
		fg := color.RGBA{R: 140, G: 140, B: 140, A: 255}
		if i >= len(entries)-feedRecent {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 30, B: 38, A: 255}, false)
			fg = color.RGBA{R: 235, G: 235, B: 235, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, dotColor(e.Kind), false)
		text.Draw(screen, e.Line(), basicfont.Face7x13, panelX+12, y+11, fg)
		y += feedLineHeight
	}
}
