package game

import "time"

// EndReason says why a round stopped running.
type EndReason int

const (
	EndNone EndReason = iota
	EndBaseDestroyed
	EndOutOfLives
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndBaseDestroyed:
		return "base_destroyed"
	case EndOutOfLives:
		return "out_of_lives"
	default:
		return "unknown"
	}
}

// Outcome is the final state of an ended round. Every round ends in defeat;
// the score and the wave reached are the measure of how well it went.
type Outcome struct {
	Reason     EndReason
	FinalScore int
	Wave       int
	Lives      int
	Tick       int
	Elapsed    time.Duration
}

// Ended reports whether the outcome describes a finished round.
func (o Outcome) Ended() bool { return o.Reason != EndNone }

// Description returns a one-line human summary.
func (o Outcome) Description() string {
	switch o.Reason {
	case EndBaseDestroyed:
		return "the base was destroyed"
	case EndOutOfLives:
		return "no lives left"
	default:
		return "round still running"
	}
}
