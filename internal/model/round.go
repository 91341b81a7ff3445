package model

import "math"

// Multiplier scales a round's raw points before accumulation
type Multiplier string

const (
	MultiplierNormal  Multiplier = "normal"
	MultiplierDedi    Multiplier = "dedi"
	MultiplierDouble  Multiplier = "double"
	MultiplierChaubar Multiplier = "chaubar"
)

// Valid reports whether m is a known multiplier
func (m Multiplier) Valid() bool {
	switch m {
	case MultiplierNormal, MultiplierDedi, MultiplierDouble, MultiplierChaubar:
		return true
	}
	return false
}

// Apply scales raw points by the multiplier.
// Dedi is x1.5 rounded to the nearest integer, not truncated.
func (m Multiplier) Apply(points int) int {
	switch m {
	case MultiplierDedi:
		return int(math.Round(float64(points) * 1.5))
	case MultiplierDouble:
		return points * 2
	case MultiplierChaubar:
		return points * 4
	default:
		return points
	}
}

// RoundInput is one submitted round: the selected winner, the raw
// per-player score strings exactly as entered, and the multiplier.
// Scores only carry meaning for active non-winners.
type RoundInput struct {
	WinnerID   PlayerID
	Scores     map[PlayerID]string
	Multiplier Multiplier
}

// Clone returns a deep copy of the input
func (in RoundInput) Clone() RoundInput {
	c := in
	if in.Scores != nil {
		c.Scores = make(map[PlayerID]string, len(in.Scores))
		for id, s := range in.Scores {
			c.Scores[id] = s
		}
	}
	return c
}

// RoundSnapshot captures everything needed to re-edit the most recent
// round: the roster and round count as they were before it was applied,
// plus the input that was submitted
type RoundSnapshot struct {
	Players      []Player
	RoundsPlayed int
	Input        RoundInput
}

// Clone returns a deep copy of the snapshot
func (s RoundSnapshot) Clone() RoundSnapshot {
	c := s
	c.Players = append([]Player(nil), s.Players...)
	c.Input = s.Input.Clone()
	return c
}
