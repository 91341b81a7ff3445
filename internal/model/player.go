package model

import "time"

// PlayerID uniquely identifies a roster entry within a room
type PlayerID string

// EliminationThreshold is the cumulative score at which a player is out
const EliminationThreshold = 100

// Player is one seat at the table
type Player struct {
	ID   PlayerID
	Name string

	// Score is the cumulative penalty points accumulated this game.
	// Resets only on a new game, or on rejoin (to the active maximum).
	Score int

	// IsOut is true once Score has reached EliminationThreshold,
	// or the player lost to a direct win
	IsOut bool

	// TotalPaid is the stake at risk: the initial buy-in plus one
	// buy-in per rejoin. Never decreases within a game.
	TotalPaid int

	// RejoinCount is how many times the player has bought back in
	RejoinCount int

	// CannotRejoin is set once an eliminated player sits out a full
	// round without buying back in; from then on they are frozen for
	// the rest of the game
	CannotRejoin bool

	JoinedAt time.Time
}

// Active reports whether the player is still in contention
func (p *Player) Active() bool {
	return !p.IsOut
}
