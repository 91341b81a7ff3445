package model

import (
	"strings"
	"time"
)

// RoomCode is a human-readable identifier for joining rooms
type RoomCode string

// Roster limits and buy-in policy
const (
	MaxPlayers = 6
	MinPlayers = 2

	MinBuyIn     = 50
	MaxBuyIn     = 999
	DefaultBuyIn = 100
)

// ValidBuyIn reports whether an amount is within the allowed range
func ValidBuyIn(amount int) bool {
	return amount >= MinBuyIn && amount <= MaxBuyIn
}

// Room is the shared live state of one table: the roster, the game
// flags, and the one-level undo snapshot for the last round.
// The whole document is saved and loaded as a unit; concurrent writers
// race under last-write-wins (an accepted limitation).
type Room struct {
	Code RoomCode

	// Players in join order
	Players []Player

	GameStarted  bool
	RoundsPlayed int

	// BuyIn is the amount charged on add and on each rejoin
	BuyIn int

	// PasscodeHash is the bcrypt hash of the optional room passcode;
	// empty means the room is open
	PasscodeHash string

	// PreviousRound holds the snapshot captured before the most recent
	// round submission; nil when there is nothing to undo
	PreviousRound *RoundSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the roster entry with the given id, or nil
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// HasName reports whether a roster entry already uses the name,
// compared case-insensitively
func (r *Room) HasName(name string) bool {
	for i := range r.Players {
		if strings.EqualFold(r.Players[i].Name, name) {
			return true
		}
	}
	return false
}

// ActivePlayers returns the players still in contention
func (r *Room) ActivePlayers() []Player {
	var active []Player
	for _, p := range r.Players {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// ActiveCount returns the number of players still in contention
func (r *Room) ActiveCount() int {
	count := 0
	for i := range r.Players {
		if r.Players[i].Active() {
			count++
		}
	}
	return count
}

// Pot returns the total money at stake: the sum of all stakes paid
func (r *Room) Pot() int {
	pot := 0
	for i := range r.Players {
		pot += r.Players[i].TotalPaid
	}
	return pot
}

// MaxActiveScore returns the highest score among active players,
// or 0 if nobody is active
func (r *Room) MaxActiveScore() int {
	max := 0
	for i := range r.Players {
		if r.Players[i].Active() && r.Players[i].Score > max {
			max = r.Players[i].Score
		}
	}
	return max
}

// Clone returns a deep copy of the room so stored documents are never
// shared with callers
func (r *Room) Clone() *Room {
	c := *r
	c.Players = append([]Player(nil), r.Players...)
	if r.PreviousRound != nil {
		snap := r.PreviousRound.Clone()
		c.PreviousRound = &snap
	}
	return &c
}
