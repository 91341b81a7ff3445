package model

import "time"

// RecordID uniquely identifies a completed-game record
type RecordID string

// PlayerResult is one player's final line in a completed game
type PlayerResult struct {
	Name        string
	Score       int
	Paid        int
	Net         int
	IsWinner    bool
	RejoinCount int
}

// GameRecord is the append-only log entry written when a game finishes.
// Records are never mutated; they may be deleted individually.
type GameRecord struct {
	ID       RecordID
	RoomCode RoomCode

	// Winner is the display string: one name, comma-joined names on a
	// split, or an em dash when everyone was eliminated
	Winner string

	Pot          int
	RoundsPlayed int

	// Payout is the human-readable payout description
	Payout string

	// ActiveWinners is how many players shared the pot
	ActiveWinners int

	// DirectWin marks a game ended by a round where every active
	// non-winner contributed zero
	DirectWin bool

	Players []PlayerResult

	CompletedAt time.Time
}
