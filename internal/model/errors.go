package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidPasscode  = errors.New("invalid room passcode")
	ErrNotInRoom        = errors.New("session has not joined this room")
	ErrGameNotStarted   = errors.New("game has not started")
	ErrGameInProgress   = errors.New("game is in progress")
	ErrNotEnoughPlayers = errors.New("not enough players to start game")
	ErrBuyInOutOfRange  = errors.New("buy-in amount out of range")

	// Roster errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrBlankName      = errors.New("player name is blank")
	ErrDuplicateName  = errors.New("player name already in use")
	ErrRosterFull     = errors.New("roster is full")

	// Round errors
	ErrNoWinnerSelected  = errors.New("no winner selected")
	ErrInvalidWinner     = errors.New("winner must be an active player")
	ErrInvalidMultiplier = errors.New("invalid multiplier")
	ErrNoRoundsPlayed    = errors.New("no rounds have been played")
	ErrNothingToUndo     = errors.New("no round to undo")

	// Rejoin errors
	ErrPlayerNotOut = errors.New("player is not eliminated")
	ErrRejoinClosed = errors.New("player can no longer rejoin")

	// History errors
	ErrRecordNotFound = errors.New("game record not found")
)
