// Package room manages the live state of a table: the roster, the
// game lifecycle, and round submission. Score and payout math lives
// in the engine package; this controller loads the room document,
// applies the engine, and saves it back.
package room

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/palcut/palcut-go/internal/dependencies/clock"
	"github.com/palcut/palcut-go/internal/dependencies/random"
	"github.com/palcut/palcut-go/internal/engine"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/services/history"
	"github.com/palcut/palcut-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// PlayerIDLength is the length of generated player IDs
	PlayerIDLength = 8
)

// Controller manages room state and the game lifecycle
type Controller struct {
	storage storage.Storage
	history history.ControllerInterface
	clock   clock.Clock
	random  random.Random
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	history history.ControllerInterface,
	clock clock.Clock,
	random random.Random,
) *Controller {
	return &Controller{
		storage: storage,
		history: history,
		clock:   clock,
		random:  random,
	}
}

// CreateRoom creates a new room. A zero buy-in means the default;
// an empty passcode leaves the room open.
func (c *Controller) CreateRoom(ctx context.Context, buyIn int, passcode string) (*model.Room, error) {
	if buyIn == 0 {
		buyIn = model.DefaultBuyIn
	}
	if !model.ValidBuyIn(buyIn) {
		return nil, model.ErrBuyInOutOfRange
	}

	passcodeHash := ""
	if passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passcodeHash = string(hash)
	}

	now := c.clock.Now()

	// Generate unique room code
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		Code:         code,
		Players:      []model.Player{},
		BuyIn:        buyIn,
		PasscodeHash: passcodeHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// VerifyPasscode checks a join attempt's passcode against the room.
// Open rooms accept anything.
func (c *Controller) VerifyPasscode(ctx context.Context, code model.RoomCode, passcode string) error {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}

	if room.PasscodeHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(room.PasscodeHash), []byte(passcode)); err != nil {
		return model.ErrInvalidPasscode
	}
	return nil
}

// AddPlayer adds a named player to the roster, charging the buy-in
func (c *Controller) AddPlayer(ctx context.Context, code model.RoomCode, name string) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.GameStarted {
		return nil, model.ErrGameInProgress
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrBlankName
	}
	if room.HasName(name) {
		return nil, model.ErrDuplicateName
	}
	if len(room.Players) >= model.MaxPlayers {
		return nil, model.ErrRosterFull
	}

	now := c.clock.Now()
	room.Players = append(room.Players, model.Player{
		ID:        model.PlayerID("pl_" + c.random.String(PlayerIDLength, RoomCodeAlphabet)),
		Name:      name,
		TotalPaid: room.BuyIn,
		JoinedAt:  now,
	})
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// RemovePlayer removes a player from the roster before the game starts
func (c *Controller) RemovePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.GameStarted {
		return nil, model.ErrGameInProgress
	}

	found := false
	for i, p := range room.Players {
		if p.ID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, model.ErrPlayerNotFound
	}

	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SetBuyIn changes the room's buy-in before the game starts.
// Roster stakes are re-priced to the new amount; stakes committed in a
// started game are never rewritten.
func (c *Controller) SetBuyIn(ctx context.Context, code model.RoomCode, amount int) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.GameStarted {
		return nil, model.ErrGameInProgress
	}
	if !model.ValidBuyIn(amount) {
		return nil, model.ErrBuyInOutOfRange
	}

	room.BuyIn = amount
	for i := range room.Players {
		room.Players[i].TotalPaid = amount
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// StartGame begins play with the current roster
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.GameStarted {
		return nil, model.ErrGameInProgress
	}
	if len(room.Players) < model.MinPlayers {
		return nil, model.ErrNotEnoughPlayers
	}

	room.GameStarted = true
	room.RoundsPlayed = 0
	room.PreviousRound = nil
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// SubmitRound applies one round to the room. When the round is a
// direct win the game finishes immediately and the record is returned
// alongside the (reset) room.
func (c *Controller) SubmitRound(ctx context.Context, code model.RoomCode, input model.RoundInput) (*model.Room, *model.GameRecord, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	if !room.GameStarted {
		return nil, nil, model.ErrGameNotStarted
	}

	// Snapshot for the one-level undo before anything changes
	snapshot := model.RoundSnapshot{
		Players:      append([]model.Player(nil), room.Players...),
		RoundsPlayed: room.RoundsPlayed,
		Input:        input.Clone(),
	}

	result, err := engine.ApplyRound(room.Players, input)
	if err != nil {
		return nil, nil, err
	}

	room.Players = result.Players
	room.RoundsPlayed++
	room.PreviousRound = &snapshot
	room.UpdatedAt = c.clock.Now()

	if result.DirectWin {
		record, err := c.finish(ctx, room, engine.Finish(room.Players, true, input.WinnerID))
		if err != nil {
			return nil, nil, err
		}
		return room, record, nil
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, nil, err
	}
	return room, nil, nil
}

// UndoLastRound restores the roster to the state before the most
// recent round and returns that round's input for re-editing.
// Only one level of undo is kept.
func (c *Controller) UndoLastRound(ctx context.Context, code model.RoomCode) (*model.Room, model.RoundInput, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, model.RoundInput{}, err
	}

	if !room.GameStarted {
		return nil, model.RoundInput{}, model.ErrGameNotStarted
	}
	if room.PreviousRound == nil {
		return nil, model.RoundInput{}, model.ErrNothingToUndo
	}

	snapshot := *room.PreviousRound
	room.Players = snapshot.Players
	room.RoundsPlayed = snapshot.RoundsPlayed
	room.PreviousRound = nil
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, model.RoundInput{}, err
	}
	return room, snapshot.Input, nil
}

// RejoinPlayer buys an eliminated player back into a running game
func (c *Controller) RejoinPlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if !room.GameStarted {
		return nil, model.ErrGameNotStarted
	}

	players, err := engine.Rejoin(room.Players, playerID, room.BuyIn)
	if err != nil {
		return nil, err
	}

	room.Players = players
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// FinishGame settles the running game, records it in history, and
// resets the room for the next one
func (c *Controller) FinishGame(ctx context.Context, code model.RoomCode) (*model.Room, *model.GameRecord, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	if !room.GameStarted {
		return nil, nil, model.ErrGameNotStarted
	}
	if room.RoundsPlayed == 0 {
		return nil, nil, model.ErrNoRoundsPlayed
	}

	record, err := c.finish(ctx, room, engine.Finish(room.Players, false, ""))
	if err != nil {
		return nil, nil, err
	}
	return room, record, nil
}

// ResetGame abandons the running game without recording it.
// This is the emergency exit: nothing is written to history.
func (c *Controller) ResetGame(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	c.reset(room)

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes a room entirely
func (c *Controller) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	return c.storage.DeleteRoom(ctx, code)
}

// finish records the settlement and resets the room for the next game
func (c *Controller) finish(ctx context.Context, room *model.Room, fin engine.FinishResult) (*model.GameRecord, error) {
	record, err := c.history.RecordGame(ctx, room.Code, room.RoundsPlayed, fin)
	if err != nil {
		return nil, err
	}

	c.reset(room)

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Controller) reset(room *model.Room) {
	room.Players = engine.Reset(room.Players, room.BuyIn)
	room.GameStarted = false
	room.RoundsPlayed = 0
	room.PreviousRound = nil
	room.UpdatedAt = c.clock.Now()
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, buyIn int, passcode string) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	VerifyPasscode(ctx context.Context, code model.RoomCode, passcode string) error
	AddPlayer(ctx context.Context, code model.RoomCode, name string) (*model.Room, error)
	RemovePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Room, error)
	SetBuyIn(ctx context.Context, code model.RoomCode, amount int) (*model.Room, error)
	StartGame(ctx context.Context, code model.RoomCode) (*model.Room, error)
	SubmitRound(ctx context.Context, code model.RoomCode, input model.RoundInput) (*model.Room, *model.GameRecord, error)
	UndoLastRound(ctx context.Context, code model.RoomCode) (*model.Room, model.RoundInput, error)
	RejoinPlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Room, error)
	FinishGame(ctx context.Context, code model.RoomCode) (*model.Room, *model.GameRecord, error)
	ResetGame(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
}

var _ ControllerInterface = (*Controller)(nil)
