// Package history records completed games. Records are append-only:
// finishing a game writes one, and nothing ever edits it afterwards.
package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/palcut/palcut-go/internal/dependencies/clock"
	"github.com/palcut/palcut-go/internal/engine"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/storage"
)

// Controller manages the per-room game history
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewController creates a new history Controller
func NewController(storage storage.Storage, clock clock.Clock) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
	}
}

// RecordGame appends a completed game to the room's history
func (c *Controller) RecordGame(ctx context.Context, code model.RoomCode, roundsPlayed int, fin engine.FinishResult) (*model.GameRecord, error) {
	record := &model.GameRecord{
		ID:            model.RecordID(uuid.NewString()),
		RoomCode:      code,
		Winner:        fin.Winner,
		Pot:           fin.Pot,
		RoundsPlayed:  roundsPlayed,
		Payout:        fin.Payout,
		ActiveWinners: fin.ActiveWinners,
		DirectWin:     fin.DirectWin,
		Players:       fin.Results,
		CompletedAt:   c.clock.Now(),
	}

	if err := c.storage.AppendRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListGames returns the room's completed games, newest first
func (c *Controller) ListGames(ctx context.Context, code model.RoomCode) ([]*model.GameRecord, error) {
	return c.storage.ListRecords(ctx, code)
}

// GetGame returns one completed game
func (c *Controller) GetGame(ctx context.Context, code model.RoomCode, id model.RecordID) (*model.GameRecord, error) {
	return c.storage.GetRecord(ctx, code, id)
}

// DeleteGame removes one record from the room's history
func (c *Controller) DeleteGame(ctx context.Context, code model.RoomCode, id model.RecordID) error {
	return c.storage.DeleteRecord(ctx, code, id)
}

// PlayerTotal is a player's aggregate line across a room's history
type PlayerTotal struct {
	Name        string
	GamesPlayed int
	Wins        int
	Net         int
}

// PlayerTotals aggregates per-player results across all of a room's
// completed games, keyed case-insensitively by entered name.
// Totals come back in descending net order.
func (c *Controller) PlayerTotals(ctx context.Context, code model.RoomCode) ([]PlayerTotal, error) {
	records, err := c.storage.ListRecords(ctx, code)
	if err != nil {
		return nil, err
	}
	return Totals(records), nil
}

// Interface for dependency injection
type ControllerInterface interface {
	RecordGame(ctx context.Context, code model.RoomCode, roundsPlayed int, fin engine.FinishResult) (*model.GameRecord, error)
	ListGames(ctx context.Context, code model.RoomCode) ([]*model.GameRecord, error)
	GetGame(ctx context.Context, code model.RoomCode, id model.RecordID) (*model.GameRecord, error)
	DeleteGame(ctx context.Context, code model.RoomCode, id model.RecordID) error
	PlayerTotals(ctx context.Context, code model.RoomCode) ([]PlayerTotal, error)
}

var _ ControllerInterface = (*Controller)(nil)
