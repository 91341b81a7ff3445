package storage

import (
	"context"

	"github.com/palcut/palcut-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Game record operations. Records are append-only; ListRecords
	// returns them newest first.
	AppendRecord(ctx context.Context, record *model.GameRecord) error
	GetRecord(ctx context.Context, code model.RoomCode, id model.RecordID) (*model.GameRecord, error)
	ListRecords(ctx context.Context, code model.RoomCode) ([]*model.GameRecord, error)
	DeleteRecord(ctx context.Context, code model.RoomCode, id model.RecordID) error

	// Frequent-name operations, keyed by the owning session.
	// A missing owner reads as an empty list.
	SaveFrequentNames(ctx context.Context, owner string, names []string) error
	GetFrequentNames(ctx context.Context, owner string) ([]string, error)
}
