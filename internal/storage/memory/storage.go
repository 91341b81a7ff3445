package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Documents are cloned on the way in and out so callers never share
// state with the store.
type Storage struct {
	mu sync.RWMutex

	rooms   map[model.RoomCode]*model.Room
	records map[model.RoomCode][]*model.GameRecord
	names   map[string][]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:   make(map[model.RoomCode]*model.Room),
		records: make(map[model.RoomCode][]*model.GameRecord),
		names:   make(map[string][]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room.Clone()
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// Game record operations

func (s *Storage) AppendRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	copied.Players = append([]model.PlayerResult(nil), record.Players...)
	s.records[record.RoomCode] = append(s.records[record.RoomCode], &copied)
	return nil
}

func (s *Storage) GetRecord(ctx context.Context, code model.RoomCode, id model.RecordID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records[code] {
		if r.ID == id {
			copied := *r
			copied.Players = append([]model.PlayerResult(nil), r.Players...)
			return &copied, nil
		}
	}
	return nil, model.ErrRecordNotFound
}

func (s *Storage) ListRecords(ctx context.Context, code model.RoomCode) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.records[code]
	result := make([]*model.GameRecord, 0, len(stored))
	for _, r := range stored {
		copied := *r
		copied.Players = append([]model.PlayerResult(nil), r.Players...)
		result = append(result, &copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})
	return result, nil
}

func (s *Storage) DeleteRecord(ctx context.Context, code model.RoomCode, id model.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.records[code]
	for i, r := range stored {
		if r.ID == id {
			s.records[code] = append(stored[:i], stored[i+1:]...)
			return nil
		}
	}
	return model.ErrRecordNotFound
}

// Frequent-name operations

func (s *Storage) SaveFrequentNames(ctx context.Context, owner string, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[owner] = append([]string(nil), names...)
	return nil
}

func (s *Storage) GetFrequentNames(ctx context.Context, owner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.names[owner]...), nil
}
