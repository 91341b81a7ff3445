package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/palcut/palcut-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour
	cfg.NamesTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code:  "ABC123",
		BuyIn: 100,
		Players: []model.Player{
			{ID: "p1", Name: "Alice", TotalPaid: 100},
			{ID: "p2", Name: "Bob", TotalPaid: 100, Score: 40},
		},
		GameStarted: true,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.True(retrieved.GameStarted)
	s.Require().Len(retrieved.Players, 2)
	s.Equal(40, retrieved.Players[1].Score)
}

func (s *StorageSuite) TestSaveRoomKeepsUndoSnapshot() {
	room := &model.Room{
		Code:    "ABC123",
		Players: []model.Player{{ID: "p1", Name: "Alice", Score: 30}},
		PreviousRound: &model.RoundSnapshot{
			Players:      []model.Player{{ID: "p1", Name: "Alice"}},
			RoundsPlayed: 2,
			Input: model.RoundInput{
				WinnerID: "p1",
				Scores:   map[model.PlayerID]string{"p2": "30"},
			},
		},
	}

	_ = s.storage.SaveRoom(s.ctx, room)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved.PreviousRound)
	s.Equal(2, retrieved.PreviousRound.RoundsPlayed)
	s.Equal("30", retrieved.PreviousRound.Input.Scores["p2"])
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomExists(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteRoom() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	err := s.storage.DeleteRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomTTL() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	ttl := s.mini.TTL(roomKey("ABC123"))
	s.True(ttl > 0, "Room should have TTL")
}

func (s *StorageSuite) TestSaveRoomReArmsTTL() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	s.mini.FastForward(30 * time.Minute)
	_ = s.storage.SaveRoom(s.ctx, &model.Room{Code: "ABC123"})

	ttl := s.mini.TTL(roomKey("ABC123"))
	s.Equal(time.Hour, ttl)
}

// Game record tests

func (s *StorageSuite) TestAppendAndListRecords() {
	base := time.Now()
	first := &model.GameRecord{ID: "r1", RoomCode: "ABC123", Winner: "Alice", CompletedAt: base}
	second := &model.GameRecord{ID: "r2", RoomCode: "ABC123", Winner: "Bob", CompletedAt: base.Add(time.Minute)}

	s.Require().NoError(s.storage.AppendRecord(s.ctx, first))
	s.Require().NoError(s.storage.AppendRecord(s.ctx, second))

	records, err := s.storage.ListRecords(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	// Newest first
	s.Equal(model.RecordID("r2"), records[0].ID)
	s.Equal(model.RecordID("r1"), records[1].ID)
}

func (s *StorageSuite) TestListRecordsEmpty() {
	records, err := s.storage.ListRecords(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestGetRecord() {
	record := &model.GameRecord{
		ID:       "r1",
		RoomCode: "ABC123",
		Winner:   "Alice",
		Pot:      300,
		Players:  []model.PlayerResult{{Name: "Alice", Net: 200, IsWinner: true}},
	}
	_ = s.storage.AppendRecord(s.ctx, record)

	retrieved, err := s.storage.GetRecord(s.ctx, "ABC123", "r1")
	s.Require().NoError(err)
	s.Equal(300, retrieved.Pot)
	s.Require().Len(retrieved.Players, 1)
	s.True(retrieved.Players[0].IsWinner)
}

func (s *StorageSuite) TestGetRecordNotFound() {
	_, err := s.storage.GetRecord(s.ctx, "ABC123", "nonexistent")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *StorageSuite) TestDeleteRecord() {
	_ = s.storage.AppendRecord(s.ctx, &model.GameRecord{ID: "r1", RoomCode: "ABC123"})
	_ = s.storage.AppendRecord(s.ctx, &model.GameRecord{ID: "r2", RoomCode: "ABC123"})

	err := s.storage.DeleteRecord(s.ctx, "ABC123", "r1")
	s.Require().NoError(err)

	records, _ := s.storage.ListRecords(s.ctx, "ABC123")
	s.Len(records, 1)
}

func (s *StorageSuite) TestDeleteRecordNotFound() {
	err := s.storage.DeleteRecord(s.ctx, "ABC123", "nonexistent")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *StorageSuite) TestRecordNoTTLByDefault() {
	_ = s.storage.AppendRecord(s.ctx, &model.GameRecord{ID: "r1", RoomCode: "ABC123"})

	ttl := s.mini.TTL(recordKey("ABC123", "r1"))
	s.Equal(time.Duration(0), ttl, "History should not expire by default")
}

// Frequent-name tests

func (s *StorageSuite) TestSaveAndGetFrequentNames() {
	names := []string{"Alice", "Bob"}

	err := s.storage.SaveFrequentNames(s.ctx, "session-1", names)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetFrequentNames(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(names, retrieved)
}

func (s *StorageSuite) TestGetFrequentNamesMissingOwner() {
	retrieved, err := s.storage.GetFrequentNames(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(retrieved)
}

func (s *StorageSuite) TestFrequentNamesTTL() {
	_ = s.storage.SaveFrequentNames(s.ctx, "session-1", []string{"Alice"})

	ttl := s.mini.TTL(namesKey("session-1"))
	s.True(ttl > 0, "Name list should have TTL")
}
