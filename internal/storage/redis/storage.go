package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	// Every save re-arms the TTL, so active rooms stay alive
	return s.client.Set(ctx, roomKey(room.Code), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, roomKey(code)).Err()
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Game record operations

func (s *Storage) AppendRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	rKey := recordKey(record.RoomCode, record.ID)
	indexKey := recordsForRoomIndexKey(record.RoomCode)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, rKey, data, s.cfg.HistoryTTL)
	pipe.SAdd(ctx, indexKey, rKey)
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.HistoryTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRecord(ctx context.Context, code model.RoomCode, id model.RecordID) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, recordKey(code, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) ListRecords(ctx context.Context, code model.RoomCode) ([]*model.GameRecord, error) {
	indexKey := recordsForRoomIndexKey(code)

	recordKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(recordKeys) == 0 {
		return []*model.GameRecord{}, nil
	}

	values, err := s.client.MGet(ctx, recordKeys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.GameRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record may have expired
		}
		var record model.GameRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	// Set members come back unordered
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})

	return records, nil
}

func (s *Storage) DeleteRecord(ctx context.Context, code model.RoomCode, id model.RecordID) error {
	rKey := recordKey(code, id)

	exists, err := s.client.Exists(ctx, rKey).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrRecordNotFound
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, rKey)
	pipe.SRem(ctx, recordsForRoomIndexKey(code), rKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Frequent-name operations

func (s *Storage) SaveFrequentNames(ctx context.Context, owner string, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, namesKey(owner), data, s.cfg.NamesTTL).Err()
}

func (s *Storage) GetFrequentNames(ctx context.Context, owner string) ([]string, error) {
	data, err := s.client.Get(ctx, namesKey(owner)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}
