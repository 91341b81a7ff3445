package redis

import (
	"fmt"

	"github.com/palcut/palcut-go/internal/model"
)

// Key prefix for all application data
const keyPrefix = "palcut"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// recordKey returns the Redis key for a GameRecord
func recordKey(code model.RoomCode, id model.RecordID) string {
	return fmt.Sprintf("%s:record:%s:%s", keyPrefix, code, id)
}

// recordsForRoomIndexKey returns the Redis key for the SET of record
// keys belonging to a room
func recordsForRoomIndexKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:idx:records_for_room:%s", keyPrefix, code)
}

// namesKey returns the Redis key for a session's frequent-name list
func namesKey(owner string) string {
	return fmt.Sprintf("%s:names:%s", keyPrefix, owner)
}
