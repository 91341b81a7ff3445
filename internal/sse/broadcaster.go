package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/palcut/palcut-go/internal/api/response"
	"github.com/palcut/palcut-go/internal/model"
)

// Event names pushed to clients. room-update carries a full room
// snapshot; game-finished carries the settlement record;
// history-update is a bare signal to refetch.
const (
	EventRoomUpdate    = "room-update"
	EventGameFinished  = "game-finished"
	EventHistoryUpdate = "history-update"
)

// Broadcaster pushes state changes to the SSE clients of a room.
// Every payload is JSON, the same shapes the REST API serves.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastRoomUpdate pushes the room's current state to its clients
func (b *Broadcaster) BroadcastRoomUpdate(room *model.Room) {
	hub := b.hubManager.GetHub(room.Code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.RoomFromModel(room))
	if err != nil {
		b.logger.Error("sse failed to marshal room",
			slog.String("room", string(room.Code)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(EventRoomUpdate, string(data))
}

// BroadcastGameFinished pushes a completed game's settlement to the
// room's clients
func (b *Broadcaster) BroadcastGameFinished(code model.RoomCode, record *model.GameRecord) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.RecordFromModel(record))
	if err != nil {
		b.logger.Error("sse failed to marshal record",
			slog.String("room", string(code)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(EventGameFinished, string(data))
}

// BroadcastHistoryUpdate signals that the room's history changed.
// Clients refetch rather than receiving the full list.
func (b *Broadcaster) BroadcastHistoryUpdate(code model.RoomCode) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	hub.BroadcastEvent(EventHistoryUpdate, "updated")
}
