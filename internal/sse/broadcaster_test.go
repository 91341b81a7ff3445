package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/palcut/palcut-go/internal/api/response"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/testutil"
)

// receive waits for one message on the client's send channel
func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return ""
	}
}

// eventData extracts the concatenated data lines of an SSE message
func eventData(t *testing.T, msg string) string {
	t.Helper()
	var data []string
	for _, line := range strings.Split(msg, "\n") {
		if strings.HasPrefix(line, "data: ") {
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
	return strings.Join(data, "\n")
}

func TestBroadcaster_BroadcastRoomUpdate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	room := &model.Room{
		Code:  "ABC123",
		BuyIn: 100,
		Players: []model.Player{
			{ID: "p1", Name: "Alice", TotalPaid: 100},
			{ID: "p2", Name: "Bob", TotalPaid: 100, Score: 40},
		},
		GameStarted:  true,
		RoundsPlayed: 2,
	}

	hub := manager.GetOrCreateHub(room.Code)
	defer hub.Close()
	client := NewClient(hub, "session1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastRoomUpdate(room)

	msg := receive(t, client)
	if !strings.HasPrefix(msg, "event: room-update\n") {
		t.Errorf("expected room-update event, got %q", msg)
	}

	var snapshot response.Room
	if err := json.Unmarshal([]byte(eventData(t, msg)), &snapshot); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if snapshot.Code != "ABC123" {
		t.Errorf("snapshot code = %q, want ABC123", snapshot.Code)
	}
	if snapshot.Pot != 200 {
		t.Errorf("snapshot pot = %d, want 200", snapshot.Pot)
	}
	if len(snapshot.Players) != 2 {
		t.Errorf("snapshot players = %d, want 2", len(snapshot.Players))
	}
}

func TestBroadcaster_BroadcastGameFinished(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	record := &model.GameRecord{
		ID:       "r1",
		RoomCode: "ABC123",
		Winner:   "Alice",
		Pot:      300,
		Payout:   "Full Winner (last remaining)",
	}

	hub := manager.GetOrCreateHub("ABC123")
	defer hub.Close()
	client := NewClient(hub, "session1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastGameFinished("ABC123", record)

	msg := receive(t, client)
	if !strings.HasPrefix(msg, "event: game-finished\n") {
		t.Errorf("expected game-finished event, got %q", msg)
	}

	var payload response.GameRecord
	if err := json.Unmarshal([]byte(eventData(t, msg)), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.Winner != "Alice" {
		t.Errorf("payload winner = %q, want Alice", payload.Winner)
	}
}

func TestBroadcaster_BroadcastHistoryUpdate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("ABC123")
	defer hub.Close()
	client := NewClient(hub, "session1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastHistoryUpdate("ABC123")

	msg := receive(t, client)
	if msg != "event: history-update\ndata: updated\n\n" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestBroadcaster_NoHubIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub exists for this room; must not panic
	broadcaster.BroadcastRoomUpdate(&model.Room{Code: "NOHUB1"})
	broadcaster.BroadcastHistoryUpdate("NOHUB1")
}
