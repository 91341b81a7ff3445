package sse

import (
	"testing"
	"time"

	"github.com/palcut/palcut-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "test-event",
			data:      "hello world",
			expected:  "event: test-event\ndata: hello world\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "room-update",
			data:      "{\n  \"code\": \"ABC123\"\n}",
			expected:  "event: room-update\ndata: {\ndata:   \"code\": \"ABC123\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "hello",
			expected: []string{"hello"},
		},
		{
			name:     "two lines",
			input:    "line1\nline2",
			expected: []string{"line1", "line2"},
		},
		{
			name:     "trailing newline",
			input:    "line1\n",
			expected: []string{"line1"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "crlf line endings",
			input:    "line1\r\nline2\r\n",
			expected: []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("TESTCODE", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "session1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("room-update", "payload")

	select {
	case msg := <-client.send:
		expected := "event: room-update\ndata: payload\n\n"
		if string(msg) != expected {
			t.Errorf("received %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("TESTCODE", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "session1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// Send channel is closed on unregister
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("TESTCODE", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "session1"),
		NewClient(hub, "session2"),
		NewClient(hub, "session3"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastEvent("room-update", "hello")

	for i, c := range clients {
		select {
		case <-c.send:
		case <-time.After(time.Second):
			t.Fatalf("client %d did not receive broadcast", i)
		}
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	first := manager.GetOrCreateHub("ABC123")
	second := manager.GetOrCreateHub("ABC123")
	if first != second {
		t.Error("expected the same hub for the same room code")
	}

	other := manager.GetOrCreateHub("XYZ789")
	if other == first {
		t.Error("expected a different hub for a different room code")
	}
}

func TestHubManager_GetHubMissing(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	if hub := manager.GetHub("NONE"); hub != nil {
		t.Error("expected nil hub for unknown room")
	}
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	manager.GetOrCreateHub("ABC123")

	manager.RemoveHub("ABC123")

	if hub := manager.GetHub("ABC123"); hub != nil {
		t.Error("expected hub to be removed")
	}
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	empty := manager.GetOrCreateHub("EMPTY1")
	busy := manager.GetOrCreateHub("BUSY01")

	client := NewClient(busy, "session1")
	busy.Register(client)
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("EMPTY1") != nil {
		t.Error("expected empty hub to be cleaned up")
	}
	if manager.GetHub("BUSY01") == nil {
		t.Error("expected busy hub to survive cleanup")
	}
	_ = empty
}
