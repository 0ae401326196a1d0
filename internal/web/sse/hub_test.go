package sse

import (
	"testing"
	"time"

	"github.com/showquiz/tvtrivia/internal/testutil"
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
			eventName: "session-update",
			data:      "line1\nline2",
			expected:  "event: session-update\ndata: line1\ndata: line2\n\n",
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
	hub := NewHub("SESSION1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "client1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("test-event", "test data")

	select {
	case msg := <-client.send:
		expected := "event: test-event\ndata: test data\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("SESSION1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "client1")
	hub.Register(client)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHub_RegisterAndUnregisterAfterClose(t *testing.T) {
	hub := NewHub("SESSION1", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "client1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Close()
	time.Sleep(10 * time.Millisecond)

	// Clients disconnect after the hub is gone; Unregister and Register
	// must return instead of blocking on a channel nobody reads.
	returned := make(chan struct{})
	go func() {
		hub.Unregister(client)
		hub.Register(NewClient(hub, "client2"))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Unregister/Register blocked after hub was closed")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("SESSION1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client1 := NewClient(hub, "client1")
	client2 := NewClient(hub, "client2")
	client3 := NewClient(hub, "client3")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.BroadcastEvent("update", "data")

	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			expected := "event: update\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("SESSION1")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	// Getting again should return the same hub
	hub2 := manager.GetOrCreateHub("SESSION1")
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same session")
	}

	// Different session should return different hub
	hub3 := manager.GetOrCreateHub("SESSION2")
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different session")
	}

	manager.RemoveHub("SESSION1")
	manager.RemoveHub("SESSION2")
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub := manager.GetHub("NOTEXIST")
	if hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("SESSION1")
	got := manager.GetHub("SESSION1")
	if got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}

	manager.RemoveHub("SESSION1")
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("SESSION1")
	manager.RemoveHub("SESSION1")

	if manager.GetHub("SESSION1") != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("NOTEXIST")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("EMPTY")

	active := manager.GetOrCreateHub("ACTIVE")
	client := NewClient(active, "client1")
	active.Register(client)
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("EMPTY") != nil {
		t.Error("Empty hub still exists after cleanup")
	}
	if manager.GetHub("ACTIVE") == nil {
		t.Error("Active hub was removed during cleanup")
	}

	manager.RemoveHub("ACTIVE")
}
