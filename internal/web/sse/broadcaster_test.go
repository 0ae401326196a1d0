package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/testutil"
)

func TestBroadcaster_BroadcastSessionUpdate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	session := &model.GameSession{
		ID:           "SESSION1",
		Decade:       "1990s",
		Phase:        model.PhaseShowSelected,
		SelectedShow: "Seinfeld",
	}

	hub := manager.GetOrCreateHub(session.ID)
	client := NewClient(hub, "client1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastSessionUpdate(session)

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.Contains(msgStr, "event: session-update") {
			t.Errorf("message does not contain event name: %s", msgStr)
		}
		if !strings.Contains(msgStr, `"selected_show":"Seinfeld"`) {
			t.Errorf("message does not contain session state: %s", msgStr)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}

	manager.RemoveHub(session.ID)
}

func TestBroadcaster_BroadcastRosterUpdate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	roster := &model.Roster{
		SessionID: "SESSION1",
		Players: []model.Player{
			{ID: "player-1", Name: "Alice", Score: 350},
		},
	}

	hub := manager.GetOrCreateHub(roster.SessionID)
	client := NewClient(hub, "client1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastRosterUpdate(roster)

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.Contains(msgStr, "event: roster-update") {
			t.Errorf("message does not contain event name: %s", msgStr)
		}
		if !strings.Contains(msgStr, `"score":350`) {
			t.Errorf("message does not contain score: %s", msgStr)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}

	manager.RemoveHub(roster.SessionID)
}

func TestBroadcaster_BroadcastSelectionsUpdate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("SESSION1")
	client := NewClient(hub, "client1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastSelectionsUpdate("SESSION1", "1990s", []string{"Seinfeld", "Friends"})

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.Contains(msgStr, "event: selections-update") {
			t.Errorf("message does not contain event name: %s", msgStr)
		}
		if !strings.Contains(msgStr, `"decade":"1990s"`) {
			t.Errorf("message does not contain decade: %s", msgStr)
		}
		if !strings.Contains(msgStr, "Seinfeld") {
			t.Errorf("message does not contain shows: %s", msgStr)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}

	manager.RemoveHub("SESSION1")
}

func TestBroadcaster_BroadcastThemeUpdate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("SESSION1")
	client := NewClient(hub, "client1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastThemeUpdate("SESSION1", model.ThemeSunsetArcade)

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.Contains(msgStr, "event: theme-update") {
			t.Errorf("message does not contain event name: %s", msgStr)
		}
		if !strings.Contains(msgStr, "sunset-arcade") {
			t.Errorf("message does not contain theme: %s", msgStr)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}

	manager.RemoveHub("SESSION1")
}

func TestBroadcaster_BroadcastRoundComplete(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	session := &model.GameSession{
		ID:          "SESSION1",
		Phase:       model.PhaseRoundComplete,
		RoundNumber: 2,
	}

	hub := manager.GetOrCreateHub(session.ID)
	client := NewClient(hub, "client1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastRoundComplete(session)

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.Contains(msgStr, "event: round-complete") {
			t.Errorf("message does not contain event name: %s", msgStr)
		}
		if !strings.Contains(msgStr, `"round_number":2`) {
			t.Errorf("message does not contain round number: %s", msgStr)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}

	manager.RemoveHub(session.ID)
}

func TestBroadcaster_NoHubDoesNotPanic(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	session := &model.GameSession{ID: "NOEXIST"}
	roster := &model.Roster{SessionID: "NOEXIST"}

	broadcaster.BroadcastSessionUpdate(session)
	broadcaster.BroadcastRosterUpdate(roster)
	broadcaster.BroadcastSelectionsUpdate("NOEXIST", "1990s", nil)
	broadcaster.BroadcastThemeUpdate("NOEXIST", model.DefaultTheme)
	broadcaster.BroadcastRoundComplete(session)

	// If we get here without panic, test passed
}
