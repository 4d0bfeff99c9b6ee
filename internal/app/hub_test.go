package app

import (
	"io"
	"log/slog"
	"testing"

	"avalon/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHubCreateAndGetSession(t *testing.T) {
	hub := NewGameHub(testLogger(), 0)
	defer hub.Close()

	session, err := hub.CreateGame(domain.GameSettings{OberonAllowed: true})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}

	code := session.GetRoomCode()
	if len(code) != DefaultRoomCodeLength {
		t.Errorf("room code %q length = %d, want %d", code, len(code), DefaultRoomCodeLength)
	}

	got, err := hub.GetSession(code)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got != session {
		t.Error("GetSession returned a different session")
	}

	if _, err := hub.GetSession("NOSUCH"); err != domain.ErrGameNotFound {
		t.Errorf("missing session error = %v, want ErrGameNotFound", err)
	}
}

func TestHubCounts(t *testing.T) {
	hub := NewGameHub(testLogger(), 4)
	defer hub.Close()

	s1, err := hub.CreateGame(domain.GameSettings{})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if _, err := hub.CreateGame(domain.GameSettings{}); err != nil {
		t.Fatalf("create game: %v", err)
	}

	if got := hub.GetSessionCount(); got != 2 {
		t.Errorf("session count = %d, want 2", got)
	}

	if err := s1.AddPlayer("p1", "Alice"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if got := hub.GetTotalPlayerCount(); got != 1 {
		t.Errorf("total player count = %d, want 1", got)
	}

	hub.DeleteSession(s1.GetRoomCode())
	if got := hub.GetSessionCount(); got != 1 {
		t.Errorf("session count after delete = %d, want 1", got)
	}
	if _, err := hub.GetSession(s1.GetRoomCode()); err != domain.ErrGameNotFound {
		t.Errorf("deleted session error = %v, want ErrGameNotFound", err)
	}
}
