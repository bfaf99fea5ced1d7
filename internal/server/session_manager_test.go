package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionIDManager_ResolveSessionID(t *testing.T) {
	m := NewSessionIDManager()
	defer m.Stop()

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer token-a")

	id1, err := m.ResolveSessionID(req)
	if err != nil {
		t.Fatalf("ResolveSessionID() error = %v", err)
	}
	if id1 == "" {
		t.Fatal("expected non-empty session ID")
	}

	// Same token resolves to the same session.
	id2, err := m.ResolveSessionID(req)
	if err != nil {
		t.Fatalf("ResolveSessionID() error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected stable session ID, got %q and %q", id1, id2)
	}

	// A different token gets a different session.
	req2 := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req2.Header.Set("Authorization", "Bearer token-b")
	id3, err := m.ResolveSessionID(req2)
	if err != nil {
		t.Fatalf("ResolveSessionID() error = %v", err)
	}
	if id3 == id1 {
		t.Error("expected different session IDs for different tokens")
	}
}

func TestSessionIDManager_NoAuthorizationHeader(t *testing.T) {
	m := NewSessionIDManager()
	defer m.Stop()

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	if _, err := m.ResolveSessionID(req); err != ErrNoAuthorizationHeader {
		t.Errorf("expected ErrNoAuthorizationHeader, got %v", err)
	}
}

func TestSessionIDManager_AccountMapping(t *testing.T) {
	m := NewSessionIDManager()
	defer m.Stop()

	if account := m.GetAccountForSession("unknown"); account != "default" {
		t.Errorf("expected 'default' for unknown session, got %q", account)
	}

	m.SetAccountForSession("session-1", "work")
	if account := m.GetAccountForSession("session-1"); account != "work" {
		t.Errorf("expected 'work', got %q", account)
	}

	m.RemoveSession("session-1")
	if account := m.GetAccountForSession("session-1"); account != "default" {
		t.Errorf("expected 'default' after removal, got %q", account)
	}
}

func TestSessionIDManager_ListSessions(t *testing.T) {
	m := NewSessionIDManagerWithTimeout(time.Hour)
	defer m.Stop()

	m.SetAccountForSession("a", "work")
	m.SetAccountForSession("b", "personal")

	sessions := m.ListSessions()
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}
