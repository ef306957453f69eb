package session

import (
	"net"
	"testing"
	"time"

	"github.com/wfunc/escaperoom/network"
)

// MockConnection 记录发送的事件，供会话测试使用
type MockConnection struct {
	sentEvents []string
	closed     bool
}

func (m *MockConnection) SendEvent(event string, payload interface{}) error {
	m.sentEvents = append(m.sentEvents, event)
	return nil
}

func (m *MockConnection) ReadEnvelope() (*network.Envelope, error) {
	return nil, nil
}

func (m *MockConnection) Close() error {
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}

func (m *MockConnection) SetHeartbeat(interval time.Duration) {}

func TestSession_SendEvent(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("sess1", conn)

	before := sess.LastActive
	time.Sleep(time.Millisecond)

	if err := sess.SendEvent("room_state", map[string]string{"room_id": "abc123"}); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}
	if len(conn.sentEvents) != 1 || conn.sentEvents[0] != "room_state" {
		t.Errorf("Expected room_state on the connection, got %v", conn.sentEvents)
	}
	if !sess.LastActive.After(before) {
		t.Error("SendEvent should refresh LastActive")
	}
}

func TestSession_BindingLifecycle(t *testing.T) {
	sess := NewSession("sess1", &MockConnection{})

	roomID, playerID := sess.Binding()
	if roomID != "" || playerID != "" {
		t.Errorf("Fresh session should be unbound, got %q/%q", roomID, playerID)
	}

	sess.Bind("room01", "player01")
	roomID, playerID = sess.Binding()
	if roomID != "room01" || playerID != "player01" {
		t.Errorf("Expected room01/player01, got %q/%q", roomID, playerID)
	}

	sess.ClearBinding()
	roomID, playerID = sess.Binding()
	if roomID != "" || playerID != "" {
		t.Errorf("ClearBinding should reset both ids, got %q/%q", roomID, playerID)
	}
}

func TestSession_Close(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("sess1", conn)

	if err := sess.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !conn.closed {
		t.Error("Close should close the underlying connection")
	}
}

func TestManager_AddGetRemove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("sess1", &MockConnection{})

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}

	got, exists := manager.Get("sess1")
	if !exists || got.ID != "sess1" {
		t.Error("Added session should be retrievable")
	}

	manager.Remove("sess1")
	if _, exists := manager.Get("sess1"); exists {
		t.Error("Removed session should not resolve")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", manager.Count())
	}
}

func TestManager_GetByRoom(t *testing.T) {
	manager := NewManager()

	bound1 := NewSession("sess1", &MockConnection{})
	bound1.Bind("room01", "p1")
	bound2 := NewSession("sess2", &MockConnection{})
	bound2.Bind("room01", "p2")
	other := NewSession("sess3", &MockConnection{})
	other.Bind("room02", "p3")
	unbound := NewSession("sess4", &MockConnection{})

	for _, s := range []*Session{bound1, bound2, other, unbound} {
		manager.Add(s)
	}

	got := manager.GetByRoom("room01")
	if len(got) != 2 {
		t.Fatalf("Expected 2 sessions in room01, got %d", len(got))
	}
	for _, s := range got {
		if rid, _ := s.Binding(); rid != "room01" {
			t.Errorf("Session %s is not bound to room01", s.ID)
		}
	}

	if got := manager.GetByRoom("room03"); len(got) != 0 {
		t.Errorf("Unknown room should yield no sessions, got %d", len(got))
	}
}
