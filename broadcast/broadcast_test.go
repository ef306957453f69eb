package broadcast

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/wfunc/escaperoom/network"
	"github.com/wfunc/escaperoom/session"
)

type MockConnection struct {
	events  []string
	sendErr error
}

func (m *MockConnection) SendEvent(event string, payload interface{}) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockConnection) ReadEnvelope() (*network.Envelope, error) { return nil, nil }
func (m *MockConnection) Close() error                             { return nil }
func (m *MockConnection) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}
func (m *MockConnection) SetHeartbeat(interval time.Duration) {}

func addSession(manager *session.Manager, id, roomID string) *MockConnection {
	conn := &MockConnection{}
	sess := session.NewSession(id, conn)
	if roomID != "" {
		sess.Bind(roomID, "player_"+id)
	}
	manager.Add(sess)
	return conn
}

func TestBroadcastToRoom(t *testing.T) {
	manager := session.NewManager()
	b := NewRoomBroadcaster(manager)

	in1 := addSession(manager, "sess1", "room01")
	in2 := addSession(manager, "sess2", "room01")
	other := addSession(manager, "sess3", "room02")
	unbound := addSession(manager, "sess4", "")

	if err := b.BroadcastToRoom("room01", "game_started", nil); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	for _, conn := range []*MockConnection{in1, in2} {
		if len(conn.events) != 1 || conn.events[0] != "game_started" {
			t.Errorf("Room member should receive the event, got %v", conn.events)
		}
	}
	if len(other.events) != 0 || len(unbound.events) != 0 {
		t.Error("Sessions outside the room must not receive the event")
	}
}

func TestBroadcastToRoomExcept(t *testing.T) {
	manager := session.NewManager()
	b := NewRoomBroadcaster(manager)

	sender := addSession(manager, "sess1", "room01")
	observer := addSession(manager, "sess2", "room01")

	if err := b.BroadcastToRoomExcept("room01", "sess1", "player_moved", nil); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	if len(sender.events) != 0 {
		t.Errorf("Excluded session must not receive the event, got %v", sender.events)
	}
	if len(observer.events) != 1 {
		t.Errorf("Observer should receive the event, got %v", observer.events)
	}
}

func TestBroadcast_FailedSendSkipsConnection(t *testing.T) {
	manager := session.NewManager()
	b := NewRoomBroadcaster(manager)

	broken := addSession(manager, "sess1", "room01")
	broken.sendErr = errors.New("connection reset")
	healthy := addSession(manager, "sess2", "room01")

	if err := b.BroadcastToRoom("room01", "new_message", nil); err != nil {
		t.Fatalf("Broadcast should swallow per-connection errors, got %v", err)
	}
	if len(healthy.events) != 1 {
		t.Error("Healthy connections should still receive the event")
	}
}

func TestSendToSession(t *testing.T) {
	manager := session.NewManager()
	b := NewRoomBroadcaster(manager)

	conn := addSession(manager, "sess1", "")

	if err := b.SendToSession("sess1", "room_state", nil); err != nil {
		t.Fatalf("SendToSession failed: %v", err)
	}
	if len(conn.events) != 1 || conn.events[0] != "room_state" {
		t.Errorf("Expected room_state, got %v", conn.events)
	}

	if err := b.SendToSession("nosuch", "room_state", nil); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}
