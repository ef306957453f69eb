// server/router_test.go
package server

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/wfunc/escaperoom/game"
	"github.com/wfunc/escaperoom/logger"
	"github.com/wfunc/escaperoom/network"
	"github.com/wfunc/escaperoom/session"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

type MockConnection struct{}

func (m *MockConnection) SendEvent(event string, payload interface{}) error { return nil }
func (m *MockConnection) ReadEnvelope() (*network.Envelope, error)          { return nil, nil }
func (m *MockConnection) Close() error                                      { return nil }
func (m *MockConnection) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}
func (m *MockConnection) SetHeartbeat(interval time.Duration) {}

// sentEvent 记录一次广播调用及其作用域
type sentEvent struct {
	kind    string // "room", "except", "session"
	target  string // roomID 或 sessionID
	exclude string
	event   string
	payload interface{}
}

type MockBroadcaster struct {
	sent []sentEvent
}

func (m *MockBroadcaster) BroadcastToRoom(roomID, event string, payload interface{}) error {
	m.sent = append(m.sent, sentEvent{kind: "room", target: roomID, event: event, payload: payload})
	return nil
}

func (m *MockBroadcaster) BroadcastToRoomExcept(roomID, excludeSessionID, event string, payload interface{}) error {
	m.sent = append(m.sent, sentEvent{kind: "except", target: roomID, exclude: excludeSessionID, event: event, payload: payload})
	return nil
}

func (m *MockBroadcaster) SendToSession(sessionID, event string, payload interface{}) error {
	m.sent = append(m.sent, sentEvent{kind: "session", target: sessionID, event: event, payload: payload})
	return nil
}

func (m *MockBroadcaster) find(event string) (sentEvent, bool) {
	for _, ev := range m.sent {
		if ev.event == event {
			return ev, true
		}
	}
	return sentEvent{}, false
}

type routerFixture struct {
	registry    *game.Registry
	broadcaster *MockBroadcaster
	router      *Router
}

func newRouterFixture() *routerFixture {
	registry := game.NewRegistry(game.NewSource(11), 0)
	broadcaster := &MockBroadcaster{}
	return &routerFixture{
		registry:    registry,
		broadcaster: broadcaster,
		router:      NewRouter(registry, session.NewManager(), broadcaster),
	}
}

func newTestSession(id string) *session.Session {
	return session.NewSession(id, &MockConnection{})
}

func envelope(event string, payload interface{}) *network.Envelope {
	data, _ := json.Marshal(payload)
	return &network.Envelope{Event: event, Data: data}
}

func TestRouter_JoinRoom_Handshake(t *testing.T) {
	f := newRouterFixture()
	room, host := f.registry.CreateRoom("Alice")
	sess := newTestSession("sess1")

	f.router.HandleEnvelope(sess, envelope(network.EventJoinRoom, map[string]string{
		"room_id":   room.ID(),
		"player_id": host.ID,
	}))

	state, ok := f.broadcaster.find(network.EventRoomState)
	if !ok {
		t.Fatal("Join should unicast room_state")
	}
	if state.kind != "session" || state.target != "sess1" {
		t.Errorf("room_state should go to the joining session, got %+v", state)
	}
	snapshot := state.payload.(game.Snapshot)
	if snapshot.RoomID != room.ID() {
		t.Errorf("Expected snapshot for %s, got %s", room.ID(), snapshot.RoomID)
	}

	joined, ok := f.broadcaster.find(network.EventPlayerJoined)
	if !ok {
		t.Fatal("Join should notify the rest of the room")
	}
	if joined.kind != "except" || joined.exclude != "sess1" {
		t.Errorf("player_joined should exclude the sender, got %+v", joined)
	}

	roomID, playerID := sess.Binding()
	if roomID != room.ID() || playerID != host.ID {
		t.Errorf("Handshake should bind the session, got %q/%q", roomID, playerID)
	}
}

func TestRouter_JoinRoom_RoomNotFound(t *testing.T) {
	f := newRouterFixture()
	sess := newTestSession("sess1")

	f.router.HandleEnvelope(sess, envelope(network.EventJoinRoom, map[string]string{
		"room_id":   "nosuch",
		"player_id": "whoever1",
	}))

	if len(f.broadcaster.sent) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(f.broadcaster.sent))
	}
	ev := f.broadcaster.sent[0]
	if ev.event != network.EventError || ev.kind != "session" {
		t.Errorf("Expected unicast error, got %+v", ev)
	}
	if ev.payload.(game.ErrorPayload).Message != "Room not found" {
		t.Errorf("Unexpected error message: %+v", ev.payload)
	}

	if roomID, _ := sess.Binding(); roomID != "" {
		t.Error("Failed join must not bind the session")
	}
}

func TestRouter_JoinRoom_PlayerNotInRoom(t *testing.T) {
	f := newRouterFixture()
	room, _ := f.registry.CreateRoom("Alice")
	sess := newTestSession("sess1")

	f.router.HandleEnvelope(sess, envelope(network.EventJoinRoom, map[string]string{
		"room_id":   room.ID(),
		"player_id": "stranger",
	}))

	ev, ok := f.broadcaster.find(network.EventError)
	if !ok || ev.kind != "session" {
		t.Fatal("Expected unicast error for unregistered player")
	}
	if ev.payload.(game.ErrorPayload).Message != "Player not in room" {
		t.Errorf("Unexpected error message: %+v", ev.payload)
	}
}

func TestRouter_RoomAction_UnknownRoom_Silent(t *testing.T) {
	f := newRouterFixture()
	sess := newTestSession("sess1")

	f.router.HandleEnvelope(sess, envelope(network.EventPlayerMove, map[string]interface{}{
		"room_id":   "nosuch",
		"player_id": "whoever1",
		"position":  map[string]float64{"x": 1, "y": 2},
	}))

	if len(f.broadcaster.sent) != 0 {
		t.Errorf("Actions on unknown rooms should be dropped, got %d events", len(f.broadcaster.sent))
	}
}

func TestRouter_StartGame_NonHostError(t *testing.T) {
	f := newRouterFixture()
	room, _ := f.registry.CreateRoom("Alice")
	_, guest, err := f.registry.JoinRoom(room.ID(), "Bob")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	sess := newTestSession("sess2")

	f.router.HandleEnvelope(sess, envelope(network.EventStartGame, map[string]string{
		"room_id":   room.ID(),
		"player_id": guest.ID,
	}))

	ev, ok := f.broadcaster.find(network.EventError)
	if !ok || ev.kind != "session" || ev.target != "sess2" {
		t.Fatalf("Non-host start should unicast an error, got %+v", f.broadcaster.sent)
	}
	if room.Status() != game.StatusLobby {
		t.Error("Room must stay in lobby")
	}
}

func TestRouter_SolvePuzzle_Broadcast(t *testing.T) {
	f := newRouterFixture()
	room, host := f.registry.CreateRoom("Alice")
	sess := newTestSession("sess1")

	// 通过 jigsaw 验证广播作用域，不需要读取密码
	f.router.HandleEnvelope(sess, envelope(network.EventSolvePuzzle, map[string]interface{}{
		"room_id":     room.ID(),
		"player_id":   host.ID,
		"puzzle_id":   "jigsaw",
		"piece_index": 0,
	}))

	ev, ok := f.broadcaster.find(network.EventJigsawProgress)
	if !ok {
		t.Fatal("Placing a piece should broadcast jigsaw_progress")
	}
	if ev.kind != "room" || ev.target != room.ID() {
		t.Errorf("jigsaw_progress should go to the whole room, got %+v", ev)
	}
}

func TestRouter_Disconnect_NoBinding_NoOp(t *testing.T) {
	f := newRouterFixture()
	sess := newTestSession("sess1")

	f.router.HandleDisconnect(sess)

	if len(f.broadcaster.sent) != 0 {
		t.Errorf("Disconnect before join should emit nothing, got %d events", len(f.broadcaster.sent))
	}
}

func TestRouter_Disconnect_RemovesPlayer(t *testing.T) {
	f := newRouterFixture()
	room, host := f.registry.CreateRoom("Alice")
	sess := newTestSession("sess1")

	f.router.HandleEnvelope(sess, envelope(network.EventJoinRoom, map[string]string{
		"room_id":   room.ID(),
		"player_id": host.ID,
	}))
	f.broadcaster.sent = nil

	f.router.HandleDisconnect(sess)

	ev, ok := f.broadcaster.find(network.EventPlayerLeft)
	if !ok || ev.kind != "room" {
		t.Fatal("Disconnect should broadcast player_left to the room")
	}
	if room.HasPlayer(host.ID) {
		t.Error("Disconnected player should be removed from the room")
	}
	if roomID, _ := sess.Binding(); roomID != "" {
		t.Error("Disconnect should clear the session binding")
	}

	// 再次断开是幂等的
	f.broadcaster.sent = nil
	f.router.HandleDisconnect(sess)
	if len(f.broadcaster.sent) != 0 {
		t.Error("Repeated disconnect should be a no-op")
	}
}

func TestRouter_UnknownEvent_Ignored(t *testing.T) {
	f := newRouterFixture()
	sess := newTestSession("sess1")

	f.router.HandleEnvelope(sess, envelope("teleport", map[string]string{"room_id": "x"}))

	if len(f.broadcaster.sent) != 0 {
		t.Errorf("Unknown events should not reach the broadcaster, got %d", len(f.broadcaster.sent))
	}
}
