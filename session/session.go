// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/escaperoom/network"
)

// Session 代表一条活跃的客户端连接。RoomID 和 PlayerID 在 join_room
// 握手成功后绑定，断线清理靠它们以 O(1) 反查玩家。
type Session struct {
	ID         string
	Conn       network.Connection
	RoomID     string
	PlayerID   string
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) SendEvent(event string, payload interface{}) error {
	s.LastActive = time.Now()
	return s.Conn.SendEvent(event, payload)
}

func (s *Session) GetID() string {
	return s.ID
}

// Bind 记录连接所属的 (房间, 玩家) 对
func (s *Session) Bind(roomID, playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.RoomID = roomID
	s.PlayerID = playerID
}

// Binding 返回当前绑定，未完成 join 握手时两者皆为空串
func (s *Session) Binding() (roomID, playerID string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.RoomID, s.PlayerID
}

func (s *Session) ClearBinding() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.RoomID = ""
	s.PlayerID = ""
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByRoom 返回绑定到指定房间的所有会话
func (m *Manager) GetByRoom(roomID string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if rid, _ := session.Binding(); rid == roomID {
			result = append(result, session)
		}
	}
	return result
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
