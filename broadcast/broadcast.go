// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/escaperoom/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// 广播接口
type Broadcaster interface {
	BroadcastToRoom(roomID, event string, payload interface{}) error
	BroadcastToRoomExcept(roomID, excludeSessionID, event string, payload interface{}) error
	SendToSession(sessionID, event string, payload interface{}) error
}

// RoomBroadcaster 基于会话绑定做按房间扇出
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{sessionManager: sessionManager}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID, event string, payload interface{}) error {
	return b.BroadcastToRoomExcept(roomID, "", event, payload)
}

func (b *RoomBroadcaster) BroadcastToRoomExcept(roomID, excludeSessionID, event string, payload interface{}) error {
	sessions := b.sessionManager.GetByRoom(roomID)

	for _, s := range sessions {
		if s.ID == excludeSessionID {
			continue
		}
		if err := s.SendEvent(event, payload); err != nil {
			// 单个连接发送失败不影响其余观察者，断线由读循环清理
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) SendToSession(sessionID, event string, payload interface{}) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.SendEvent(event, payload)
}
