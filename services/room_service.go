// services/room_service.go
package services

import (
	"time"

	"github.com/wfunc/escaperoom/game"
	"github.com/wfunc/escaperoom/logger"
	"github.com/wfunc/escaperoom/models"
	"github.com/wfunc/escaperoom/persistence"
)

// RoomService 编排房间的创建/加入：注册表操作 + 元数据落库
type RoomService struct {
	registry *game.Registry
	db       persistence.Database
}

func NewRoomService(registry *game.Registry, db persistence.Database) *RoomService {
	return &RoomService{registry: registry, db: db}
}

type RoomResponse struct {
	RoomID    string `json:"room_id"`
	PlayerID  string `json:"player_id"`
	ShareLink string `json:"share_link"`
}

// CreateRoom 建房并记录元数据。元数据只是审计用途，落库失败不阻塞建房。
func (s *RoomService) CreateRoom(hostName string) *RoomResponse {
	room, host := s.registry.CreateRoom(hostName)

	if s.db != nil {
		record := &models.RoomRecord{
			RoomID:    room.ID(),
			HostID:    host.ID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.db.SaveRoomRecord(record); err != nil {
			logger.Log.Warnf("Failed to save room record for %s: %v", room.ID(), err)
		}
	}

	return &RoomResponse{
		RoomID:    room.ID(),
		PlayerID:  host.ID,
		ShareLink: shareLink(room.ID()),
	}
}

func (s *RoomService) JoinRoom(roomID, playerName string) (*RoomResponse, error) {
	room, player, err := s.registry.JoinRoom(roomID, playerName)
	if err != nil {
		return nil, err
	}

	return &RoomResponse{
		RoomID:    room.ID(),
		PlayerID:  player.ID,
		ShareLink: shareLink(room.ID()),
	}, nil
}

func (s *RoomService) Snapshot(roomID string) (game.Snapshot, error) {
	room, exists := s.registry.GetRoom(roomID)
	if !exists {
		return game.Snapshot{}, game.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

func shareLink(roomID string) string {
	return "/room/" + roomID
}
