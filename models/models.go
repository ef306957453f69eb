// models/models.go
package models

import (
	"time"
)

// RoomRecord 房间元数据记录。只存创建信息，不持久化对局过程。
type RoomRecord struct {
	RoomID    string    `json:"room_id"`
	HostID    string    `json:"host_id"`
	CreatedAt time.Time `json:"created_at"`
}
