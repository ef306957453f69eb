// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/escaperoom/models"
)

// Database 数据库接口
type Database interface {
	SaveRoomRecord(record *models.RoomRecord) error
	LoadRoomRecord(roomID string) (*models.RoomRecord, error)
	ListRoomRecords(limit int) ([]*models.RoomRecord, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
