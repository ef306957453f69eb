// game/registry.go
package game

import (
	"sync"
	"time"

	"github.com/wfunc/escaperoom/logger"
)

const (
	roomIDLength   = 6
	playerIDLength = 8
)

// Registry 管理进程内的全部房间。不同房间完全独立，互不阻塞。
type Registry struct {
	rooms       map[string]*Room
	mutex       sync.RWMutex
	src         *Source
	idleTimeout time.Duration
}

func NewRegistry(src *Source, idleTimeout time.Duration) *Registry {
	return &Registry{
		rooms:       make(map[string]*Room),
		src:         src,
		idleTimeout: idleTimeout,
	}
}

// CreateRoom 分配一个未占用的房间 ID，创建房间并插入房主。
// ID 空间在这个规模下不可能耗尽，碰撞时直接重试。
func (g *Registry) CreateRoom(hostName string) (*Room, *Player) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	var roomID string
	for {
		roomID = g.src.ID(roomIDLength)
		if _, exists := g.rooms[roomID]; !exists {
			break
		}
	}
	hostID := g.src.ID(playerIDLength)

	room := NewRoom(roomID, hostID, hostName, g.src)
	g.rooms[roomID] = room

	logger.Log.Infof("Room %s created by host %s", roomID, hostID)
	return room, room.players[hostID]
}

// JoinRoom 向既有房间加入一名新玩家
func (g *Registry) JoinRoom(roomID, playerName string) (*Room, *Player, error) {
	room, exists := g.GetRoom(roomID)
	if !exists {
		return nil, nil, ErrRoomNotFound
	}

	playerID := g.src.ID(playerIDLength)
	player, err := room.AddPlayer(playerID, playerName)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Infof("Player %s joined room %s", playerID, roomID)
	return room, player, nil
}

func (g *Registry) GetRoom(roomID string) (*Room, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	room, exists := g.rooms[roomID]
	return room, exists
}

func (g *Registry) RemoveRoom(roomID string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.rooms, roomID)
}

func (g *Registry) Count() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.rooms)
}

// PlayerCount 所有房间的玩家总数
func (g *Registry) PlayerCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	total := 0
	for _, room := range g.rooms {
		total += room.PlayerCount()
	}
	return total
}

// Sweep 移除空闲超时的房间，返回移除数量。定时器周期性调用；
// 原始实现从不回收房间，这里补上以避免无限增长。
func (g *Registry) Sweep() int {
	if g.idleTimeout <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-g.idleTimeout)

	g.mutex.Lock()
	defer g.mutex.Unlock()

	removed := 0
	for id, room := range g.rooms {
		if room.LastActive().Before(cutoff) {
			delete(g.rooms, id)
			removed++
			logger.Log.Infof("Evicted idle room %s", id)
		}
	}
	return removed
}
