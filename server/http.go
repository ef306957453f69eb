// server/http.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wfunc/escaperoom/game"
)

// 房间创建/查询走请求响应式 API，游戏内动作走事件通道

type createRoomRequest struct {
	PlayerName string `json:"player_name"`
}

type joinRoomRequest struct {
	PlayerName string `json:"player_name"`
	RoomID     string `json:"room_id"`
}

func (s *GameServer) registerAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/rooms/create", s.handleCreateRoom)
	mux.HandleFunc("POST /api/rooms/join", s.handleJoinRoom)
	mux.HandleFunc("GET /api/rooms/{room_id}", s.handleGetRoom)
	mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *GameServer) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerName == "" {
		writeError(w, http.StatusBadRequest, "player_name is required")
		return
	}

	resp := s.roomService.CreateRoom(req.PlayerName)
	writeJSON(w, http.StatusOK, resp)
}

func (s *GameServer) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerName == "" {
		writeError(w, http.StatusBadRequest, "player_name is required")
		return
	}

	resp, err := s.roomService.JoinRoom(strings.ToLower(req.RoomID), req.PlayerName)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "Room not found")
		case errors.Is(err, game.ErrRoomFull):
			writeError(w, http.StatusBadRequest, "Room is full")
		case errors.Is(err, game.ErrGameInProgress):
			writeError(w, http.StatusBadRequest, "Game already in progress")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *GameServer) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.roomService.Snapshot(r.PathValue("room_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *GameServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
