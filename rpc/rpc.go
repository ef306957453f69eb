package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/escaperoom/game"
	"github.com/wfunc/escaperoom/logger"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the caller.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// RoomService exposes registry inspection methods for ops tooling.
type RoomService struct {
	registry *game.Registry
}

func NewRoomService(registry *game.Registry) *RoomService {
	return &RoomService{registry: registry}
}

type SnapshotArgs struct {
	RoomID string
}

type SnapshotReply struct {
	Snapshot game.Snapshot
}

// GetRoomSnapshot follows the net/rpc signature: exported method, exported
// arguments, second argument is a pointer, return type is error.
func (rs *RoomService) GetRoomSnapshot(args *SnapshotArgs, reply *SnapshotReply) error {
	room, exists := rs.registry.GetRoom(args.RoomID)
	if !exists {
		return game.ErrRoomNotFound
	}
	reply.Snapshot = room.Snapshot()
	return nil
}

type StatsArgs struct{}

type StatsReply struct {
	Rooms   int
	Players int
}

func (rs *RoomService) Stats(args *StatsArgs, reply *StatsReply) error {
	reply.Rooms = rs.registry.Count()
	reply.Players = rs.registry.PlayerCount()
	return nil
}
