package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/escaperoom/broadcast"
	"github.com/wfunc/escaperoom/config"
	"github.com/wfunc/escaperoom/game"
	"github.com/wfunc/escaperoom/logger"
	"github.com/wfunc/escaperoom/monitor"
	"github.com/wfunc/escaperoom/network"
	"github.com/wfunc/escaperoom/persistence"
	escaperoom_rpc "github.com/wfunc/escaperoom/rpc"
	"github.com/wfunc/escaperoom/services"
	"github.com/wfunc/escaperoom/session"
	"github.com/wfunc/escaperoom/timer"
)

type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	registry       *game.Registry
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	router         *Router
	roomService    *services.RoomService
	monitor        *monitor.Monitor
	rpcServer      *escaperoom_rpc.Server
	timerManager   *timer.Manager
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	src := game.NewSource(time.Now().UnixNano())

	s := &GameServer{
		cfg:            cfg,
		registry:       game.NewRegistry(src, cfg.Room.IdleTimeout),
		sessionManager: session.NewManager(),
		monitor:        monitor.NewMonitor("escaperoom"),
		timerManager:   timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)
	s.router = NewRouter(s.registry, s.sessionManager, s.broadcaster)
	s.roomService = services.NewRoomService(s.registry, db)

	rpcServer, err := escaperoom_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(escaperoom_rpc.NewRoomService(s.registry))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.monitor.StartServer(s.cfg.Server.MetricsAddress)

	// 周期性回收空闲房间
	s.timerManager.AddTimer(s.cfg.Room.SweepInterval, s.cfg.Room.SweepInterval, func() {
		if n := s.registry.Sweep(); n > 0 {
			logger.Log.Infof("Swept %d idle rooms", n)
		}
		s.monitor.SetActiveRooms(s.registry.Count())
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.registerAPIRoutes(mux)

	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timerManager.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.ID)

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.ID)
		s.router.HandleDisconnect(sess)
		s.sessionManager.Remove(sess.ID)
		s.monitor.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := wsConn.ReadEnvelope()
			if err != nil {
				return
			}
			s.monitor.IncEventsReceived()
			start := time.Now()
			s.router.HandleEnvelope(sess, env)
			s.monitor.ObserveEventLatency(time.Since(start))
		}
	}
}
