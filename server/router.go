// server/router.go
package server

import (
	"encoding/json"

	"github.com/wfunc/escaperoom/broadcast"
	"github.com/wfunc/escaperoom/game"
	"github.com/wfunc/escaperoom/logger"
	"github.com/wfunc/escaperoom/network"
	"github.com/wfunc/escaperoom/session"
)

// Router 把入站事件解码成强类型动作，做前置检查（房间存在、发起者
// 是房间玩家），再交给对应房间串行执行并按事件作用域扇出。
type Router struct {
	registry    *game.Registry
	sessions    *session.Manager
	broadcaster broadcast.Broadcaster
}

func NewRouter(registry *game.Registry, sessions *session.Manager, broadcaster broadcast.Broadcaster) *Router {
	return &Router{
		registry:    registry,
		sessions:    sessions,
		broadcaster: broadcaster,
	}
}

// HandleEnvelope 分发一条入站消息。除 join_room 外，引用不存在房间的
// 动作一律静默丢弃，与事件协议的宽松语义保持一致。
func (r *Router) HandleEnvelope(sess *session.Session, env *network.Envelope) {
	switch env.Event {
	case network.EventJoinRoom:
		r.handleJoinRoom(sess, env.Data)
	case network.EventStartGame:
		var a game.StartGameAction
		r.dispatch(sess, env.Data, &a)
	case network.EventPlayerMove:
		var a game.MoveAction
		r.dispatch(sess, env.Data, &a)
	case network.EventExamineObject:
		var a game.ExamineObjectAction
		r.dispatch(sess, env.Data, &a)
	case network.EventPickupItem:
		var a game.PickupItemAction
		r.dispatch(sess, env.Data, &a)
	case network.EventUseItem:
		var a game.UseItemAction
		r.dispatch(sess, env.Data, &a)
	case network.EventSolvePuzzle:
		var a game.SolvePuzzleAction
		r.dispatch(sess, env.Data, &a)
	case network.EventSendMessage:
		var a game.SendMessageAction
		r.dispatch(sess, env.Data, &a)
	case network.EventQuickChat:
		var a game.QuickChatAction
		r.dispatch(sess, env.Data, &a)
	default:
		logger.Log.Infof("Unknown event %q from session %s", env.Event, sess.ID)
	}
}

func (r *Router) handleJoinRoom(sess *session.Session, data []byte) {
	var a game.JoinAction
	if err := json.Unmarshal(data, &a); err != nil {
		return
	}

	room, exists := r.registry.GetRoom(a.RoomID)
	if !exists {
		r.sendError(sess, "Room not found")
		return
	}
	if !room.HasPlayer(a.PlayerID) {
		r.sendError(sess, "Player not in room")
		return
	}

	// 握手成功才建立 连接->(房间,玩家) 绑定
	sess.Bind(a.RoomID, a.PlayerID)
	a.SessionID = sess.ID

	room.Dispatch(&a, r.sink(room.ID(), sess))
}

// HandleDisconnect 通过绑定把断开的连接反解析回玩家并移除。
// 从未完成 join 握手的连接没有绑定，直接忽略。
func (r *Router) HandleDisconnect(sess *session.Session) {
	roomID, playerID := sess.Binding()
	if roomID == "" {
		return
	}

	if room, exists := r.registry.GetRoom(roomID); exists {
		room.Dispatch(&game.LeaveAction{PlayerID: playerID}, r.sink(roomID, sess))
	}
	sess.ClearBinding()
}

// dispatch 解码负载并路由到目标房间。action 必须是指向对应动作类型的指针。
func (r *Router) dispatch(sess *session.Session, data []byte, action game.Action) {
	if err := json.Unmarshal(data, action); err != nil {
		return
	}

	roomID := actionRoomID(action)
	room, exists := r.registry.GetRoom(roomID)
	if !exists {
		return
	}

	room.Dispatch(action, r.sink(roomID, sess))
}

// sink 把房间产生的事件按作用域映射到广播原语上
func (r *Router) sink(roomID string, sess *session.Session) func(game.Event) {
	return func(ev game.Event) {
		switch ev.Scope {
		case game.ScopeBroadcast:
			r.broadcaster.BroadcastToRoom(roomID, ev.Name, ev.Payload)
		case game.ScopeBroadcastExceptSender:
			r.broadcaster.BroadcastToRoomExcept(roomID, sess.ID, ev.Name, ev.Payload)
		case game.ScopeSender:
			r.broadcaster.SendToSession(sess.ID, ev.Name, ev.Payload)
		}
	}
}

func (r *Router) sendError(sess *session.Session, message string) {
	r.broadcaster.SendToSession(sess.ID, network.EventError, game.ErrorPayload{Message: message})
}

func actionRoomID(action game.Action) string {
	switch a := action.(type) {
	case *game.JoinAction:
		return a.RoomID
	case *game.StartGameAction:
		return a.RoomID
	case *game.MoveAction:
		return a.RoomID
	case *game.ExamineObjectAction:
		return a.RoomID
	case *game.PickupItemAction:
		return a.RoomID
	case *game.UseItemAction:
		return a.RoomID
	case *game.SolvePuzzleAction:
		return a.RoomID
	case *game.SendMessageAction:
		return a.RoomID
	case *game.QuickChatAction:
		return a.RoomID
	}
	return ""
}
