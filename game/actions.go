package game

// 入站动作在传输层解码成各自的强类型负载，再交给房间串行处理。
// SessionID 由路由器填入，不来自客户端。

type Action interface {
	isAction()
}

type JoinAction struct {
	RoomID    string `json:"room_id"`
	PlayerID  string `json:"player_id"`
	SessionID string `json:"-"`
}

type StartGameAction struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

type MoveAction struct {
	RoomID   string   `json:"room_id"`
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
}

type ExamineObjectAction struct {
	RoomID   string `json:"room_id"`
	ObjectID string `json:"object_id"`
}

type PickupItemAction struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	ItemID   string `json:"item_id"`
}

type UseItemAction struct {
	RoomID   string `json:"room_id"`
	ItemID   string `json:"item_id"`
	TargetID string `json:"target_id"`
}

type SolvePuzzleAction struct {
	RoomID     string `json:"room_id"`
	PuzzleID   string `json:"puzzle_id"`
	Answer     string `json:"answer"`
	PieceIndex *int   `json:"piece_index"`
}

type SendMessageAction struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

type QuickChatAction struct {
	RoomID       string `json:"room_id"`
	PlayerID     string `json:"player_id"`
	QuickMessage string `json:"quick_message"`
}

// LeaveAction 由断线清理触发，不走客户端协议
type LeaveAction struct {
	PlayerID string
}

func (*JoinAction) isAction()          {}
func (*StartGameAction) isAction()     {}
func (*MoveAction) isAction()          {}
func (*ExamineObjectAction) isAction() {}
func (*PickupItemAction) isAction()    {}
func (*UseItemAction) isAction()       {}
func (*SolvePuzzleAction) isAction()   {}
func (*SendMessageAction) isAction()   {}
func (*QuickChatAction) isAction()     {}
func (*LeaveAction) isAction()         {}
