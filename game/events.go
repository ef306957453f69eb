package game

// Scope 决定一个出站事件发给谁
type Scope int

const (
	// ScopeBroadcast 发给房间内所有人
	ScopeBroadcast Scope = iota
	// ScopeBroadcastExceptSender 发给除动作发起者以外的所有人
	ScopeBroadcastExceptSender
	// ScopeSender 只发给动作发起者
	ScopeSender
)

// Event 是一次状态转移要求的单条出站消息
type Event struct {
	Scope   Scope
	Name    string
	Payload interface{}
}

func toRoom(name string, payload interface{}) Event {
	return Event{Scope: ScopeBroadcast, Name: name, Payload: payload}
}

func toOthers(name string, payload interface{}) Event {
	return Event{Scope: ScopeBroadcastExceptSender, Name: name, Payload: payload}
}

func toSender(name string, payload interface{}) Event {
	return Event{Scope: ScopeSender, Name: name, Payload: payload}
}

// --- 出站事件负载 ---

type ErrorPayload struct {
	Message string `json:"message"`
}

type PlayerJoinedPayload struct {
	Player  *Player            `json:"player"`
	Players map[string]*Player `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerID string             `json:"player_id"`
	Players  map[string]*Player `json:"players"`
}

type PlayerMovedPayload struct {
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
}

type GameStartedPayload struct {
	Status Status `json:"status"`
}

type ObjectExaminedPayload struct {
	ObjectID string `json:"object_id"`
	Examined bool   `json:"examined"`
	Clue     string `json:"clue,omitempty"`
}

type ItemPickedPayload struct {
	ItemID    string   `json:"item_id"`
	Inventory []string `json:"inventory"`
	PlayerID  string   `json:"player_id"`
}

type UVRevealedPayload struct {
	Message string `json:"message"`
}

type ItemsCombinedPayload struct {
	Result    string   `json:"result"`
	Inventory []string `json:"inventory"`
}

type PuzzleSolvedPayload struct {
	PuzzleID  string   `json:"puzzle_id"`
	ItemFound string   `json:"item_found"`
	Inventory []string `json:"inventory"`
}

type PuzzleFailedPayload struct {
	PuzzleID string `json:"puzzle_id"`
	Message  string `json:"message"`
}

type JigsawProgressPayload struct {
	Pieces []bool `json:"pieces"`
}

type GameWonPayload struct {
	Message string `json:"message"`
}

// Message 聊天记录条目，同时作为 new_message 的负载
type Message struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Message    string `json:"message"`
	IsQuick    bool   `json:"is_quick,omitempty"`
	Timestamp  string `json:"timestamp"`
}
