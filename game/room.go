// game/room.go
package game

import (
	"sync"
	"time"

	"github.com/wfunc/escaperoom/network"
)

// Status 表示房间的业务状态，只会单向推进 lobby -> playing -> won
type Status string

const (
	StatusLobby   Status = "lobby"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
)

// MaxPlayers 单房间人数上限
const MaxPlayers = 4

// Room 是一局密室逃脱的全部共享状态：玩家、公共背包、谜题进度、
// 物件状态和聊天记录。所有状态转移都经由 Dispatch 串行执行。
type Room struct {
	id         string
	hostID     string
	status     Status
	players    map[string]*Player
	joinOrder  []string
	inventory  []string
	puzzles    PuzzleSet
	objects    ObjectsState
	messages   []Message
	createdAt  time.Time
	lastActive time.Time
	mu         sync.RWMutex
}

// NewRoom 创建房间并插入房主。谜题密码和线索在这里生成一次，之后不可变。
func NewRoom(id, hostID, hostName string, src *Source) *Room {
	now := time.Now()
	r := &Room{
		id:         id,
		hostID:     hostID,
		status:     StatusLobby,
		players:    make(map[string]*Player),
		inventory:  make([]string, 0),
		createdAt:  now,
		lastActive: now,
	}
	r.puzzles = newPuzzleSet(src)
	r.objects = newObjectsState(&r.puzzles)

	host := &Player{
		ID:       hostID,
		Name:     hostName,
		Position: joinPosition(0),
		Color:    hostColor,
		IsHost:   true,
	}
	r.players[hostID] = host
	r.joinOrder = append(r.joinOrder, hostID)

	return r
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) HostID() string {
	return r.hostID
}

func (r *Room) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.players[playerID]
	return ok
}

func (r *Room) LastActive() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastActive
}

// AddPlayer 加入一名新玩家。只有 lobby 状态且未满员的房间可以加入。
func (r *Room) AddPlayer(playerID, name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= MaxPlayers {
		return nil, ErrRoomFull
	}
	if r.status != StatusLobby {
		return nil, ErrGameInProgress
	}

	joinIndex := len(r.players)
	p := &Player{
		ID:       playerID,
		Name:     name,
		Position: joinPosition(joinIndex),
		Color:    joinPalette[joinIndex%len(joinPalette)],
	}
	r.players[playerID] = p
	r.joinOrder = append(r.joinOrder, playerID)
	r.lastActive = time.Now()

	return p, nil
}

// Dispatch 在持有房间锁的前提下执行一次状态转移，并把产生的事件逐条交给
// sink。锁覆盖转移和扇出两个阶段：下一个动作开始前，本次广播必须已经完成，
// 这保证了单房间内的事件顺序。
func (r *Room) Dispatch(action Action, sink func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastActive = time.Now()

	var events []Event
	switch a := action.(type) {
	case *JoinAction:
		events = r.handleJoin(a)
	case *StartGameAction:
		events = r.handleStartGame(a)
	case *MoveAction:
		events = r.handleMove(a)
	case *ExamineObjectAction:
		events = r.handleExamine(a)
	case *PickupItemAction:
		events = r.handlePickup(a)
	case *UseItemAction:
		events = r.handleUseItem(a)
	case *SolvePuzzleAction:
		events = r.handleSolvePuzzle(a)
	case *SendMessageAction:
		events = r.appendMessage(a.PlayerID, a.Message, false)
	case *QuickChatAction:
		text, ok := quickPhrases[a.QuickMessage]
		if !ok {
			text = a.QuickMessage
		}
		events = r.appendMessage(a.PlayerID, text, true)
	case *LeaveAction:
		events = r.handleLeave(a)
	}

	for _, ev := range events {
		sink(ev)
	}
}

func (r *Room) handleJoin(a *JoinAction) []Event {
	p, ok := r.players[a.PlayerID]
	if !ok {
		return []Event{toSender(network.EventError, ErrorPayload{Message: "Player not in room"})}
	}

	p.SessionID = a.SessionID

	return []Event{
		toSender(network.EventRoomState, r.snapshotLocked()),
		toOthers(network.EventPlayerJoined, PlayerJoinedPayload{Player: p, Players: r.players}),
	}
}

func (r *Room) handleStartGame(a *StartGameAction) []Event {
	if a.PlayerID != r.hostID {
		return []Event{toSender(network.EventError, ErrorPayload{Message: "Only host can start the game"})}
	}

	// 状态只会前进：胜局后重复 start 不再改动状态
	if r.status == StatusWon {
		return nil
	}
	r.status = StatusPlaying

	return []Event{toRoom(network.EventGameStarted, GameStartedPayload{Status: StatusPlaying})}
}

func (r *Room) handleMove(a *MoveAction) []Event {
	p, ok := r.players[a.PlayerID]
	if !ok {
		return nil
	}
	p.Position = a.Position

	// 发送方本地已是权威状态，只需通知其他人
	return []Event{toOthers(network.EventPlayerMoved, PlayerMovedPayload{
		PlayerID: a.PlayerID,
		Position: a.Position,
	})}
}

func (r *Room) handleExamine(a *ExamineObjectAction) []Event {
	clue, known := r.objects.examine(a.ObjectID)
	if !known {
		return nil
	}

	return []Event{toRoom(network.EventObjectExamined, ObjectExaminedPayload{
		ObjectID: a.ObjectID,
		Examined: true,
		Clue:     clue,
	})}
}

func (r *Room) handlePickup(a *PickupItemAction) []Event {
	// 目录里只有紫外灯可以拾取，且只能拾取一次
	if a.ItemID != ItemUVLamp || r.objects.UVLamp.PickedUp {
		return nil
	}

	r.objects.UVLamp.PickedUp = true
	r.inventory = append(r.inventory, ItemUVLamp)

	return []Event{toRoom(network.EventItemPicked, ItemPickedPayload{
		ItemID:    a.ItemID,
		Inventory: r.inventoryCopy(),
		PlayerID:  a.PlayerID,
	})}
}

// handleUseItem 的三个组合各自独立判断，不做互斥分派。
// 实际道具 ID 两两不同，同一次调用最多命中一条。
func (r *Room) handleUseItem(a *UseItemAction) []Event {
	var events []Event

	// 紫外灯照便签
	if a.ItemID == ItemUVLamp && a.TargetID == ObjectNote {
		r.objects.Note.UVRevealed = true
		r.puzzles.UVLight.Revealed = true
		r.puzzles.UVLight.Solved = true
		events = append(events, toRoom(network.EventUVRevealed, UVRevealedPayload{
			Message: r.objects.Note.HiddenMessage,
		}))
	}

	// 合成钥匙：三块碎片同时在背包里才会成功，否则静默忽略
	if a.ItemID == ItemCombineKeys {
		pieces := []string{ItemKeyPiece1, ItemKeyPiece2, ItemKeyPiece3}
		if r.inventoryHasAll(pieces) {
			for _, piece := range pieces {
				r.inventoryRemove(piece)
			}
			r.inventory = append(r.inventory, ItemMasterKey)
			events = append(events, toRoom(network.EventItemsCombined, ItemsCombinedPayload{
				Result:    ItemMasterKey,
				Inventory: r.inventoryCopy(),
			}))
		}
	}

	// 万能钥匙开门：终局转移，状态从此停在 won
	if a.ItemID == ItemMasterKey && a.TargetID == ObjectDoor && r.inventoryHas(ItemMasterKey) {
		r.objects.Door.Unlocked = true
		r.puzzles.Door.Unlocked = true
		r.status = StatusWon
		events = append(events, toRoom(network.EventGameWon, GameWonPayload{Message: winMessage}))
	}

	return events
}

func (r *Room) handleSolvePuzzle(a *SolvePuzzleAction) []Event {
	switch a.PuzzleID {
	case PuzzleCodeLock:
		if r.puzzles.CodeLock.Solved {
			return nil
		}
		if a.Answer != r.puzzles.CodeLock.Code {
			return []Event{toSender(network.EventPuzzleFailed, PuzzleFailedPayload{
				PuzzleID: a.PuzzleID,
				Message:  "Wrong code!",
			})}
		}
		r.puzzles.CodeLock.Solved = true
		r.objects.Drawer.Open = true
		return r.grantItem(a.PuzzleID, r.objects.Drawer.Contains)

	case PuzzleSafe:
		if r.puzzles.Safe.Solved {
			return nil
		}
		if a.Answer != r.puzzles.Safe.Combination {
			return []Event{toSender(network.EventPuzzleFailed, PuzzleFailedPayload{
				PuzzleID: a.PuzzleID,
				Message:  "Wrong combination!",
			})}
		}
		r.puzzles.Safe.Solved = true
		r.objects.Safe.Open = true
		return r.grantItem(a.PuzzleID, r.objects.Safe.Contains)

	case PuzzleJigsaw:
		if r.puzzles.Jigsaw.Solved {
			return nil
		}
		if a.PieceIndex == nil || *a.PieceIndex < 0 || *a.PieceIndex >= jigsawPieceCount {
			return nil
		}
		r.puzzles.Jigsaw.Pieces[*a.PieceIndex] = true

		if !r.jigsawComplete() {
			return []Event{toRoom(network.EventJigsawProgress, JigsawProgressPayload{
				Pieces: r.jigsawPieces(),
			})}
		}
		r.puzzles.Jigsaw.Solved = true
		r.objects.JigsawTable.Complete = true
		return r.grantItem(a.PuzzleID, r.objects.JigsawTable.Contains)
	}

	return nil
}

// grantItem 把解谜容器里的道具放进公共背包并广播
func (r *Room) grantItem(puzzleID, item string) []Event {
	r.inventory = append(r.inventory, item)
	return []Event{toRoom(network.EventPuzzleSolved, PuzzleSolvedPayload{
		PuzzleID:  puzzleID,
		ItemFound: item,
		Inventory: r.inventoryCopy(),
	})}
}

func (r *Room) appendMessage(playerID, text string, quick bool) []Event {
	// 玩家可能刚断线，名字兜底
	name := "Unknown"
	if p, ok := r.players[playerID]; ok {
		name = p.Name
	}

	msg := Message{
		PlayerID:   playerID,
		PlayerName: name,
		Message:    text,
		IsQuick:    quick,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	r.messages = append(r.messages, msg)

	return []Event{toRoom(network.EventNewMessage, msg)}
}

func (r *Room) handleLeave(a *LeaveAction) []Event {
	if _, ok := r.players[a.PlayerID]; !ok {
		return nil
	}

	delete(r.players, a.PlayerID)
	for i, id := range r.joinOrder {
		if id == a.PlayerID {
			r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
			break
		}
	}

	return []Event{toRoom(network.EventPlayerLeft, PlayerLeftPayload{
		PlayerID: a.PlayerID,
		Players:  r.players,
	})}
}

// --- 背包辅助 ---

func (r *Room) inventoryHas(item string) bool {
	for _, it := range r.inventory {
		if it == item {
			return true
		}
	}
	return false
}

func (r *Room) inventoryHasAll(items []string) bool {
	for _, item := range items {
		if !r.inventoryHas(item) {
			return false
		}
	}
	return true
}

func (r *Room) inventoryRemove(item string) {
	for i, it := range r.inventory {
		if it == item {
			r.inventory = append(r.inventory[:i], r.inventory[i+1:]...)
			return
		}
	}
}

func (r *Room) inventoryCopy() []string {
	out := make([]string, len(r.inventory))
	copy(out, r.inventory)
	return out
}

func (r *Room) jigsawComplete() bool {
	for _, placed := range r.puzzles.Jigsaw.Pieces {
		if !placed {
			return false
		}
	}
	return true
}

func (r *Room) jigsawPieces() []bool {
	out := make([]bool, jigsawPieceCount)
	copy(out, r.puzzles.Jigsaw.Pieces[:])
	return out
}
