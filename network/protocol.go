package network

// 入站事件
const (
	EventJoinRoom      = "join_room"
	EventStartGame     = "start_game"
	EventPlayerMove    = "player_move"
	EventExamineObject = "examine_object"
	EventPickupItem    = "pickup_item"
	EventUseItem       = "use_item"
	EventSolvePuzzle   = "solve_puzzle"
	EventSendMessage   = "send_message"
	EventQuickChat     = "quick_chat"
)

// 出站事件
const (
	EventRoomState      = "room_state"
	EventPlayerJoined   = "player_joined"
	EventPlayerLeft     = "player_left"
	EventPlayerMoved    = "player_moved"
	EventGameStarted    = "game_started"
	EventObjectExamined = "object_examined"
	EventItemPicked     = "item_picked"
	EventUVRevealed     = "uv_revealed"
	EventItemsCombined  = "items_combined"
	EventPuzzleSolved   = "puzzle_solved"
	EventPuzzleFailed   = "puzzle_failed"
	EventJigsawProgress = "jigsaw_progress"
	EventGameWon        = "game_won"
	EventNewMessage     = "new_message"
	EventError          = "error"
)
