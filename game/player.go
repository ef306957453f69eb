package game

// Position 玩家在房间内的 2D 坐标
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player 房间内的一名玩家。SessionID 在 join_room 握手后才会绑定。
type Player struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	Color     string   `json:"color"`
	IsHost    bool     `json:"is_host"`
	SessionID string   `json:"-"`
}

// 房主固定为金色，后续加入的玩家按加入顺序从调色板取色
const hostColor = "#D4AF37"

var joinPalette = []string{"#ffffff", "#10b981", "#ef4444", "#3b82f6"}

// joinPosition 按加入顺序错开初始位置
func joinPosition(joinIndex int) Position {
	return Position{X: 400 + float64(joinIndex)*50, Y: 300}
}
