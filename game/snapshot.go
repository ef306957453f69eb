package game

// PuzzleProjection 是对外可见的谜题状态：只暴露 solved，不暴露密码
type PuzzleProjection struct {
	Solved bool `json:"solved"`
}

// Snapshot 是房间对外的完整投影，即 room_state 负载和 GET /api/rooms/{id} 的响应体
type Snapshot struct {
	RoomID       string                      `json:"room_id"`
	HostID       string                      `json:"host_id"`
	Players      map[string]*Player          `json:"players"`
	Status       Status                      `json:"status"`
	Inventory    []string                    `json:"inventory"`
	PuzzleStates map[string]PuzzleProjection `json:"puzzle_states"`
	ObjectsState ObjectsState                `json:"objects_state"`
}

// Snapshot 返回房间状态的一致性副本，可在锁外安全序列化
func (r *Room) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() Snapshot {
	players := make(map[string]*Player, len(r.players))
	for id, p := range r.players {
		cp := *p
		players[id] = &cp
	}

	return Snapshot{
		RoomID:    r.id,
		HostID:    r.hostID,
		Players:   players,
		Status:    r.status,
		Inventory: r.inventoryCopy(),
		PuzzleStates: map[string]PuzzleProjection{
			// 门的 unlocked 统一投影到 solved，保持协议一致
			PuzzleCodeLock: {Solved: r.puzzles.CodeLock.Solved},
			PuzzleSafe:     {Solved: r.puzzles.Safe.Solved},
			PuzzleJigsaw:   {Solved: r.puzzles.Jigsaw.Solved},
			PuzzleUVLight:  {Solved: r.puzzles.UVLight.Solved},
			PuzzleDoor:     {Solved: r.puzzles.Door.Unlocked},
		},
		ObjectsState: r.objects,
	}
}
