package game

import "fmt"

// 谜题与物件目录是固定的：密码和线索在建房时生成一次，之后不可变。

// 谜题 ID
const (
	PuzzleCodeLock = "code_lock"
	PuzzleSafe     = "safe"
	PuzzleJigsaw   = "jigsaw"
	PuzzleUVLight  = "uv_light"
	PuzzleDoor     = "door"
)

// 物件 ID
const (
	ObjectBook        = "book"
	ObjectPainting    = "painting"
	ObjectNote        = "note"
	ObjectDrawer      = "drawer"
	ObjectSafe        = "safe"
	ObjectJigsawTable = "jigsaw_table"
	ObjectUVLamp      = "uv_lamp"
	ObjectDoor        = "door"
)

// 道具 ID
const (
	ItemUVLamp      = "uv_lamp"
	ItemKeyPiece1   = "key_piece_1"
	ItemKeyPiece2   = "key_piece_2"
	ItemKeyPiece3   = "key_piece_3"
	ItemMasterKey   = "master_key"
	ItemCombineKeys = "combine_keys"
)

const jigsawPieceCount = 9

const (
	hiddenMessage = "The key lies in unity - combine the three pieces"
	winMessage    = "You've escaped The Locked Study!"
)

// PuzzleSet 持有全部谜题状态，密码永不离开服务端
type PuzzleSet struct {
	CodeLock CodeLockPuzzle
	Safe     SafePuzzle
	Jigsaw   JigsawPuzzle
	UVLight  UVLightPuzzle
	Door     DoorPuzzle
}

type CodeLockPuzzle struct {
	Solved bool
	Code   string
}

type SafePuzzle struct {
	Solved      bool
	Combination string
}

type JigsawPuzzle struct {
	Solved bool
	Pieces [jigsawPieceCount]bool
}

type UVLightPuzzle struct {
	Solved   bool
	Revealed bool
}

type DoorPuzzle struct {
	Unlocked bool
}

func newPuzzleSet(src *Source) PuzzleSet {
	return PuzzleSet{
		CodeLock: CodeLockPuzzle{Code: src.Digits(4)},
		Safe:     SafePuzzle{Combination: src.Digits(3)},
	}
}

// ObjectsState 可交互物件目录，整体随 room_state 快照下发
type ObjectsState struct {
	Book        ExaminableObject `json:"book"`
	Painting    ExaminableObject `json:"painting"`
	Note        NoteObject       `json:"note"`
	Drawer      ContainerObject  `json:"drawer"`
	Safe        ContainerObject  `json:"safe"`
	JigsawTable JigsawTable      `json:"jigsaw_table"`
	UVLamp      UVLampObject     `json:"uv_lamp"`
	Door        DoorObject       `json:"door"`
}

type ExaminableObject struct {
	Examined bool   `json:"examined"`
	Clue     string `json:"clue,omitempty"`
}

type NoteObject struct {
	Examined      bool   `json:"examined"`
	UVRevealed    bool   `json:"uv_revealed"`
	HiddenMessage string `json:"hidden_message"`
}

type ContainerObject struct {
	Examined bool   `json:"examined"`
	Open     bool   `json:"open"`
	Contains string `json:"contains"`
}

type JigsawTable struct {
	Examined bool   `json:"examined"`
	Complete bool   `json:"complete"`
	Contains string `json:"contains"`
}

type UVLampObject struct {
	Examined bool `json:"examined"`
	PickedUp bool `json:"picked_up"`
}

type DoorObject struct {
	Examined bool `json:"examined"`
	Unlocked bool `json:"unlocked"`
}

// newObjectsState 从谜题密码派生线索文本
func newObjectsState(puzzles *PuzzleSet) ObjectsState {
	comb := puzzles.Safe.Combination
	hyphenated := ""
	for i := 0; i < len(comb); i++ {
		if i > 0 {
			hyphenated += "-"
		}
		hyphenated += string(comb[i])
	}

	return ObjectsState{
		Book: ExaminableObject{
			Clue: fmt.Sprintf("The old diary mentions: 'My lucky number is %s'", puzzles.CodeLock.Code),
		},
		Painting: ExaminableObject{
			Clue: fmt.Sprintf("Behind the frame: %s", hyphenated),
		},
		Note:        NoteObject{HiddenMessage: hiddenMessage},
		Drawer:      ContainerObject{Contains: ItemKeyPiece1},
		Safe:        ContainerObject{Contains: ItemKeyPiece2},
		JigsawTable: JigsawTable{Contains: ItemKeyPiece3},
	}
}

// examine 将指定物件标记为已检查，返回线索文本（若有）。
// 未知物件返回 known=false，由调用方静默忽略。
func (o *ObjectsState) examine(objectID string) (clue string, known bool) {
	switch objectID {
	case ObjectBook:
		o.Book.Examined = true
		return o.Book.Clue, true
	case ObjectPainting:
		o.Painting.Examined = true
		return o.Painting.Clue, true
	case ObjectNote:
		o.Note.Examined = true
		return "", true
	case ObjectDrawer:
		o.Drawer.Examined = true
		return "", true
	case ObjectSafe:
		o.Safe.Examined = true
		return "", true
	case ObjectJigsawTable:
		o.JigsawTable.Examined = true
		return "", true
	case ObjectUVLamp:
		o.UVLamp.Examined = true
		return "", true
	case ObjectDoor:
		o.Door.Examined = true
		return "", true
	}
	return "", false
}

// quickPhrases 快捷聊天短语表，未知的 key 原样透传
var quickPhrases = map[string]string{
	"look":  "Look here!",
	"found": "I found something!",
	"help":  "I need help!",
	"idea":  "I have an idea!",
	"yes":   "Yes!",
	"no":    "No!",
}
