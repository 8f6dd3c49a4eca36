package mahjong

// MeldType 牌组类型
type MeldType string

const (
	MeldSequence      MeldType = "sequence"       // 顺子
	MeldTriplet       MeldType = "triplet"        // 刻子
	MeldKong          MeldType = "kong"           // 明杠
	MeldConcealedKong MeldType = "concealed_kong" // 暗杠
	MeldPair          MeldType = "pair"           // 对子
)

// Meld 一个已成型的牌组。明牌组对所有人可见；暗杠在川麻里
// 公开宣告但牌面不亮，仍按暗杠计分。
type Meld struct {
	Type      MeldType `json:"type"`
	Tiles     []Tile   `json:"tiles"`
	Concealed bool     `json:"concealed"`
	From      int32    `json:"from"` // seat the claimed tile came from, -1 for self
}

func (m Meld) IsKong() bool {
	return m.Type == MeldKong || m.Type == MeldConcealedKong
}

// Kind returns the kind of the meld's anchor tile (lowest for sequences).
func (m Meld) Kind() int {
	if len(m.Tiles) == 0 {
		return -1
	}
	kind := m.Tiles[0].Kind()
	for _, t := range m.Tiles[1:] {
		if t.Kind() < kind {
			kind = t.Kind()
		}
	}
	return kind
}

// HasTerminal 幺九牌组判断（对子不参与全带幺的约束）
func (m Meld) HasTerminal() bool {
	for _, t := range m.Tiles {
		if t.IsTerminal() {
			return true
		}
	}
	return false
}

// All258 将对判断：整组只用 2/5/8
func (m Meld) All258() bool {
	for _, t := range m.Tiles {
		if !t.Is258() {
			return false
		}
	}
	return true
}
