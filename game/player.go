package game

import (
	"slices"

	"github.com/openmahjong/xuezhan/mahjong"
)

// Hand 一个座位的牌：暗牌、副露、弃牌历史
type Hand struct {
	Concealed []mahjong.Tile `json:"concealedTiles"`
	Exposed   []mahjong.Meld `json:"exposedMelds"`
	Discards  []mahjong.Tile `json:"discardedTiles"`
}

func (h *Hand) Clone() Hand {
	return Hand{
		Concealed: slices.Clone(h.Concealed),
		Exposed:   cloneMelds(h.Exposed),
		Discards:  slices.Clone(h.Discards),
	}
}

func cloneMelds(melds []mahjong.Meld) []mahjong.Meld {
	out := slices.Clone(melds)
	for i := range out {
		out[i].Tiles = slices.Clone(out[i].Tiles)
	}
	return out
}

// AllTiles 暗牌加副露，用于查花猪
func (h *Hand) AllTiles() []mahjong.Tile {
	all := slices.Clone(h.Concealed)
	for _, m := range h.Exposed {
		all = append(all, m.Tiles...)
	}
	return all
}

// Player 座位。Seat 固定，整局不变。
type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Seat        int          `json:"position"`
	Hand        Hand         `json:"hand"`
	Status      PlayerStatus `json:"status"`
	IsDealer    bool         `json:"isDealer"`
	IsTing      bool         `json:"isTing"`
	MissingSuit mahjong.Suit `json:"missingSuit"`
	HasMissing  bool         `json:"hasMissing"`
	WonFan      int          `json:"wonFan"`
	WinFlags    mahjong.WinFlags `json:"winFlags"`
	HasDrawn    bool         `json:"hasDrawn"` // 开局后是否摸过牌，用于天地和判定
	Interrupted bool         `json:"interrupted"` // 首摸前有无别家动作打断，地和作废
}

func (p *Player) Clone() *Player {
	cp := *p
	cp.Hand = p.Hand.Clone()
	return &cp
}

// refreshSuitAndTing 打牌后重算缺门与听牌
func (p *Player) refreshSuitAndTing() {
	if suit, ok := mahjong.MissingSuit(p.Hand.Concealed); ok {
		p.MissingSuit = suit
		p.HasMissing = true
	} else {
		p.HasMissing = false
		p.MissingSuit = mahjong.SuitNone
	}
	p.IsTing = mahjong.IsTing(p.Hand.Concealed)
}

// holdsAllSuits 持三门（花猪）
func (p *Player) holdsAllSuits() bool {
	return len(mahjong.SuitsOf(p.Hand.AllTiles())) == 3
}
