package game

import (
	"slices"

	"github.com/openmahjong/xuezhan/mahjong"
)

// PlayerView 对某个观察者可见的座位信息
type PlayerView struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Seat           int            `json:"position"`
	Status         PlayerStatus   `json:"status"`
	IsDealer       bool           `json:"isDealer"`
	IsTing         bool           `json:"isTing"`
	WonFan         int            `json:"wonFan"`
	ConcealedCount int            `json:"concealedCount"`
	Concealed      []mahjong.Tile `json:"concealedTiles,omitempty"`
	Exposed        []mahjong.Meld `json:"exposedMelds"`
	Discards       []mahjong.Tile `json:"discardedTiles"`
}

// Snapshot 发给单个玩家的对局视图：别家暗牌和牌墙只给数量
type Snapshot struct {
	GameID         string          `json:"gameId"`
	Phase          Phase           `json:"phase"`
	Players        []PlayerView    `json:"players"`
	WallCount      int             `json:"wallCount"`
	DiscardPile    []mahjong.Tile  `json:"discardPile"`
	CurrentIndex   int             `json:"currentPlayerIndex"`
	DealerIndex    int             `json:"dealerIndex"`
	WinnersCount   int             `json:"winnersCount"`
	RoundNumber    int             `json:"roundNumber"`
	PendingActions []PendingAction `json:"pendingActions"`
	FinalScores    map[string]int  `json:"finalScores,omitempty"`
}

// View 为 viewerID 生成掩码视图。reveal 为管理端开关，亮所有暗牌。
func (g *GameState) View(viewerID string, reveal bool) Snapshot {
	snap := Snapshot{
		GameID:       g.GameID,
		Phase:        g.Phase,
		WallCount:    len(g.Wall),
		DiscardPile:  slices.Clone(g.DiscardPile),
		CurrentIndex: g.CurrentIndex,
		DealerIndex:  g.DealerIndex,
		WinnersCount: g.WinnersCount,
		RoundNumber:  g.RoundNumber,
		FinalScores:  g.FinalScores,
	}
	for _, p := range g.Players {
		view := PlayerView{
			ID:             p.ID,
			Name:           p.Name,
			Seat:           p.Seat,
			Status:         p.Status,
			IsDealer:       p.IsDealer,
			IsTing:         p.IsTing,
			WonFan:         p.WonFan,
			ConcealedCount: len(p.Hand.Concealed),
			Exposed:        cloneMelds(p.Hand.Exposed),
			Discards:       slices.Clone(p.Hand.Discards),
		}
		if reveal || p.ID == viewerID || g.Phase == PhaseEnded {
			view.Concealed = slices.Clone(p.Hand.Concealed)
		}
		snap.Players = append(snap.Players, view)
	}
	// 响应窗口只发给窗口的主人
	for _, pa := range g.PendingActions {
		if reveal || pa.PlayerID == viewerID {
			snap.PendingActions = append(snap.PendingActions, pa)
		}
	}
	return snap
}
