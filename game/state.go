package game

import (
	"slices"

	"github.com/openmahjong/xuezhan/mahjong"
)

// PendingAction 一张弃牌挂起的响应窗口
type PendingAction struct {
	PlayerID  string         `json:"playerId"`
	Actions   []ActionType   `json:"availableActions"`
	Tile      mahjong.Tile   `json:"tile"`
	ExpiresAt int64          `json:"expiresAt"` // unix毫秒
}

// PendingKong 续明杠的抢杠窗口：等所有能胡这张牌的人表态后才成杠
type PendingKong struct {
	PlayerID string       `json:"playerId"`
	TileID   string       `json:"tileId"`
	Tile     mahjong.Tile `json:"tile"`
}

// GameAction 动作历史条目
type GameAction struct {
	PlayerID  string        `json:"playerId"`
	Type      ActionType    `json:"type"`
	Tile      *mahjong.Tile `json:"tile,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// GameState 聚合根，整桌的唯一权威状态。只由状态机修改，
// 每次变更后整体落盘。
type GameState struct {
	GameID         string          `json:"gameId"`
	Phase          Phase           `json:"phase"`
	Players        []*Player       `json:"players"`
	Wall           []mahjong.Tile  `json:"wall"`
	DiscardPile    []mahjong.Tile  `json:"discardPile"`
	CurrentIndex   int             `json:"currentPlayerIndex"`
	DealerIndex    int             `json:"dealerIndex"`
	ActionHistory  []GameAction    `json:"actionHistory"`
	WinnersCount   int             `json:"winnersCount"`
	RoundNumber    int             `json:"roundNumber"`
	CreatedAt      int64           `json:"createdAt"`
	LastActionTime int64           `json:"lastActionTime"`
	PendingActions []PendingAction `json:"pendingActions"`
	PendingKong    *PendingKong    `json:"pendingKong,omitempty"`
	Ledger         *mahjong.Ledger `json:"ledger"`
	Rules          Rules           `json:"rules"`
	FinalScores    map[string]int  `json:"finalScores,omitempty"`

	// 杠相关的番标记
	LastDrawFromKong     bool `json:"lastDrawFromKong"`     // 当前14张里最后一张是杠后补牌
	LastDiscardAfterKong bool `json:"lastDiscardAfterKong"` // 最近弃牌是杠后打出
}

// Clone 深拷贝。所有变更在副本上执行，落盘成功后才替换原状态。
func (g *GameState) Clone() *GameState {
	cp := *g
	cp.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp.Players[i] = p.Clone()
	}
	cp.Wall = slices.Clone(g.Wall)
	cp.DiscardPile = slices.Clone(g.DiscardPile)
	cp.ActionHistory = slices.Clone(g.ActionHistory)
	cp.PendingActions = slices.Clone(g.PendingActions)
	for i := range cp.PendingActions {
		cp.PendingActions[i].Actions = slices.Clone(cp.PendingActions[i].Actions)
	}
	if g.PendingKong != nil {
		pk := *g.PendingKong
		cp.PendingKong = &pk
	}
	if g.Ledger != nil {
		ledger := &mahjong.Ledger{SeatCount: g.Ledger.SeatCount, Nodes: slices.Clone(g.Ledger.Nodes)}
		for i := range ledger.Nodes {
			ledger.Nodes[i].Scores = slices.Clone(ledger.Nodes[i].Scores)
		}
		cp.Ledger = ledger
	}
	if g.FinalScores != nil {
		cp.FinalScores = make(map[string]int, len(g.FinalScores))
		for k, v := range g.FinalScores {
			cp.FinalScores[k] = v
		}
	}
	return &cp
}

func (g *GameState) playerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *GameState) currentPlayer() *Player {
	if g.CurrentIndex < 0 || g.CurrentIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentIndex]
}

func (g *GameState) pendingFor(playerID string) *PendingAction {
	for i := range g.PendingActions {
		if g.PendingActions[i].PlayerID == playerID {
			return &g.PendingActions[i]
		}
	}
	return nil
}

func (g *GameState) removePending(playerID string) {
	g.PendingActions = slices.DeleteFunc(g.PendingActions, func(pa PendingAction) bool {
		return pa.PlayerID == playerID
	})
}

// activeSeatsExcept 仍在局内且不是 except 的座位号
func (g *GameState) activeSeatsExcept(except string) []int {
	var seats []int
	for _, p := range g.Players {
		if p.Status == StatusPlaying && p.ID != except {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

func (g *GameState) lastDiscard() (mahjong.Tile, bool) {
	if len(g.DiscardPile) == 0 {
		return mahjong.Tile{}, false
	}
	return g.DiscardPile[len(g.DiscardPile)-1], true
}

func (g *GameState) record(playerID string, action ActionType, tile *mahjong.Tile, now int64) {
	g.ActionHistory = append(g.ActionHistory, GameAction{
		PlayerID:  playerID,
		Type:      action,
		Tile:      tile,
		Timestamp: now,
	})
	g.LastActionTime = now
}
