package game

import (
	"slices"

	"github.com/openmahjong/xuezhan/mahjong"
)

// AvailableActions 列出一个玩家此刻的合法动作。
// 轮到自己且刚摸完牌：打牌总是可选，另查暗杠/续明杠/自摸；
// 别人弃牌挂起了响应窗口：原样返回窗口里的动作集。
func (g *GameState) AvailableActions(playerID string) []ActionType {
	if g.Phase != PhasePlaying {
		return nil
	}
	p := g.playerByID(playerID)
	if p == nil || p.Status != StatusPlaying {
		return nil
	}

	if pending := g.pendingFor(playerID); pending != nil {
		return slices.Clone(pending.Actions)
	}

	if g.currentPlayer() != p || len(p.Hand.Concealed)%3 != 2 || g.claimsOpen() {
		return nil
	}

	actions := []ActionType{ActionDiscard}
	counts := mahjong.CountKinds(p.Hand.Concealed)
	for _, c := range counts {
		if c == mahjong.CopyCount {
			actions = append(actions, ActionConcealedKong)
			break
		}
	}
	for _, m := range p.Hand.Exposed {
		if m.Type == mahjong.MeldTriplet && m.Kind() >= 0 && counts[m.Kind()] > 0 {
			actions = append(actions, ActionExtendedKong)
			break
		}
	}
	if ok, _ := mahjong.CanWin(p.Hand.Concealed); ok {
		if _, missing := mahjong.MissingSuit(p.Hand.AllTiles()); missing || mahjong.IsFullFlush(p.Hand.AllTiles()) {
			actions = append(actions, ActionHu)
		}
	}
	return actions
}
