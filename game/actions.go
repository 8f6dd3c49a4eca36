package game

import (
	"slices"

	"github.com/openmahjong/xuezhan/mahjong"
)

// NewGame 建桌，创建者坐0号位并担任庄家
func NewGame(gameID string, rules Rules, creatorID, creatorName string, now int64) *GameState {
	g := &GameState{
		GameID:         gameID,
		Phase:          PhaseWaiting,
		CreatedAt:      now,
		LastActionTime: now,
		RoundNumber:    1,
		Rules:          rules.normalized(),
	}
	g.Players = append(g.Players, &Player{
		ID:          creatorID,
		Name:        creatorName,
		Seat:        0,
		Status:      StatusWaiting,
		IsDealer:    true,
		MissingSuit: mahjong.SuitNone,
	})
	return g
}

// AddPlayer 入座，返回座位号
func (g *GameState) AddPlayer(playerID, name string) (int, error) {
	if g.Phase != PhaseWaiting {
		return 0, ErrGameStarted
	}
	if len(g.Players) >= MaxPlayers {
		return 0, ErrGameFull
	}
	seat := len(g.Players)
	g.Players = append(g.Players, &Player{
		ID:          playerID,
		Name:        name,
		Seat:        seat,
		Status:      StatusWaiting,
		MissingSuit: mahjong.SuitNone,
	})
	return seat, nil
}

// Start 发牌开局：洗牌、每人13张、庄家摸第14张
func (g *GameState) Start(now int64) error {
	if g.Phase != PhaseWaiting {
		return ErrGameStarted
	}
	if len(g.Players) < MinPlayers {
		return invalidf("need at least %d players to start", MinPlayers)
	}
	g.Phase = PhaseStarting
	g.Wall = mahjong.Shuffle(mahjong.NewDeck())
	g.Ledger = mahjong.NewLedger(len(g.Players))

	wall := mahjong.NewWall(g.Wall)
	for _, p := range g.Players {
		p.Hand.Concealed = mahjong.SortTiles(wall.Deal(HandSize))
		p.Status = StatusPlaying
	}
	dealer := g.Players[g.DealerIndex]
	first, _ := wall.Draw()
	dealer.Hand.Concealed = mahjong.SortTiles(append(dealer.Hand.Concealed, first))
	dealer.HasDrawn = true

	g.Wall = wall.Tiles()
	g.CurrentIndex = g.DealerIndex
	g.Phase = PhasePlaying
	g.LastActionTime = now
	return nil
}

// Apply 执行一个玩家动作。任何校验失败都不改动状态。
func (g *GameState) Apply(playerID string, action ActionType, tileID string, tileIDs []string, now int64) error {
	if g.Phase != PhasePlaying {
		return invalidf("game is not in playing phase")
	}
	player := g.playerByID(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}

	var err error
	var acted *mahjong.Tile
	switch action {
	case ActionDiscard:
		acted, err = g.handleDiscard(player, tileID, now)
	case ActionPeng:
		err = g.handlePeng(player)
	case ActionKong:
		err = g.handleKong(player)
	case ActionConcealedKong:
		err = g.handleConcealedKong(player, tileIDs)
	case ActionExtendedKong:
		err = g.handleExtendedKong(player, tileID, now)
	case ActionHu:
		err = g.handleHu(player)
	case ActionPass:
		err = g.handlePass(player)
	case ActionDraw:
		err = invalidf("draw happens automatically on turn change")
	default:
		err = invalidf("unknown action %q", action)
	}
	if err != nil {
		return err
	}
	g.record(playerID, action, acted, now)
	return nil
}

func (g *GameState) handleDiscard(p *Player, tileID string, now int64) (*mahjong.Tile, error) {
	if g.currentPlayer() != p {
		return nil, invalidf("not your turn")
	}
	if len(p.Hand.Concealed)%3 != 2 {
		return nil, invalidf("nothing to discard before drawing")
	}
	if g.claimsOpen() {
		return nil, invalidf("claims on the last tile are still open")
	}
	rest, tile, ok := mahjong.RemoveTileByID(p.Hand.Concealed, tileID)
	if !ok {
		return nil, invalidf("tile %s is not in your hand", tileID)
	}
	p.Hand.Concealed = rest
	p.Hand.Discards = append(p.Hand.Discards, tile)
	g.DiscardPile = append(g.DiscardPile, tile)
	p.refreshSuitAndTing()

	g.LastDiscardAfterKong = g.LastDrawFromKong
	g.LastDrawFromKong = false

	g.openClaims(tile, now)
	if len(g.PendingActions) == 0 {
		return &tile, g.moveToNextPlayer()
	}
	return &tile, nil
}

// claimsOpen 弃牌响应或抢杠窗口是否还开着。
// 开着期间当前玩家不得打牌、开杠、自摸。
func (g *GameState) claimsOpen() bool {
	return len(g.PendingActions) > 0 || g.PendingKong != nil
}

// openClaims 弃牌后为所有能碰/杠/胡的在局玩家开响应窗口
func (g *GameState) openClaims(tile mahjong.Tile, now int64) {
	g.PendingActions = nil
	for _, p := range g.Players {
		if p.Status != StatusPlaying || p == g.currentPlayer() {
			continue
		}
		var actions []ActionType
		matching := mahjong.CountKind(p.Hand.Concealed, tile.Kind())
		if matching >= 2 {
			actions = append(actions, ActionPeng)
		}
		if matching >= 3 {
			actions = append(actions, ActionKong)
		}
		if g.canWinOn(p, tile) {
			actions = append(actions, ActionHu)
		}
		if len(actions) > 0 {
			actions = append(actions, ActionPass)
			g.PendingActions = append(g.PendingActions, PendingAction{
				PlayerID:  p.ID,
				Actions:   actions,
				Tile:      tile,
				ExpiresAt: now + g.Rules.ClaimWindow.Milliseconds(),
			})
		}
	}
}

// canWinOn 这张牌能不能点炮给p：牌型成立且整手（含副露）缺一门
func (g *GameState) canWinOn(p *Player, tile mahjong.Tile) bool {
	probe := append(slices.Clone(p.Hand.Concealed), tile)
	if ok, _ := mahjong.CanWin(probe); !ok {
		return false
	}
	all := append(p.Hand.AllTiles(), tile)
	_, missing := mahjong.MissingSuit(all)
	return missing || mahjong.IsFullFlush(all)
}

// claimPending 取出并校验一个响应窗口
func (g *GameState) claimPending(p *Player, action ActionType) (*PendingAction, error) {
	pending := g.pendingFor(p.ID)
	if pending == nil {
		return nil, invalidf("no pending claim for you")
	}
	if !slices.Contains(pending.Actions, action) {
		return nil, invalidf("%s is not available on this discard", action)
	}
	if action != ActionHu && action != ActionPass && g.Rules.ClaimPolicy == ClaimHuFirst {
		for _, pa := range g.PendingActions {
			if pa.PlayerID != p.ID && slices.Contains(pa.Actions, ActionHu) {
				return nil, invalidf("a win claim takes priority on this discard")
			}
		}
	}
	return pending, nil
}

func (g *GameState) handlePeng(p *Player) error {
	pending, err := g.claimPending(p, ActionPeng)
	if err != nil {
		return err
	}
	tile := pending.Tile
	rest, taken := mahjong.RemoveKind(p.Hand.Concealed, tile.Kind(), 2)
	if len(taken) != 2 {
		return invalidf("not enough tiles to peng")
	}
	p.Hand.Concealed = rest
	p.Hand.Exposed = append(p.Hand.Exposed, mahjong.Meld{
		Type:  mahjong.MeldTriplet,
		Tiles: append([]mahjong.Tile{tile}, taken...),
		From:  int32(g.CurrentIndex),
	})
	g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]
	g.interruptAll()
	g.PendingActions = nil
	g.CurrentIndex = p.Seat
	return nil
}

func (g *GameState) handleKong(p *Player) error {
	pending, err := g.claimPending(p, ActionKong)
	if err != nil {
		return err
	}
	tile := pending.Tile
	rest, taken := mahjong.RemoveKind(p.Hand.Concealed, tile.Kind(), 3)
	if len(taken) != 3 {
		return invalidf("not enough tiles to kong")
	}
	p.Hand.Concealed = rest
	p.Hand.Exposed = append(p.Hand.Exposed, mahjong.Meld{
		Type:  mahjong.MeldKong,
		Tiles: append([]mahjong.Tile{tile}, taken...),
		From:  int32(g.CurrentIndex),
	})
	g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]

	// 点杠：放杠的人独付
	discarder := g.CurrentIndex
	g.Ledger.AddTransfer(mahjong.ReasonKongDirect, p.Seat, []int{discarder}, mahjong.KongUnitScore(mahjong.KongDirect)*g.Rules.ScoreBase)

	g.interruptAll()
	g.PendingActions = nil
	g.CurrentIndex = p.Seat
	return g.drawSupplement(p)
}

func (g *GameState) handleConcealedKong(p *Player, tileIDs []string) error {
	if g.currentPlayer() != p {
		return invalidf("not your turn")
	}
	if g.claimsOpen() {
		return invalidf("claims on the last tile are still open")
	}
	if len(p.Hand.Concealed)%3 != 2 {
		return invalidf("kong is only allowed right after a draw")
	}
	if len(tileIDs) != 4 {
		return invalidf("concealed kong needs exactly 4 tiles")
	}
	tiles := make([]mahjong.Tile, 0, 4)
	rest := p.Hand.Concealed
	for _, id := range tileIDs {
		var tile mahjong.Tile
		var ok bool
		rest, tile, ok = mahjong.RemoveTileByID(rest, id)
		if !ok {
			return invalidf("tile %s is not in your hand", id)
		}
		tiles = append(tiles, tile)
	}
	for _, t := range tiles[1:] {
		if !t.SameKind(tiles[0]) {
			return invalidf("concealed kong tiles must be identical")
		}
	}
	p.Hand.Concealed = rest
	p.Hand.Exposed = append(p.Hand.Exposed, mahjong.Meld{
		Type:      mahjong.MeldConcealedKong,
		Tiles:     tiles,
		Concealed: true,
		From:      -1,
	})

	g.Ledger.AddTransfer(mahjong.ReasonKongConcealed, p.Seat, g.activeSeatsExcept(p.ID), mahjong.KongUnitScore(mahjong.KongConcealed)*g.Rules.ScoreBase)
	g.interruptAll()
	return g.drawSupplement(p)
}

func (g *GameState) handleExtendedKong(p *Player, tileID string, now int64) error {
	if g.currentPlayer() != p {
		return invalidf("not your turn")
	}
	if g.claimsOpen() {
		return invalidf("claims on the last tile are still open")
	}
	if len(p.Hand.Concealed)%3 != 2 {
		return invalidf("kong is only allowed right after a draw")
	}
	tile, ok := findTileByID(p.Hand.Concealed, tileID)
	if !ok {
		return invalidf("tile %s is not in your hand", tileID)
	}
	if g.tripletIndex(p, tile) < 0 {
		return invalidf("no exposed triplet matches %s", tile.Name())
	}

	// 抢杠：先给能胡这张牌的人一个窗口，全放弃才成杠
	g.PendingActions = nil
	for _, other := range g.Players {
		if other.Status != StatusPlaying || other == p {
			continue
		}
		if g.canWinOn(other, tile) {
			g.PendingActions = append(g.PendingActions, PendingAction{
				PlayerID:  other.ID,
				Actions:   []ActionType{ActionHu, ActionPass},
				Tile:      tile,
				ExpiresAt: now + g.Rules.ClaimWindow.Milliseconds(),
			})
		}
	}
	if len(g.PendingActions) > 0 {
		g.PendingKong = &PendingKong{PlayerID: p.ID, TileID: tileID, Tile: tile}
		return nil
	}
	return g.completeExtendedKong(p, tileID)
}

func (g *GameState) completeExtendedKong(p *Player, tileID string) error {
	rest, tile, ok := mahjong.RemoveTileByID(p.Hand.Concealed, tileID)
	if !ok {
		return invalidf("tile %s is not in your hand", tileID)
	}
	idx := g.tripletIndex(p, tile)
	if idx < 0 {
		return invalidf("no exposed triplet matches %s", tile.Name())
	}
	p.Hand.Concealed = rest
	p.Hand.Exposed[idx].Type = mahjong.MeldKong
	p.Hand.Exposed[idx].Tiles = append(p.Hand.Exposed[idx].Tiles, tile)

	g.Ledger.AddTransfer(mahjong.ReasonKongExtended, p.Seat, g.activeSeatsExcept(p.ID), mahjong.KongUnitScore(mahjong.KongExtended)*g.Rules.ScoreBase)
	g.interruptAll()
	return g.drawSupplement(p)
}

func (g *GameState) tripletIndex(p *Player, tile mahjong.Tile) int {
	for i, m := range p.Hand.Exposed {
		if m.Type == mahjong.MeldTriplet && len(m.Tiles) > 0 && m.Tiles[0].SameKind(tile) {
			return i
		}
	}
	return -1
}

func (g *GameState) handleHu(p *Player) error {
	flags := mahjong.WinFlags{}

	// 先把要校验的整手牌摆出来，校验都过了才动状态
	var won []mahjong.Tile
	var commit func()

	switch {
	case g.pendingFor(p.ID) != nil:
		pending, err := g.claimPending(p, ActionHu)
		if err != nil {
			return err
		}
		if g.PendingKong != nil {
			// 抢杠：把杠主手里那张牌抢过来
			konger := g.playerByID(g.PendingKong.PlayerID)
			if konger == nil {
				return &InvariantError{GameID: g.GameID, Detail: "pending kong without its player"}
			}
			rest, tile, ok := mahjong.RemoveTileByID(konger.Hand.Concealed, g.PendingKong.TileID)
			if !ok {
				return &InvariantError{GameID: g.GameID, Detail: "pending kong tile missing from konger hand"}
			}
			won = mahjong.SortTiles(append(slices.Clone(p.Hand.Concealed), tile))
			flags.RobbingKong = true
			commit = func() {
				konger.Hand.Concealed = rest
				g.PendingKong = nil
			}
		} else {
			// 点炮：弃牌归胡牌者
			won = mahjong.SortTiles(append(slices.Clone(p.Hand.Concealed), pending.Tile))
			flags.KongDiscard = g.LastDiscardAfterKong
			commit = func() {
				g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]
			}
		}

	case g.currentPlayer() == p && len(p.Hand.Concealed)%3 == 2 && !g.claimsOpen():
		won = p.Hand.Concealed
		flags.SelfDrawn = true
		flags.KongFlower = g.LastDrawFromKong
		if len(p.Hand.Discards) == 0 && len(p.Hand.Exposed) == 0 {
			if p.IsDealer && len(g.DiscardPile) == 0 {
				flags.Heaven = true
			} else if !p.IsDealer && !p.Interrupted {
				flags.Earth = true
			}
		}
		commit = func() {}

	default:
		return invalidf("you cannot win right now")
	}

	ok, winType := mahjong.CanWin(won)
	if !ok {
		return invalidf("hand is not a winning hand")
	}
	all := slices.Clone(won)
	for _, m := range p.Hand.Exposed {
		all = append(all, m.Tiles...)
	}
	if _, missing := mahjong.MissingSuit(all); !missing && !mahjong.IsFullFlush(all) {
		return invalidf("winning requires a missing suit")
	}

	fan := mahjong.CalculateFan(won, p.Hand.Exposed, winType, flags)
	commit()
	p.Hand.Concealed = won
	g.PendingActions = nil
	p.Status = StatusWon
	p.WonFan = fan.Total
	p.WinFlags = flags
	p.IsTing = true
	g.WinnersCount++
	g.interruptAll()

	if g.WinnersCount >= len(g.Players)-1 || len(g.Wall) == 0 {
		g.endRound()
		return nil
	}
	return g.moveToNextPlayer()
}

func (g *GameState) handlePass(p *Player) error {
	if g.pendingFor(p.ID) == nil {
		return invalidf("nothing to pass on")
	}
	g.removePending(p.ID)
	if len(g.PendingActions) > 0 {
		return nil
	}
	if g.PendingKong != nil {
		konger := g.playerByID(g.PendingKong.PlayerID)
		tileID := g.PendingKong.TileID
		g.PendingKong = nil
		if konger == nil {
			return &InvariantError{GameID: g.GameID, Detail: "pending kong without its player"}
		}
		return g.completeExtendedKong(konger, tileID)
	}
	return g.moveToNextPlayer()
}

// ExpireClaims 清掉超时未表态的响应窗口，视同过牌。
// 返回状态是否发生了变化。
func (g *GameState) ExpireClaims(now int64) (bool, error) {
	if g.Phase != PhasePlaying {
		return false, nil
	}
	before := len(g.PendingActions)
	g.PendingActions = slices.DeleteFunc(g.PendingActions, func(pa PendingAction) bool {
		return pa.ExpiresAt <= now
	})
	if len(g.PendingActions) == before {
		return false, nil
	}
	if len(g.PendingActions) > 0 {
		return true, nil
	}
	if g.PendingKong != nil {
		konger := g.playerByID(g.PendingKong.PlayerID)
		tileID := g.PendingKong.TileID
		g.PendingKong = nil
		if konger == nil {
			return true, &InvariantError{GameID: g.GameID, Detail: "pending kong without its player"}
		}
		return true, g.completeExtendedKong(konger, tileID)
	}
	return true, g.moveToNextPlayer()
}

// drawSupplement 杠后补牌
func (g *GameState) drawSupplement(p *Player) error {
	if err := g.draw(p); err != nil {
		return err
	}
	if g.Phase == PhasePlaying {
		g.LastDrawFromKong = true
	}
	return nil
}

// draw 从墙尾摸一张；墙空直接终局
func (g *GameState) draw(p *Player) error {
	if len(g.Wall) == 0 {
		g.endRound()
		return nil
	}
	tile := g.Wall[len(g.Wall)-1]
	g.Wall = g.Wall[:len(g.Wall)-1]
	p.Hand.Concealed = mahjong.SortTiles(append(p.Hand.Concealed, tile))
	p.HasDrawn = true
	g.LastDrawFromKong = false
	return nil
}

func (g *GameState) moveToNextPlayer() error {
	if len(g.Players) == 0 {
		return &InvariantError{GameID: g.GameID, Detail: "no players"}
	}
	rotations := 0
	for {
		g.CurrentIndex = (g.CurrentIndex + 1) % len(g.Players)
		rotations++
		if g.Players[g.CurrentIndex].Status == StatusPlaying {
			break
		}
		if rotations > len(g.Players) {
			return &InvariantError{GameID: g.GameID, Detail: "no active players remaining"}
		}
	}
	return g.draw(g.Players[g.CurrentIndex])
}

// interruptAll 有人成行动作后，地和资格作废
func (g *GameState) interruptAll() {
	for _, p := range g.Players {
		p.Interrupted = true
	}
}

// endRound 查叫结算并收局
func (g *GameState) endRound() {
	g.Phase = PhaseChaJiao

	seats := make([]mahjong.SettleSeat, len(g.Players))
	for i, p := range g.Players {
		if p.Status == StatusPlaying {
			p.IsTing = mahjong.IsTing(p.Hand.Concealed)
		}
		seats[i] = mahjong.SettleSeat{
			Won:       p.Status == StatusWon,
			Fan:       p.WonFan,
			Ting:      p.IsTing,
			FlowerPig: p.Status != StatusWon && p.holdsAllSuits(),
		}
	}
	totals := mahjong.CalculateGameResult(seats, g.Ledger)

	g.FinalScores = make(map[string]int, len(g.Players))
	for i, p := range g.Players {
		g.FinalScores[p.ID] = totals[i]
		if p.Status != StatusWon {
			p.Status = StatusLost
		}
	}
	g.PendingActions = nil
	g.PendingKong = nil
	g.Phase = PhaseEnded
}

func findTileByID(tiles []mahjong.Tile, id string) (mahjong.Tile, bool) {
	for _, t := range tiles {
		if t.ID() == id {
			return t, true
		}
	}
	return mahjong.Tile{}, false
}
