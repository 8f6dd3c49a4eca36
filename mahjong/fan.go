package mahjong

// FanMax 封顶（极品）
const FanMax = 5

// WinFlags 胡牌时的情景加番条件
type WinFlags struct {
	SelfDrawn   bool `json:"selfDrawn"`
	KongFlower  bool `json:"kongFlower"`  // 杠上花
	KongDiscard bool `json:"kongDiscard"` // 杠上炮
	RobbingKong bool `json:"robbingKong"` // 抢杠
	Heaven      bool `json:"heaven"`      // 天和
	Earth       bool `json:"earth"`       // 地和
}

// FanResult 算番结果
type FanResult struct {
	Base     int      `json:"baseFan"`
	Extras   []string `json:"additionalFans"`
	HandType string   `json:"handTypeFan"`
	Total    int      `json:"totalFan"`
	Name     string   `json:"fanName"`
}

const (
	fanRoot        = "Root (有根)"
	fanRobbingKong = "Robbing the Kong (抢杠)"
	fanKongDiscard = "Kong Discard (杠上炮)"
	fanKongFlower  = "Kong Flower (杠上花)"
	fanHeaven      = "Heaven Win (天和)"
	fanEarth       = "Earth Win (地和)"

	handPureSevenPairs = "Pure Seven Pairs (清七对)"
	handPurePungs      = "Pure Pungs (清对)"
	handPureTerminals  = "Pure Terminals (清带幺)"
	handJiangPungs     = "Jiang Pungs (将对)"
	handFullFlush      = "Full Flush (清一色)"
	handSevenPairs     = "Seven Pairs (暗七对)"
	handAllTerminals   = "All Terminals (全带幺)"
	handAllPungs       = "All Pungs (对对和)"
	handPureWin        = "Pure Win (素番)"
)

var fanNames = map[int]string{
	1: "One-Fan Win (一番和)",
	2: "Two-Fan Win (两番和)",
	3: "Small Grand Slam (小满贯)",
	4: "Big Grand Slam (大满贯)",
	5: "Extreme (极品)",
}

// FanName 番数名称，越界按一番处理
func FanName(fan int) string {
	if name, ok := fanNames[fan]; ok {
		return name
	}
	return fanNames[1]
}

// CalculateFan 算番。缺门本身就是底番，不单独计。
// 牌型番互斥，按优先级取最高一档；情景番累加；封顶5番。
func CalculateFan(concealed []Tile, exposed []Meld, winType WinType, flags WinFlags) FanResult {
	result := FanResult{Base: 1}

	roots := CountRoots(concealed, exposed)
	for i := 0; i < roots; i++ {
		result.Extras = append(result.Extras, fanRoot)
	}
	result.Base += roots

	for _, e := range []struct {
		on   bool
		name string
		fan  int
	}{
		{flags.RobbingKong, fanRobbingKong, 1},
		{flags.KongDiscard, fanKongDiscard, 1},
		{flags.KongFlower, fanKongFlower, 1},
		{flags.Heaven, fanHeaven, 4},
		{flags.Earth, fanEarth, 4},
	} {
		if e.on {
			result.Extras = append(result.Extras, e.name)
			result.Base += e.fan
		}
	}

	all := append(append([]Tile{}, concealed...), meldTiles(exposed)...)
	flush := IsFullFlush(all)
	hasSeq := hasSequence(concealed, exposed)
	terminals := allTerminalMelds(concealed, exposed)
	jiang := allJiangMelds(concealed, exposed)

	switch {
	case flush && winType == WinSevenPairs:
		result.HandType, result.Base = handPureSevenPairs, result.Base+4
	case flush && !hasSeq && winType == WinStandard:
		result.HandType, result.Base = handPurePungs, result.Base+4
	case flush && terminals:
		result.HandType, result.Base = handPureTerminals, result.Base+4
	case jiang && !hasSeq:
		result.HandType, result.Base = handJiangPungs, result.Base+4
	case flush:
		result.HandType, result.Base = handFullFlush, result.Base+3
	case winType == WinSevenPairs:
		result.HandType, result.Base = handSevenPairs, result.Base+3
	case terminals:
		result.HandType, result.Base = handAllTerminals, result.Base+3
	case !hasSeq:
		result.HandType, result.Base = handAllPungs, result.Base+2
	default:
		result.HandType = handPureWin
	}

	result.Total = min(result.Base, FanMax)
	result.Name = FanName(result.Total)
	return result
}

// WinningScore 番数对应分值：2^(fan-1)
func WinningScore(fan int) int {
	if fan < 1 {
		fan = 1
	}
	return 1 << (fan - 1)
}

func meldTiles(melds []Meld) []Tile {
	var tiles []Tile
	for _, m := range melds {
		tiles = append(tiles, m.Tiles...)
	}
	return tiles
}

func hasSequence(concealed []Tile, exposed []Meld) bool {
	for _, m := range exposed {
		if m.Type == MeldSequence {
			return true
		}
	}
	for _, m := range ExtractMelds(concealed) {
		if m.Type == MeldSequence {
			return true
		}
	}
	return false
}

// allTerminalMelds 全带幺：每组顺子/刻子都含1或9，对子不限
func allTerminalMelds(concealed []Tile, exposed []Meld) bool {
	melds := ExtractMelds(concealed)
	if melds == nil {
		return false
	}
	for _, m := range append(melds, exposed...) {
		if m.Type == MeldPair {
			continue
		}
		if !m.HasTerminal() {
			return false
		}
	}
	return true
}

// allJiangMelds 将对：所有牌只用2/5/8
func allJiangMelds(concealed []Tile, exposed []Meld) bool {
	melds := ExtractMelds(concealed)
	if melds == nil {
		return false
	}
	for _, m := range append(melds, exposed...) {
		if !m.All258() {
			return false
		}
	}
	return true
}
