package mahjong

// WinType 胡牌牌型
type WinType string

const (
	WinNone       WinType = ""
	WinStandard   WinType = "standard"    // 4组+将
	WinSevenPairs WinType = "seven_pairs" // 七对
)

// validHandSize 副露缩短手牌，允许 14、11、8、5、2 张
func validHandSize(n int) bool {
	return n > 0 && n <= 14 && n%3 == 2
}

// CanWinStandard 基本牌型：将+若干组顺子/刻子。
// 枚举每个数量>=2的牌当将，剩余从最小的牌起回溯拆解。
func CanWinStandard(tiles []Tile) bool {
	if !validHandSize(len(tiles)) {
		return false
	}
	counts := CountKinds(tiles)
	for kind := 0; kind < KindCount; kind++ {
		if counts[kind] < 2 {
			continue
		}
		counts[kind] -= 2
		if decompose(&counts) {
			counts[kind] += 2
			return true
		}
		counts[kind] += 2
	}
	return false
}

// decompose 尝试把剩余牌全部拆成顺子/刻子
func decompose(counts *[KindCount]int) bool {
	kind := 0
	for ; kind < KindCount; kind++ {
		if counts[kind] > 0 {
			break
		}
	}
	if kind == KindCount {
		return true
	}
	if counts[kind] >= 3 {
		counts[kind] -= 3
		if decompose(counts) {
			counts[kind] += 3
			return true
		}
		counts[kind] += 3
	}
	// 顺子不跨花色
	if kind%RankCount <= RankCount-3 &&
		counts[kind+1] > 0 && counts[kind+2] > 0 {
		counts[kind]--
		counts[kind+1]--
		counts[kind+2]--
		if decompose(counts) {
			counts[kind]++
			counts[kind+1]++
			counts[kind+2]++
			return true
		}
		counts[kind]++
		counts[kind+1]++
		counts[kind+2]++
	}
	return false
}

// CanWinSevenPairs 七对：14张且恰好7种各2张
func CanWinSevenPairs(tiles []Tile) bool {
	if len(tiles) != 14 {
		return false
	}
	counts := CountKinds(tiles)
	pairs := 0
	for _, c := range counts {
		switch c {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// CanWin 判胡，基本牌型优先
func CanWin(tiles []Tile) (bool, WinType) {
	if CanWinStandard(tiles) {
		return true, WinStandard
	}
	if CanWinSevenPairs(tiles) {
		return true, WinSevenPairs
	}
	return false, WinNone
}

// ExtractMelds 返回一组具体拆解（将在最前），用于番型判断。
// 非胡牌输入返回 nil。
func ExtractMelds(tiles []Tile) []Meld {
	if !validHandSize(len(tiles)) {
		return nil
	}
	counts := CountKinds(tiles)
	groups := GroupByKind(tiles)
	for kind := 0; kind < KindCount; kind++ {
		if counts[kind] < 2 {
			continue
		}
		counts[kind] -= 2
		var melds []Meld
		if extract(&counts, &melds) {
			counts[kind] += 2
			return materialize(append([]Meld{{Type: MeldPair, Tiles: []Tile{KindTile(kind), KindTile(kind)}}}, melds...), groups)
		}
		counts[kind] += 2
	}
	if CanWinSevenPairs(tiles) {
		var melds []Meld
		for kind := 0; kind < KindCount; kind++ {
			if counts[kind] == 2 {
				melds = append(melds, Meld{Type: MeldPair, Tiles: []Tile{KindTile(kind), KindTile(kind)}})
			}
		}
		return materialize(melds, groups)
	}
	return nil
}

func extract(counts *[KindCount]int, melds *[]Meld) bool {
	kind := 0
	for ; kind < KindCount; kind++ {
		if counts[kind] > 0 {
			break
		}
	}
	if kind == KindCount {
		return true
	}
	if counts[kind] >= 3 {
		counts[kind] -= 3
		*melds = append(*melds, Meld{Type: MeldTriplet, Tiles: []Tile{KindTile(kind), KindTile(kind), KindTile(kind)}})
		if extract(counts, melds) {
			counts[kind] += 3
			return true
		}
		*melds = (*melds)[:len(*melds)-1]
		counts[kind] += 3
	}
	if kind%RankCount <= RankCount-3 &&
		counts[kind+1] > 0 && counts[kind+2] > 0 {
		counts[kind]--
		counts[kind+1]--
		counts[kind+2]--
		*melds = append(*melds, Meld{Type: MeldSequence, Tiles: []Tile{KindTile(kind), KindTile(kind + 1), KindTile(kind + 2)}})
		if extract(counts, melds) {
			counts[kind]++
			counts[kind+1]++
			counts[kind+2]++
			return true
		}
		*melds = (*melds)[:len(*melds)-1]
		counts[kind]++
		counts[kind+1]++
		counts[kind+2]++
	}
	return false
}

// materialize 把拆解结果映射回物理牌，保留 Copy
func materialize(melds []Meld, groups map[int][]Tile) []Meld {
	used := make(map[int]int)
	out := make([]Meld, len(melds))
	for i, m := range melds {
		tiles := make([]Tile, len(m.Tiles))
		for j, t := range m.Tiles {
			kind := t.Kind()
			if pool := groups[kind]; used[kind] < len(pool) {
				tiles[j] = pool[used[kind]]
				used[kind]++
			} else {
				tiles[j] = t
			}
		}
		out[i] = Meld{Type: m.Type, Tiles: tiles, Concealed: true, From: -1}
	}
	return out
}

// CountRoots 根：杠（明暗）是根，手牌里的暗四张也是根。
// 碰出去的刻子不算，哪怕第4张还在手里。
func CountRoots(concealed []Tile, exposed []Meld) int {
	counts := CountKinds(concealed)
	roots := 0
	for _, m := range exposed {
		if m.IsKong() {
			roots++
		}
	}
	for _, c := range counts {
		if c >= CopyCount {
			roots++
		}
	}
	return roots
}
