package mahjong

// ListeningTiles 听牌枚举：逐一试入27种牌看能否胡。
// 输入为差一张的手牌（1、4、7、10、13张）。
func ListeningTiles(tiles []Tile) []Tile {
	if len(tiles)%3 != 1 || len(tiles) > 13 {
		return nil
	}
	var listens []Tile
	for kind := 0; kind < KindCount; kind++ {
		if CountKind(tiles, kind) >= CopyCount {
			continue
		}
		probe := append(append([]Tile{}, tiles...), KindTile(kind))
		if ok, _ := CanWin(probe); ok {
			listens = append(listens, KindTile(kind))
		}
	}
	return listens
}

// IsTing 是否听牌
func IsTing(tiles []Tile) bool {
	return len(ListeningTiles(tiles)) > 0
}
