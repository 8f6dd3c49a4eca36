package mahjong

import (
	"math/rand"
	"slices"
)

// NewDeck 生成整副108张：花色优先、点数次之，每种4张。
func NewDeck() []Tile {
	tiles := make([]Tile, 0, DeckSize)
	for suit := SuitDots; suit < SuitEnd; suit++ {
		for rank := 1; rank <= RankCount; rank++ {
			for cp := 0; cp < CopyCount; cp++ {
				tiles = append(tiles, Tile{Suit: suit, Rank: int8(rank), Copy: int8(cp)})
			}
		}
	}
	return tiles
}

// Shuffle Fisher–Yates洗牌，返回新切片
func Shuffle(tiles []Tile) []Tile {
	shuffled := slices.Clone(tiles)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Wall 牌墙，尾部为下一张摸牌
type Wall struct {
	tiles []Tile
}

func NewWall(tiles []Tile) *Wall {
	return &Wall{tiles: slices.Clone(tiles)}
}

// Draw pops the tail of the wall. ok is false once the wall is exhausted.
func (w *Wall) Draw() (Tile, bool) {
	if len(w.tiles) == 0 {
		return Tile{}, false
	}
	tile := w.tiles[len(w.tiles)-1]
	w.tiles = w.tiles[:len(w.tiles)-1]
	return tile, true
}

// Deal 连续发 count 张
func (w *Wall) Deal(count int) []Tile {
	tiles := make([]Tile, 0, count)
	for i := 0; i < count; i++ {
		tile, ok := w.Draw()
		if !ok {
			break
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

func (w *Wall) RestCount() int {
	return len(w.tiles)
}

func (w *Wall) Tiles() []Tile {
	return slices.Clone(w.tiles)
}
