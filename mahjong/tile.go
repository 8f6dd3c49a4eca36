package mahjong

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Suit 花色，川麻只有三门数牌，没有字牌
type Suit int8

const (
	SuitDots       Suit = iota // 筒
	SuitCharacters             // 万
	SuitBamboos                // 条
	SuitEnd
	SuitNone Suit = -1
)

const (
	RankCount = 9
	KindCount = int(SuitEnd) * RankCount // 27 distinct (suit, rank) kinds
	CopyCount = 4
	DeckSize  = KindCount * CopyCount // 108
)

var suitCodes = map[Suit]string{
	SuitDots:       "dots",
	SuitCharacters: "wan",
	SuitBamboos:    "tiao",
}

var suitByCode = map[string]Suit{
	"dots": SuitDots,
	"wan":  SuitCharacters,
	"tiao": SuitBamboos,
}

func (s Suit) IsValid() bool {
	return s >= SuitDots && s < SuitEnd
}

func (s Suit) Code() string {
	return suitCodes[s]
}

func (s Suit) Name() string {
	switch s {
	case SuitDots:
		return "筒"
	case SuitCharacters:
		return "万"
	case SuitBamboos:
		return "条"
	default:
		return ""
	}
}

func (s Suit) MarshalJSON() ([]byte, error) {
	if s == SuitNone {
		return []byte("null"), nil
	}
	code, ok := suitCodes[s]
	if !ok {
		return nil, fmt.Errorf("mahjong: invalid suit %d", s)
	}
	return json.Marshal(code)
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SuitNone
		return nil
	}
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	suit, ok := suitByCode[code]
	if !ok {
		return fmt.Errorf("mahjong: unknown suit %q", code)
	}
	*s = suit
	return nil
}

// Tile 单张牌。Copy 区分同一种牌的4张物理实体，
// 玩法上的相等只看花色和点数（SameKind），不看 Copy。
type Tile struct {
	Suit Suit `json:"suit"`
	Rank int8 `json:"rank"` // 1-9
	Copy int8 `json:"copy"` // 0-3
}

func MakeTile(suit Suit, rank int) Tile {
	return Tile{Suit: suit, Rank: int8(rank)}
}

func (t Tile) IsValid() bool {
	return t.Suit.IsValid() && t.Rank >= 1 && t.Rank <= RankCount
}

// Kind maps the tile onto 0..26, suit-major. Kind order is also sort order.
func (t Tile) Kind() int {
	return int(t.Suit)*RankCount + int(t.Rank) - 1
}

func KindTile(kind int) Tile {
	return Tile{Suit: Suit(kind / RankCount), Rank: int8(kind%RankCount + 1)}
}

func (t Tile) SameKind(o Tile) bool {
	return t.Suit == o.Suit && t.Rank == o.Rank
}

func (t Tile) IsTerminal() bool {
	return t.Rank == 1 || t.Rank == RankCount
}

// Is258 将牌（2、5、8）
func (t Tile) Is258() bool {
	return t.Rank == 2 || t.Rank == 5 || t.Rank == 8
}

func (t Tile) Name() string {
	return strconv.Itoa(int(t.Rank)) + t.Suit.Name()
}

// ID is the external identity of one physical tile, e.g. "wan-5-2".
func (t Tile) ID() string {
	return fmt.Sprintf("%s-%d-%d", t.Suit.Code(), t.Rank, t.Copy)
}

func ParseTileID(id string) (Tile, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return Tile{}, fmt.Errorf("mahjong: malformed tile id %q", id)
	}
	suit, ok := suitByCode[parts[0]]
	if !ok {
		return Tile{}, fmt.Errorf("mahjong: unknown suit in tile id %q", id)
	}
	rank, err := strconv.Atoi(parts[1])
	if err != nil || rank < 1 || rank > RankCount {
		return Tile{}, fmt.Errorf("mahjong: bad rank in tile id %q", id)
	}
	cp, err := strconv.Atoi(parts[2])
	if err != nil || cp < 0 || cp >= CopyCount {
		return Tile{}, fmt.Errorf("mahjong: bad copy in tile id %q", id)
	}
	return Tile{Suit: suit, Rank: int8(rank), Copy: int8(cp)}, nil
}

func TilesName(tiles []Tile) string {
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}

// SortTiles 按花色、点数排序，返回新切片
func SortTiles(tiles []Tile) []Tile {
	sorted := slices.Clone(tiles)
	slices.SortFunc(sorted, func(a, b Tile) int {
		if a.Kind() != b.Kind() {
			return a.Kind() - b.Kind()
		}
		return int(a.Copy) - int(b.Copy)
	})
	return sorted
}

// CountKinds builds the count array the evaluator works on.
func CountKinds(tiles []Tile) [KindCount]int {
	var counts [KindCount]int
	for _, t := range tiles {
		if t.IsValid() {
			counts[t.Kind()]++
		}
	}
	return counts
}

// GroupByKind keeps the physical tiles of each kind together, for
// materializing melds out of a count-level decomposition.
func GroupByKind(tiles []Tile) map[int][]Tile {
	groups := make(map[int][]Tile)
	for _, t := range tiles {
		groups[t.Kind()] = append(groups[t.Kind()], t)
	}
	return groups
}

// SuitsOf 手牌覆盖的花色集合
func SuitsOf(tiles []Tile) map[Suit]struct{} {
	suits := make(map[Suit]struct{})
	for _, t := range tiles {
		suits[t.Suit] = struct{}{}
	}
	return suits
}

// MissingSuit 缺门判断：恰好只用两门时返回缺的那一门。
// 缺门是本玩法胡牌的硬性前置条件。
func MissingSuit(tiles []Tile) (Suit, bool) {
	suits := SuitsOf(tiles)
	if len(suits) != 2 {
		return SuitNone, false
	}
	for s := SuitDots; s < SuitEnd; s++ {
		if _, ok := suits[s]; !ok {
			return s, true
		}
	}
	return SuitNone, false
}

// IsFullFlush 清一色
func IsFullFlush(tiles []Tile) bool {
	return len(SuitsOf(tiles)) == 1
}

// RemoveTileByID removes the physical tile with the given id, if present.
func RemoveTileByID(tiles []Tile, id string) ([]Tile, Tile, bool) {
	for i, t := range tiles {
		if t.ID() == id {
			return slices.Delete(slices.Clone(tiles), i, i+1), t, true
		}
	}
	return tiles, Tile{}, false
}

// RemoveKind removes up to count tiles of the given kind, lowest copies first.
func RemoveKind(tiles []Tile, kind, count int) ([]Tile, []Tile) {
	kept := make([]Tile, 0, len(tiles))
	removed := make([]Tile, 0, count)
	for _, t := range SortTiles(tiles) {
		if len(removed) < count && t.Kind() == kind {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}

func CountKind(tiles []Tile, kind int) int {
	count := 0
	for _, t := range tiles {
		if t.Kind() == kind {
			count++
		}
	}
	return count
}

var suitLetters = map[byte]Suit{
	'd': SuitDots,
	'w': SuitCharacters,
	't': SuitBamboos,
}

// TilesFromString parses shorthand like "1w 1w 2t 5d"; repeated kinds get
// ascending copy numbers. Intended for tests and fixtures.
func TilesFromString(s string) []Tile {
	used := make(map[int]int)
	fields := strings.Fields(s)
	tiles := make([]Tile, 0, len(fields))
	for _, f := range fields {
		if len(f) != 2 {
			continue
		}
		suit, ok := suitLetters[f[1]]
		if !ok {
			continue
		}
		rank := int(f[0] - '0')
		if rank < 1 || rank > RankCount {
			continue
		}
		t := Tile{Suit: suit, Rank: int8(rank), Copy: int8(used[MakeTile(suit, rank).Kind()])}
		used[t.Kind()]++
		tiles = append(tiles, t)
	}
	return tiles
}
