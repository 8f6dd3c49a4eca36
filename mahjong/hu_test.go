package mahjong_test

import (
	"strconv"
	"testing"

	"github.com/openmahjong/xuezhan/mahjong"
)

type huCase struct {
	hand string
	want mahjong.WinType
}

func Test_CanWin(t *testing.T) {
	testCases := []huCase{
		{"1w 1w 1w 2w 3w 4w 4w 5w 6w 2t 2t 2t 5d 5d", mahjong.WinStandard},
		// 将牌只能从成对的牌里选
		{"1w 2w 3w 4w 5w 6w 7w 8w 9w 2t 2t 2t 5d 9d", mahjong.WinNone},
		// 七对
		{"1w 1w 3w 3w 5w 5w 7w 7w 2t 2t 4t 4t 9d 9d", mahjong.WinSevenPairs},
		// 龙七对同时满足基本牌型时基本牌型优先
		{"1w 1w 1w 1w 2w 2w 2w 2w 3w 3w 3w 3w 9d 9d", mahjong.WinStandard},
		// 差一张
		{"1w 1w 1w 2w 3w 4w 5w 6w 2t 2t 2t 5d 9d 9d", mahjong.WinNone},
		// 长度不合法
		{"1w 1w 1w 2w 3w 4w 5w 6w 2t 2t 2t 5d 5d", mahjong.WinNone},
		{"1w 1w 1w 2w 3w 4w 5w 6w 7w 2t 2t 2t 5d 5d 5d", mahjong.WinNone},
		// 顺子不跨花色
		{"8t 8t 9t 9t 1d 1d 2d 3d 4d 5d 6d 7d 5w 5w", mahjong.WinNone},
		// 副露后的短手牌
		{"2t 2t", mahjong.WinStandard},
		{"4w 5w 6w 9d 9d", mahjong.WinStandard},
	}
	for i, tc := range testCases {
		t.Run("case"+strconv.Itoa(i), func(t *testing.T) {
			tiles := mahjong.TilesFromString(tc.hand)
			t.Log(mahjong.TilesName(tiles))
			ok, got := mahjong.CanWin(tiles)
			if got != tc.want || ok != (tc.want != mahjong.WinNone) {
				t.Errorf("CanWin(%s) = %v,%v want %v", tc.hand, ok, got, tc.want)
			}
		})
	}
}

// 固定回归场景：13张 [1A,1A,1A,2A,3A,4A,5A,6A,2B,2B,2B,5C,5C] 摸入 5C
func Test_RegressionHand(t *testing.T) {
	hand := mahjong.TilesFromString("1w 1w 1w 2w 3w 4w 5w 6w 2t 2t 2t 5d 5d")
	drawn := mahjong.Tile{Suit: mahjong.SuitDots, Rank: 5, Copy: 2}
	full := append(hand, drawn)
	ok, winType := mahjong.CanWin(full)
	if !ok || winType != mahjong.WinStandard {
		t.Fatalf("CanWin = %v,%v want standard win", ok, winType)
	}
	listens := mahjong.ListeningTiles(hand)
	found := false
	for _, l := range listens {
		if l.SameKind(drawn) {
			found = true
		}
	}
	if !found {
		t.Errorf("ListeningTiles(%s) = %s, missing 5筒", mahjong.TilesName(hand), mahjong.TilesName(listens))
	}
}

func Test_ExtractMelds(t *testing.T) {
	hand := mahjong.TilesFromString("1w 1w 1w 2w 3w 4w 4w 5w 6w 2t 2t 2t 5d 5d")
	melds := mahjong.ExtractMelds(hand)
	if melds == nil {
		t.Fatal("ExtractMelds returned nil for a winning hand")
	}
	if melds[0].Type != mahjong.MeldPair {
		t.Errorf("first meld = %s, want pair", melds[0].Type)
	}
	// 拆解结果的牌集合与原手牌一致
	got := mahjong.CountKinds(nil)
	for _, m := range melds {
		for _, tile := range m.Tiles {
			got[tile.Kind()]++
		}
	}
	if got != mahjong.CountKinds(hand) {
		t.Errorf("meld tiles differ from hand: %v vs %v", got, mahjong.CountKinds(hand))
	}

	if mahjong.ExtractMelds(mahjong.TilesFromString("1w 2w 5t 9d 9d 9d 3t 4t 6w 7w 8w 1t 2t 2d")) != nil {
		t.Error("ExtractMelds should be nil for a non-winning hand")
	}
}

func Test_ListeningTiles(t *testing.T) {
	hand := mahjong.TilesFromString("1w 1w 1w 2w 3w 4w 5w 6w 2t 2t 2t 5d 5d")
	for _, l := range mahjong.ListeningTiles(hand) {
		probe := append(mahjong.TilesFromString(""), hand...)
		probe = append(probe, l)
		if ok, _ := mahjong.CanWin(probe); !ok {
			t.Errorf("listening tile %s does not complete the hand", l.Name())
		}
	}
	if mahjong.ListeningTiles(mahjong.TilesFromString("1w 2w")) != nil {
		t.Error("2-tile input is not a valid listening query")
	}
	if mahjong.IsTing(mahjong.TilesFromString("1w 4w 7w 1t 4t 7t 1d 4d 7d 9d 9w 9t 2d")) {
		t.Error("scattered hand should not be ting")
	}
}

func Test_CountRoots(t *testing.T) {
	tests := []struct {
		hand    string
		exposed []mahjong.Meld
		want    int
	}{
		{"1w 1w 1w 1w 2w 3w 4w 5w 6w 2t 2t 2t 5d 5d", nil, 1},
		{"1w 1w 1w 2w 3w 4w 5w 6w 2t 2t 2t 5d 5d", nil, 0},
		{"2w 3w 4w 5d 5d", []mahjong.Meld{
			{Type: mahjong.MeldKong, Tiles: mahjong.TilesFromString("9t 9t 9t 9t")},
			{Type: mahjong.MeldConcealedKong, Tiles: mahjong.TilesFromString("7d 7d 7d 7d"), Concealed: true},
		}, 2},
		// 碰出去的刻子不成根，第4张在手里也一样
		{"2t 2w 3w 4w 5d 5d", []mahjong.Meld{
			{Type: mahjong.MeldTriplet, Tiles: mahjong.TilesFromString("2t 2t 2t")},
		}, 0},
	}
	for i, tc := range tests {
		got := mahjong.CountRoots(mahjong.TilesFromString(tc.hand), tc.exposed)
		if got != tc.want {
			t.Errorf("case %d: CountRoots = %d, want %d", i, got, tc.want)
		}
	}
}
