package mahjong_test

import (
	"testing"

	"github.com/openmahjong/xuezhan/mahjong"
)

func Test_Deck(t *testing.T) {
	deck := mahjong.NewDeck()
	if len(deck) != mahjong.DeckSize {
		t.Fatalf("NewDeck() = %d tiles, want %d", len(deck), mahjong.DeckSize)
	}
	counts := mahjong.CountKinds(deck)
	for kind, c := range counts {
		if c != mahjong.CopyCount {
			t.Errorf("kind %d has %d copies, want %d", kind, c, mahjong.CopyCount)
		}
	}
	ids := make(map[string]bool, len(deck))
	for _, tile := range deck {
		if ids[tile.ID()] {
			t.Errorf("duplicate tile id %s", tile.ID())
		}
		ids[tile.ID()] = true
	}
}

func Test_Shuffle(t *testing.T) {
	deck := mahjong.NewDeck()
	shuffled := mahjong.Shuffle(deck)
	if len(shuffled) != len(deck) {
		t.Fatalf("Shuffle changed length: %d", len(shuffled))
	}
	ids := make(map[string]int)
	for _, tile := range deck {
		ids[tile.ID()]++
	}
	for _, tile := range shuffled {
		ids[tile.ID()]--
	}
	for id, n := range ids {
		if n != 0 {
			t.Errorf("tile %s count off by %d after shuffle", id, n)
		}
	}
}

func Test_TileID(t *testing.T) {
	tile := mahjong.Tile{Suit: mahjong.SuitCharacters, Rank: 5, Copy: 2}
	if tile.ID() != "wan-5-2" {
		t.Errorf("ID() = %s, want wan-5-2", tile.ID())
	}
	parsed, err := mahjong.ParseTileID("wan-5-2")
	if err != nil {
		t.Fatal(err)
	}
	if parsed != tile {
		t.Errorf("ParseTileID round trip = %+v", parsed)
	}
	for _, bad := range []string{"", "wan-5", "feng-1-0", "wan-0-0", "wan-5-4"} {
		if _, err := mahjong.ParseTileID(bad); err == nil {
			t.Errorf("ParseTileID(%q) should fail", bad)
		}
	}
}

func Test_MissingSuit(t *testing.T) {
	tests := []struct {
		hand string
		want mahjong.Suit
		ok   bool
	}{
		{"1w 2w 3t 4t", mahjong.SuitDots, true},
		{"1d 2d 3t", mahjong.SuitCharacters, true},
		{"1d 2w 3t", mahjong.SuitNone, false},
		{"1d 2d 3d", mahjong.SuitNone, false},
	}
	for _, tc := range tests {
		suit, ok := mahjong.MissingSuit(mahjong.TilesFromString(tc.hand))
		if suit != tc.want || ok != tc.ok {
			t.Errorf("MissingSuit(%s) = %v,%v want %v,%v", tc.hand, suit, ok, tc.want, tc.ok)
		}
	}
}

func Test_Wall(t *testing.T) {
	wall := mahjong.NewWall(mahjong.NewDeck())
	hand := wall.Deal(13)
	if len(hand) != 13 || wall.RestCount() != mahjong.DeckSize-13 {
		t.Fatalf("Deal(13) = %d tiles, rest %d", len(hand), wall.RestCount())
	}
	for wall.RestCount() > 0 {
		if _, ok := wall.Draw(); !ok {
			t.Fatal("Draw failed with tiles remaining")
		}
	}
	if _, ok := wall.Draw(); ok {
		t.Error("Draw on empty wall should fail")
	}
}
