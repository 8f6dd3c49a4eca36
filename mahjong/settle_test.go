package mahjong_test

import (
	"testing"

	"github.com/openmahjong/xuezhan/mahjong"
)

func assertZeroSum(t *testing.T, totals []int) {
	t.Helper()
	sum := 0
	for _, v := range totals {
		sum += v
	}
	if sum != 0 {
		t.Fatalf("totals %v sum to %d, want 0", totals, sum)
	}
}

func Test_LedgerTransfer(t *testing.T) {
	ledger := mahjong.NewLedger(4)
	ledger.AddTransfer(mahjong.ReasonKongDirect, 1, []int{3}, 2)
	ledger.AddTransfer(mahjong.ReasonKongConcealed, 0, []int{1, 2, 3}, 2)

	totals := ledger.Totals()
	assertZeroSum(t, totals)
	if totals[0] != 6 || totals[3] != -4 {
		t.Errorf("totals = %v", totals)
	}
	if ledger.KongIncome(0) != 6 || ledger.KongIncome(1) != 2 {
		t.Errorf("kong income = %d, %d", ledger.KongIncome(0), ledger.KongIncome(1))
	}

	// 无效转账不入账
	before := len(ledger.Nodes)
	ledger.AddTransfer(mahjong.ReasonHu, 0, nil, 5)
	ledger.AddTransfer(mahjong.ReasonHu, 0, []int{0}, 5)
	if len(ledger.Nodes) != before+1 {
		t.Errorf("self-pay should append an empty node, nil payers none")
	}
	assertZeroSum(t, ledger.Totals())
}

func Test_RefundKongs(t *testing.T) {
	ledger := mahjong.NewLedger(4)
	ledger.AddTransfer(mahjong.ReasonKongConcealed, 2, []int{0, 1, 3}, 2)
	ledger.AddTransfer(mahjong.ReasonKongExtended, 2, []int{0, 1, 3}, 1)
	ledger.AddTransfer(mahjong.ReasonKongDirect, 0, []int{2}, 2)

	ledger.RefundKongs(2)
	totals := ledger.Totals()
	assertZeroSum(t, totals)
	// 2号位收的杠钱全退，付出去的点杠钱不退
	if totals[2] != -2 {
		t.Errorf("seat 2 total = %d, want -2", totals[2])
	}
	if totals[0] != 2 {
		t.Errorf("seat 0 total = %d, want 2", totals[0])
	}
}

func Test_ChaJiao(t *testing.T) {
	// 0胡3番，1听牌未胡，2花猪，3未听
	seats := []mahjong.SettleSeat{
		{Won: true, Fan: 3},
		{Ting: true},
		{FlowerPig: true},
		{},
	}
	ledger := mahjong.NewLedger(4)
	mahjong.ChaJiao(seats, ledger)
	totals := ledger.Totals()
	assertZeroSum(t, totals)

	// 花猪向3个非花猪各赔16
	if totals[2] != -48 {
		t.Errorf("flower pig total = %d, want -48", totals[2])
	}
	// 未听者赔胡牌者4分、听牌者1分，再加花猪那份16
	if totals[3] != 16-4-1 {
		t.Errorf("non-ting total = %d, want 11", totals[3])
	}
	if totals[0] != 16+4 || totals[1] != 16+1 {
		t.Errorf("totals = %v", totals)
	}
}

func Test_ChaJiaoRefundsKongIncome(t *testing.T) {
	seats := []mahjong.SettleSeat{
		{Won: true, Fan: 2},
		{Ting: true},
		{Ting: true},
		{},
	}
	ledger := mahjong.NewLedger(4)
	ledger.AddTransfer(mahjong.ReasonKongConcealed, 3, []int{0, 1, 2}, 2)
	mahjong.ChaJiao(seats, ledger)
	totals := ledger.Totals()
	assertZeroSum(t, totals)
	// 未听者退杠钱6，再赔 2+1+1
	if totals[3] != -4 {
		t.Errorf("seat 3 total = %d, want -4", totals[3])
	}
}

func Test_CalculateGameResult(t *testing.T) {
	// 两家胡牌（血战到底），两家未胡：1家听牌、1家未听
	seats := []mahjong.SettleSeat{
		{Won: true, Fan: 3},
		{Won: true, Fan: 1},
		{Ting: true},
		{},
	}
	ledger := mahjong.NewLedger(4)
	totals := mahjong.CalculateGameResult(seats, ledger)
	assertZeroSum(t, totals)

	// 胡牌分：0收 4×2=8，1收 1×2=2；查大叫：3赔 4+1+1=6
	if totals[0] != 8+4 {
		t.Errorf("seat 0 = %d, want 12", totals[0])
	}
	if totals[1] != 2+1 {
		t.Errorf("seat 1 = %d, want 3", totals[1])
	}
	if totals[3] != -4-1-4-1-1 {
		t.Errorf("seat 3 = %d, want -11", totals[3])
	}
}

func Test_ConservationFuzz(t *testing.T) {
	combos := []struct{ won, ting, pig [4]bool }{
		{won: [4]bool{true, false, false, false}, ting: [4]bool{false, true, true, false}},
		{pig: [4]bool{true, true, false, false}},
		{won: [4]bool{true, true, true, false}},
		{ting: [4]bool{true, true, true, true}},
	}
	for _, c := range combos {
		seats := make([]mahjong.SettleSeat, 4)
		for j := range seats {
			seats[j] = mahjong.SettleSeat{Won: c.won[j], Fan: j + 1, Ting: c.ting[j], FlowerPig: c.pig[j]}
		}
		ledger := mahjong.NewLedger(4)
		ledger.AddTransfer(mahjong.ReasonKongDirect, 0, []int{1}, 2)
		totals := mahjong.CalculateGameResult(seats, ledger)
		assertZeroSum(t, totals)
	}
}
