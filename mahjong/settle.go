package mahjong

import "slices"

// ScoreReason 计分事由
type ScoreReason string

const (
	ReasonHu            ScoreReason = "hu"
	ReasonKongDirect    ScoreReason = "kong_direct"    // 点杠
	ReasonKongExtended  ScoreReason = "kong_extended"  // 续明杠
	ReasonKongConcealed ScoreReason = "kong_concealed" // 暗杠
	ReasonFlowerPig     ScoreReason = "flower_pig"     // 查花猪
	ReasonNotTing       ScoreReason = "not_ting"       // 查大叫
	ReasonKongRefund    ScoreReason = "kong_refund"    // 退杠钱
)

// KongKind 杠的类别，决定单价与付款方
type KongKind string

const (
	KongDirect    KongKind = "direct"
	KongExtended  KongKind = "extended"
	KongConcealed KongKind = "concealed"
)

// KongUnitScore 每个付款方的单价：点杠2、续明杠1、暗杠2
func KongUnitScore(kind KongKind) int {
	switch kind {
	case KongDirect, KongConcealed:
		return 2
	case KongExtended:
		return 1
	default:
		return 0
	}
}

// ScoreNode 一笔结算：Seat 为受益方，Scores 为各座位增减，恒零和
type ScoreNode struct {
	Reason ScoreReason `json:"reason"`
	Seat   int         `json:"seat"`
	Scores []int       `json:"scores"`
}

// Ledger 流水账。所有转账按发生顺序追加，任何时刻 Totals 之和为零。
type Ledger struct {
	SeatCount int         `json:"seatCount"`
	Nodes     []ScoreNode `json:"nodes"`
}

func NewLedger(seatCount int) *Ledger {
	return &Ledger{SeatCount: seatCount}
}

// AddTransfer 从 payers 各收 amount 给 to
func (l *Ledger) AddTransfer(reason ScoreReason, to int, payers []int, amount int) {
	if amount <= 0 || len(payers) == 0 {
		return
	}
	scores := make([]int, l.SeatCount)
	for _, p := range payers {
		if p == to || p < 0 || p >= l.SeatCount {
			continue
		}
		scores[p] -= amount
		scores[to] += amount
	}
	l.Nodes = append(l.Nodes, ScoreNode{Reason: reason, Seat: to, Scores: scores})
}

// Totals 各座位净得分
func (l *Ledger) Totals() []int {
	totals := make([]int, l.SeatCount)
	for _, n := range l.Nodes {
		for i, s := range n.Scores {
			if i < len(totals) {
				totals[i] += s
			}
		}
	}
	return totals
}

func (l *Ledger) SeatTotal(seat int) int {
	if seat < 0 || seat >= l.SeatCount {
		return 0
	}
	return l.Totals()[seat]
}

func isKongReason(r ScoreReason) bool {
	return r == ReasonKongDirect || r == ReasonKongExtended || r == ReasonKongConcealed
}

// KongIncome 座位已收的杠钱合计
func (l *Ledger) KongIncome(seat int) int {
	income := 0
	for _, n := range l.Nodes {
		if isKongReason(n.Reason) && n.Seat == seat && seat < len(n.Scores) {
			income += n.Scores[seat]
		}
	}
	return income
}

// RefundKongs 退回该座位收过的所有杠钱（逐笔反向冲账）
func (l *Ledger) RefundKongs(seat int) {
	for _, n := range slices.Clone(l.Nodes) {
		if !isKongReason(n.Reason) || n.Seat != seat {
			continue
		}
		scores := make([]int, len(n.Scores))
		for i, s := range n.Scores {
			scores[i] = -s
		}
		l.Nodes = append(l.Nodes, ScoreNode{Reason: ReasonKongRefund, Seat: seat, Scores: scores})
	}
}

// SettleSeat 结算视角下一个座位的终局状态
type SettleSeat struct {
	Won       bool
	Fan       int
	Ting      bool
	FlowerPig bool // 持三门
}

// ChaJiao 查叫结算，往账上追加花猪、未听罚分与退杠钱。
// 花猪向每个非花猪（含胡牌者）赔极品分；未听者按每个听牌/
// 胡牌对手的番数全赔（未胡的听牌者按1分计），并退还杠钱。
func ChaJiao(seats []SettleSeat, ledger *Ledger) {
	pigs := make([]bool, len(seats))
	for i, s := range seats {
		pigs[i] = !s.Won && s.FlowerPig
	}

	pigScore := WinningScore(FanMax)
	for i := range seats {
		if !pigs[i] {
			continue
		}
		for j := range seats {
			if j == i || pigs[j] {
				continue
			}
			ledger.AddTransfer(ReasonFlowerPig, j, []int{i}, pigScore)
		}
	}

	for i, s := range seats {
		if s.Won || s.Ting || pigs[i] {
			continue
		}
		for j, t := range seats {
			if j == i || (!t.Won && !t.Ting) {
				continue
			}
			amount := 1
			if t.Won && t.Fan > 0 {
				amount = WinningScore(t.Fan)
			}
			ledger.AddTransfer(ReasonNotTing, j, []int{i}, amount)
		}
		ledger.RefundKongs(i)
	}
}

// CalculateGameResult 终局总结算：胡牌分（每个胡牌者向所有未胡者
// 收番数分）加查叫，连同场上已发生的杠钱流水一并汇总。
func CalculateGameResult(seats []SettleSeat, ledger *Ledger) []int {
	var losers []int
	for i, s := range seats {
		if !s.Won {
			losers = append(losers, i)
		}
	}
	for i, s := range seats {
		if s.Won {
			ledger.AddTransfer(ReasonHu, i, losers, WinningScore(s.Fan))
		}
	}
	ChaJiao(seats, ledger)
	return ledger.Totals()
}
