package game

// Phase 对局阶段
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseStarting Phase = "starting"
	PhasePlaying  Phase = "playing"
	PhaseChaJiao  Phase = "cha_jiao"
	PhaseEnded    Phase = "ended"
)

// PlayerStatus 座位状态
type PlayerStatus string

const (
	StatusWaiting PlayerStatus = "waiting"
	StatusPlaying PlayerStatus = "playing"
	StatusWon     PlayerStatus = "won"
	StatusLost    PlayerStatus = "lost"
)

// ActionType 动作类型
type ActionType string

const (
	ActionDiscard       ActionType = "discard"
	ActionDraw          ActionType = "draw"
	ActionPeng          ActionType = "peng"
	ActionKong          ActionType = "kong"           // 直杠，杠别人打出的牌
	ActionConcealedKong ActionType = "concealed_kong" // 暗杠
	ActionExtendedKong  ActionType = "extended_kong"  // 续明杠
	ActionHu            ActionType = "hu"
	ActionPass          ActionType = "pass"
)

const (
	// MaxPlayers 一桌最多四人
	MaxPlayers = 4
	// MinPlayers 至少两人开局
	MinPlayers = 2
	// HandSize 起手牌数
	HandSize = 13
)
