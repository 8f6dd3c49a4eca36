package game

import "time"

// ClaimPolicy 多家同时要牌时的处理策略
type ClaimPolicy string

const (
	// ClaimHuFirst 有人能胡时，胡没表态前杠/碰不得成行
	ClaimHuFirst ClaimPolicy = "hu_first"
	// ClaimFirstWins 先到先得，谁先表态谁成行
	ClaimFirstWins ClaimPolicy = "first_wins"
)

// Rules 一桌的可配规则
type Rules struct {
	ClaimWindow time.Duration `mapstructure:"claim_window"`
	ClaimPolicy ClaimPolicy   `mapstructure:"claim_policy"`
	ScoreBase   int           `mapstructure:"score_base"`
}

func DefaultRules() Rules {
	return Rules{
		ClaimWindow: 30 * time.Second,
		ClaimPolicy: ClaimHuFirst,
		ScoreBase:   1,
	}
}

func (r Rules) normalized() Rules {
	if r.ClaimWindow <= 0 {
		r.ClaimWindow = 30 * time.Second
	}
	if r.ClaimPolicy != ClaimFirstWins {
		r.ClaimPolicy = ClaimHuFirst
	}
	if r.ScoreBase <= 0 {
		r.ScoreBase = 1
	}
	return r
}
