package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameStarted    = errors.New("game already started")
	ErrGameFull       = errors.New("game is full")
)

// ValidationError 非法动作。状态保持原样，由调用方转告玩家。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid action: " + e.Reason
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InvariantError 状态机自身的不变量被破坏，该对局不可继续。
type InvariantError struct {
	GameID string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("game %s invariant violated: %s", e.GameID, e.Detail)
}

// IsValidation 判定错误是否为可安全上报给玩家的校验失败
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
