// Package storage persists game snapshots by id. The engine always works
// from the most recently saved snapshot; writers must be last-writer-wins.
package storage

import (
	"context"
	"fmt"

	"github.com/openmahjong/xuezhan/game"
)

// ErrNotFound satisfies errors.Is(err, game.ErrGameNotFound).
var ErrNotFound = fmt.Errorf("storage: %w", game.ErrGameNotFound)

// Store 快照存取接口
type Store interface {
	Save(ctx context.Context, state *game.GameState) error
	Load(ctx context.Context, gameID string) (*game.GameState, error)
	LoadAll(ctx context.Context) ([]*game.GameState, error)
	Delete(ctx context.Context, gameID string) error
}
