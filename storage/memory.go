package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/openmahjong/xuezhan/game"
)

// MemoryStore 测试用内存实现。快照照样走一遍JSON编解码，
// 保证和真实存储的持久化语义一致。
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, state *game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[state.GameID] = data
	return nil
}

func (s *MemoryStore) Load(_ context.Context, gameID string) (*game.GameState, error) {
	s.mu.RLock()
	data, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var state game.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *MemoryStore) LoadAll(_ context.Context) ([]*game.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	states := make([]*game.GameState, 0, len(s.games))
	for _, data := range s.games {
		var state game.GameState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, err
		}
		states = append(states, &state)
	}
	return states, nil
}

func (s *MemoryStore) Delete(_ context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
	return nil
}
