package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/openmahjong/xuezhan/game"
)

const gameKeyPrefix = "mahjong:game:"

// RedisStore 把整局快照按 mahjong:game:<id> 存成 JSON
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func gameKey(gameID string) string {
	return gameKeyPrefix + gameID
}

func (s *RedisStore) Save(ctx context.Context, state *game.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", state.GameID, err)
	}
	if err := s.client.Set(ctx, gameKey(state.GameID), data, 0).Err(); err != nil {
		return fmt.Errorf("save game %s: %w", state.GameID, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, gameID string) (*game.GameState, error) {
	data, err := s.client.Get(ctx, gameKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	var state game.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", gameID, err)
	}
	return &state, nil
}

func (s *RedisStore) LoadAll(ctx context.Context) ([]*game.GameState, error) {
	var states []*game.GameState
	iter := s.client.Scan(ctx, 0, gameKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", iter.Val(), err)
		}
		var state game.GameState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("decode %s: %w", iter.Val(), err)
		}
		states = append(states, &state)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan games: %w", err)
	}
	return states, nil
}

func (s *RedisStore) Delete(ctx context.Context, gameID string) error {
	if err := s.client.Del(ctx, gameKey(gameID)).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", gameID, err)
	}
	return nil
}
