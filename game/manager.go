package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store 快照存取。真实实现见 storage 包。
type Store interface {
	Save(ctx context.Context, state *GameState) error
	Load(ctx context.Context, gameID string) (*GameState, error)
	LoadAll(ctx context.Context) ([]*GameState, error)
	Delete(ctx context.Context, gameID string) error
}

type entry struct {
	mu    sync.Mutex
	state *GameState
}

// Manager 对局注册表：每局一个内存权威实例，按局互斥。
// 所有变更走 克隆→执行→落盘→替换，落盘失败或动作非法时
// 内存状态保持原样。
type Manager struct {
	mu       sync.RWMutex
	games    map[string]*entry
	store    Store
	notifier Notifier
	rules    Rules
	log      *logrus.Logger

	hydrate sync.Once
	ticker  *time.Ticker
	done    chan struct{}
}

func NewManager(store Store, notifier Notifier, rules Rules, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := &Manager{
		games:    make(map[string]*entry),
		store:    store,
		notifier: notifier,
		rules:    rules.normalized(),
		log:      log,
		ticker:   time.NewTicker(time.Second),
		done:     make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-m.ticker.C:
				m.tick()
			case <-m.done:
				return
			}
		}
	}()
	return m
}

// Close 停掉过期扫描
func (m *Manager) Close() {
	m.ticker.Stop()
	close(m.done)
}

// hydrateAll 进程重启后从存储恢复全部对局，只跑一次
func (m *Manager) hydrateAll(ctx context.Context) {
	m.hydrate.Do(func() {
		states, err := m.store.LoadAll(ctx)
		if err != nil {
			m.log.Errorf("hydrate games: %v", err)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, state := range states {
			if _, ok := m.games[state.GameID]; !ok {
				m.games[state.GameID] = &entry{state: state}
			}
		}
		m.log.Infof("hydrated %d games from storage", len(states))
	})
}

// getEntry 取对局，内存没有就去存储捞
func (m *Manager) getEntry(ctx context.Context, gameID string) (*entry, error) {
	m.hydrateAll(ctx)

	m.mu.RLock()
	e, ok := m.games[gameID]
	m.mu.RUnlock()
	if ok {
		return e, nil
	}

	state, err := m.store.Load(ctx, gameID)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[gameID]; ok {
		return e, nil
	}
	e = &entry{state: state}
	m.games[gameID] = e
	return e, nil
}

// mutate 串行执行一次变更：副本上跑fn，落盘成功才替换内存态
func (m *Manager) mutate(ctx context.Context, gameID string, eventType EventType, playerID string, action ActionType, fn func(*GameState) error) error {
	e, err := m.getEntry(ctx, gameID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state.Clone()
	if err := fn(next); err != nil {
		if IsValidation(err) {
			m.log.Debugf("game %s: rejected %s from %s: %v", gameID, action, playerID, err)
		} else {
			m.log.Errorf("game %s: %v", gameID, err)
		}
		return err
	}
	if err := m.store.Save(ctx, next); err != nil {
		m.log.Errorf("game %s: save failed: %v", gameID, err)
		return err
	}
	e.state = next
	m.publish(makeEvent(eventType, next, playerID, action))
	return nil
}

func (m *Manager) publish(event Event) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Publish(event); err != nil {
		m.log.Warnf("publish %s for game %s: %v", event.Type, event.GameID, err)
	}
}

// CreateGame 建桌并落盘，返回对局和创建者的ID
func (m *Manager) CreateGame(ctx context.Context, playerName string) (gameID, playerID string, err error) {
	m.hydrateAll(ctx)

	gameID = uuid.NewString()
	playerID = uuid.NewString()
	state := NewGame(gameID, m.rules, playerID, playerName, time.Now().UnixMilli())

	if err := m.store.Save(ctx, state); err != nil {
		return "", "", err
	}
	m.mu.Lock()
	m.games[gameID] = &entry{state: state}
	m.mu.Unlock()

	m.log.Infof("game %s created by %s", gameID, playerName)
	m.publish(makeEvent(EventGameCreated, state, playerID, ""))
	return gameID, playerID, nil
}

// JoinGame 入座
func (m *Manager) JoinGame(ctx context.Context, gameID, playerName string) (playerID string, seat int, err error) {
	playerID = uuid.NewString()
	err = m.mutate(ctx, gameID, EventPlayerJoined, playerID, "", func(g *GameState) error {
		var err error
		seat, err = g.AddPlayer(playerID, playerName)
		return err
	})
	if err != nil {
		return "", 0, err
	}
	return playerID, seat, nil
}

// StartGame 开局发牌
func (m *Manager) StartGame(ctx context.Context, gameID string) error {
	return m.mutate(ctx, gameID, EventGameStarted, "", "", func(g *GameState) error {
		return g.Start(time.Now().UnixMilli())
	})
}

// ExecuteAction 玩家动作入口
func (m *Manager) ExecuteAction(ctx context.Context, gameID, playerID string, action ActionType, tileID string, tileIDs []string) error {
	return m.mutate(ctx, gameID, EventStateChanged, playerID, action, func(g *GameState) error {
		return g.Apply(playerID, action, tileID, tileIDs, time.Now().UnixMilli())
	})
}

// AvailableActions 查询某玩家当前的合法动作
func (m *Manager) AvailableActions(ctx context.Context, gameID, playerID string) ([]ActionType, error) {
	e, err := m.getEntry(ctx, gameID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.playerByID(playerID) == nil {
		return nil, ErrPlayerNotFound
	}
	return e.state.AvailableActions(playerID), nil
}

// GetView 某观察者的掩码视图
func (m *Manager) GetView(ctx context.Context, gameID, viewerID string, reveal bool) (Snapshot, error) {
	e, err := m.getEntry(ctx, gameID)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.View(viewerID, reveal), nil
}

// ListGames 所有在册对局的公开视图
func (m *Manager) ListGames(ctx context.Context) []Snapshot {
	m.hydrateAll(ctx)
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.games))
	for _, e := range m.games {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	snaps := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		snaps = append(snaps, e.state.View("", false))
		e.mu.Unlock()
	}
	return snaps
}

// DeleteGame 注销并删除存档
func (m *Manager) DeleteGame(ctx context.Context, gameID string) error {
	e, err := m.getEntry(ctx, gameID)
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, gameID); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.games, gameID)
	m.mu.Unlock()

	e.mu.Lock()
	event := makeEvent(EventGameDeleted, e.state, "", "")
	e.mu.Unlock()
	m.publish(event)
	return nil
}

// tick 每秒扫一遍过期的响应窗口，超时视同过牌
func (m *Manager) tick() {
	m.mu.RLock()
	entries := make(map[string]*entry, len(m.games))
	for id, e := range m.games {
		entries[id] = e
	}
	m.mu.RUnlock()

	now := time.Now().UnixMilli()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for gameID, e := range entries {
		e.mu.Lock()
		if e.state.Phase != PhasePlaying || len(e.state.PendingActions) == 0 {
			e.mu.Unlock()
			continue
		}
		next := e.state.Clone()
		changed, err := next.ExpireClaims(now)
		if err != nil {
			m.log.Errorf("game %s: expire claims: %v", gameID, err)
			e.mu.Unlock()
			continue
		}
		if !changed {
			e.mu.Unlock()
			continue
		}
		if err := m.store.Save(ctx, next); err != nil {
			m.log.Errorf("game %s: save after expiry: %v", gameID, err)
			e.mu.Unlock()
			continue
		}
		e.state = next
		event := makeEvent(EventStateChanged, next, "", ActionPass)
		e.mu.Unlock()
		m.publish(event)
	}
}
