package game

// EventType 对外广播的事件类型
type EventType string

const (
	EventGameCreated  EventType = "game_created"
	EventPlayerJoined EventType = "player_joined"
	EventGameStarted  EventType = "game_started"
	EventStateChanged EventType = "state_changed"
	EventGameEnded    EventType = "game_ended"
	EventGameDeleted  EventType = "game_deleted"
)

// Event 每次成功变更产出的事件，由外部派发器广播。
// 状态机本身不碰任何传输层。
type Event struct {
	Type         EventType  `json:"type"`
	GameID       string     `json:"gameId"`
	PlayerID     string     `json:"playerId,omitempty"`
	Action       ActionType `json:"action,omitempty"`
	Phase        Phase      `json:"phase"`
	CurrentIndex int        `json:"currentPlayerIndex"`
	WallCount    int        `json:"wallCount"`
	WinnersCount int        `json:"winnersCount"`
}

// Notifier 事件出口。注入到 Manager，nil 则静默。
type Notifier interface {
	Publish(event Event) error
}

func makeEvent(eventType EventType, g *GameState, playerID string, action ActionType) Event {
	e := Event{
		Type:         eventType,
		GameID:       g.GameID,
		PlayerID:     playerID,
		Action:       action,
		Phase:        g.Phase,
		CurrentIndex: g.CurrentIndex,
		WallCount:    len(g.Wall),
		WinnersCount: g.WinnersCount,
	}
	if eventType == EventStateChanged && g.Phase == PhaseEnded {
		e.Type = EventGameEnded
	}
	return e
}
