// Package notify fans engine events out to interested parties.
package notify

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/openmahjong/xuezhan/config"
	"github.com/openmahjong/xuezhan/game"
)

// NATSNotifier 把引擎事件发到 <subject>.<gameID>
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
}

func NewNATSNotifier(cfg config.NATSConfig) (*NATSNotifier, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	subject := cfg.Subject
	if subject == "" {
		subject = "mahjong.events"
	}
	return &NATSNotifier{conn: conn, subject: subject}, nil
}

func (n *NATSNotifier) Publish(event game.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.conn.Publish(n.subject+"."+event.GameID, data)
}

func (n *NATSNotifier) Close() {
	n.conn.Close()
}
