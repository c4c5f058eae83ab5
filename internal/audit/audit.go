// Package audit emits relay lifecycle events to Kafka for offline analysis.
// Publishing is fire-and-forget; the relay never waits on the broker.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"log/slog"

	"github.com/segmentio/kafka-go"
)

const (
	TypeConnect    = "connect"
	TypeJoin       = "join"
	TypeCommand    = "command"
	TypeDisconnect = "disconnect"
)

type Event struct {
	Type   string    `json:"type"`
	ConnID string    `json:"connId"`
	RoomID string    `json:"roomId,omitempty"`
	Action string    `json:"action,omitempty"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ev Event)
	Close()
}

// Nop discards events; used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(Event) {}
func (Nop) Close()        {}

// Kafka publishes events to a single topic, keyed by room so per-room
// ordering survives partitioning.
type Kafka struct {
	writer *kafka.Writer
	log    *slog.Logger
}

func NewKafka(brokers []string, topic string, log *slog.Logger) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
		log: log,
	}
}

func (k *Kafka) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	raw, _ := json.Marshal(ev)

	// Off the hot path; the hub must never block on the broker.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(ev.RoomID), Value: raw}); err != nil {
			k.log.Warn("audit.publish", "type", ev.Type, "err", err)
		}
	}()
}

func (k *Kafka) Close() {
	if err := k.writer.Close(); err != nil {
		k.log.Warn("audit.close", "err", err)
	}
}
