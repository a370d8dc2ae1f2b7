package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"famchat/internal/common"
	"famchat/internal/config"
	"famchat/internal/metrics"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the observer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Workers write synchronously, so the batch window bounds export
// throughput per worker.
const exportBatchTimeout = 10 * time.Millisecond

// NewKafkaWriter builds a synchronous writer for the export topic.
func NewKafkaWriter(cfg config.KafkaConfig) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: exportBatchTimeout,
		Async:        false,
	}
}

// record is the exported JSON body.
type record struct {
	Kind       common.ChatEventType `json:"kind"`
	RoomID     uint64               `json:"room_id"`
	ActorID    uint64               `json:"actor_id"`
	MessageID  uint64               `json:"message_id"`
	Recipients int                  `json:"recipients"`
	OccurredAt time.Time            `json:"occurred_at"`
	Payload    interface{}          `json:"payload,omitempty"`
	Metadata   common.EventMetadata `json:"metadata,omitempty"`
}

// KafkaObserver publishes every event keyed by room id, so one room's
// events land on one partition in order.
type KafkaObserver struct {
	writer  MessageWriter
	timeout time.Duration
}

func NewKafkaObserver(writer MessageWriter) *KafkaObserver {
	return &KafkaObserver{
		writer:  writer,
		timeout: 5 * time.Second,
	}
}

func (k *KafkaObserver) Name() string {
	return "kafka_observer"
}

func (k *KafkaObserver) Update(event common.ChatEvent) error {
	body, err := json.Marshal(record{
		Kind:       event.Type,
		RoomID:     event.RoomID,
		ActorID:    event.ActorID,
		MessageID:  event.MessageID,
		Recipients: event.Recipients,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
		Metadata:   event.Metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	msg := kafkago.Message{
		Key:   []byte(strconv.FormatUint(event.RoomID, 10)),
		Value: body,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(event.Type)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (k *KafkaObserver) Close() error {
	return k.writer.Close()
}

// MetricsObserver counts exported events by type.
type MetricsObserver struct{}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) Name() string {
	return "metrics_observer"
}

func (m *MetricsObserver) Update(event common.ChatEvent) error {
	metrics.EventsExported.WithLabelValues(string(event.Type)).Inc()
	return nil
}
